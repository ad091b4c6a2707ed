package tasks

import (
	"errors"
	"net/http"
	"strings"

	"taskboard-backend/internal/httpx"
	"taskboard-backend/internal/store"
)

func ListTasksHandler(st store.Interface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := st.ListTasks(r.Context())
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "storage error")
			return
		}
		httpx.JSON(w, http.StatusOK, tasks)
	}
}

func CreateTaskHandler(st store.Interface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := httpx.Fields(r)

		// only the presence of the key is checked here, a blank title
		// passes create and is rejected on update
		raw, ok := body["title"]
		if len(body) == 0 || !ok {
			httpx.Error(w, http.StatusBadRequest, "Title is required")
			return
		}
		title, ok := httpx.StringField(raw)
		if !ok {
			httpx.Error(w, http.StatusBadRequest, "Title is required")
			return
		}

		description := ""
		if raw, ok := body["description"]; ok {
			if s, ok := httpx.StringField(raw); ok {
				description = s
			}
		}

		task := store.Task{Title: title, Description: description}
		if err := st.CreateTask(r.Context(), &task); err != nil {
			httpx.Error(w, http.StatusInternalServerError, "storage error")
			return
		}
		httpx.JSON(w, http.StatusCreated, task)
	}
}

func GetTaskHandler(st store.Interface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		task, err := st.GetTask(r.Context(), r.PathValue("id"))
		if errors.Is(err, store.ErrTaskNotFound) {
			httpx.Error(w, http.StatusNotFound, "Task not found")
			return
		}
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "storage error")
			return
		}
		httpx.JSON(w, http.StatusOK, task)
	}
}

func UpdateTaskHandler(st store.Interface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		// existence is checked before the payload, like delete does
		if _, err := st.GetTask(r.Context(), id); err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				httpx.Error(w, http.StatusNotFound, "Task not found")
				return
			}
			httpx.Error(w, http.StatusInternalServerError, "storage error")
			return
		}

		body := httpx.Fields(r)
		if len(body) == 0 {
			httpx.Error(w, http.StatusBadRequest, "No data provided")
			return
		}

		var patch store.TaskPatch
		if raw, ok := body["title"]; ok {
			title, ok := httpx.StringField(raw)
			if !ok || strings.TrimSpace(title) == "" {
				httpx.Error(w, http.StatusBadRequest, "Title cannot be empty")
				return
			}
			patch.Title = &title
		}
		if raw, ok := body["description"]; ok {
			if s, ok := httpx.StringField(raw); ok {
				patch.Description = &s
			}
		}

		task, err := st.UpdateTask(r.Context(), id, patch)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "storage error")
			return
		}
		httpx.JSON(w, http.StatusOK, task)
	}
}

func DeleteTaskHandler(st store.Interface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		task, err := st.DeleteTask(r.Context(), r.PathValue("id"))
		if errors.Is(err, store.ErrTaskNotFound) {
			httpx.Error(w, http.StatusNotFound, "Task not found")
			return
		}
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "storage error")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{
			"message": "Task deleted successfully",
			"task":    task,
		})
	}
}
