package comments

import (
	"errors"
	"net/http"
	"strings"

	"taskboard-backend/internal/httpx"
	"taskboard-backend/internal/store"
)

// CreateCommentHandler attaches a comment to the task id from the path.
// The task is not looked up: comments under unknown task ids are allowed.
func CreateCommentHandler(st store.Interface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := httpx.Fields(r)

		raw, ok := body["content"]
		if len(body) == 0 || !ok {
			httpx.Error(w, http.StatusBadRequest, "Content is required")
			return
		}
		content, ok := httpx.StringField(raw)
		if !ok || strings.TrimSpace(content) == "" {
			httpx.Error(w, http.StatusBadRequest, "Content cannot be empty")
			return
		}

		author := "Anonymous"
		if raw, ok := body["author"]; ok {
			if s, ok := httpx.StringField(raw); ok {
				author = s
			}
		}

		comment := store.Comment{
			TaskID:  r.PathValue("id"),
			Content: content,
			Author:  author,
		}
		if err := st.CreateComment(r.Context(), &comment); err != nil {
			httpx.Error(w, http.StatusInternalServerError, "storage error")
			return
		}
		httpx.JSON(w, http.StatusCreated, comment)
	}
}

// ListCommentsHandler returns the task's comments, newest first.
// It never 404s: an unknown task id simply has zero comments.
func ListCommentsHandler(st store.Interface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := r.PathValue("id")

		comments, err := st.CommentsByTask(r.Context(), taskID)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "storage error")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{
			"task_id":  taskID,
			"comments": comments,
			"count":    len(comments),
		})
	}
}

func GetCommentHandler(st store.Interface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, err := st.GetComment(r.Context(), r.PathValue("id"))
		if errors.Is(err, store.ErrCommentNotFound) {
			httpx.Error(w, http.StatusNotFound, "Comment not found")
			return
		}
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "storage error")
			return
		}
		httpx.JSON(w, http.StatusOK, comment)
	}
}

func UpdateCommentHandler(st store.Interface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		if _, err := st.GetComment(r.Context(), id); err != nil {
			if errors.Is(err, store.ErrCommentNotFound) {
				httpx.Error(w, http.StatusNotFound, "Comment not found")
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

		var patch store.CommentPatch
		if raw, ok := body["content"]; ok {
			content, ok := httpx.StringField(raw)
			if !ok || strings.TrimSpace(content) == "" {
				httpx.Error(w, http.StatusBadRequest, "Content cannot be empty")
				return
			}
			patch.Content = &content
		}
		if raw, ok := body["author"]; ok {
			if s, ok := httpx.StringField(raw); ok {
				patch.Author = &s
			}
		}

		// a non-empty payload always goes through the store, so updated_at
		// refreshes even when no recognized key was sent
		comment, err := st.UpdateComment(r.Context(), id, patch)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "storage error")
			return
		}
		httpx.JSON(w, http.StatusOK, comment)
	}
}

func DeleteCommentHandler(st store.Interface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, err := st.DeleteComment(r.Context(), r.PathValue("id"))
		if errors.Is(err, store.ErrCommentNotFound) {
			httpx.Error(w, http.StatusNotFound, "Comment not found")
			return
		}
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "storage error")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{
			"message": "Comment deleted successfully",
			"comment": comment,
		})
	}
}
