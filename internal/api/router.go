package api

import (
	"net/http"
	"time"

	"taskboard-backend/internal/comments"
	"taskboard-backend/internal/httpx"
	"taskboard-backend/internal/store"
	"taskboard-backend/internal/tasks"
)

// NewRouter mounts the whole API surface on a ServeMux.
func NewRouter(st store.Interface) *http.ServeMux {
	mux := http.NewServeMux()

	// ----- TASKS API -----
	mux.HandleFunc("GET /api/tasks", tasks.ListTasksHandler(st))
	mux.HandleFunc("POST /api/tasks", tasks.CreateTaskHandler(st))
	mux.HandleFunc("GET /api/tasks/{id}", tasks.GetTaskHandler(st))
	mux.HandleFunc("PUT /api/tasks/{id}", tasks.UpdateTaskHandler(st))
	mux.HandleFunc("DELETE /api/tasks/{id}", tasks.DeleteTaskHandler(st))

	// ----- COMMENTS API -----
	mux.HandleFunc("POST /api/tasks/{id}/comments", comments.CreateCommentHandler(st))
	mux.HandleFunc("GET /api/tasks/{id}/comments", comments.ListCommentsHandler(st))
	mux.HandleFunc("GET /api/comments/{id}", comments.GetCommentHandler(st))
	mux.HandleFunc("PUT /api/comments/{id}", comments.UpdateCommentHandler(st))
	mux.HandleFunc("DELETE /api/comments/{id}", comments.DeleteCommentHandler(st))

	// Health endpoint
	mux.HandleFunc("GET /api/health", HealthHandler())

	return mux
}

// HealthHandler reports liveness only, it never touches the store.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
		})
	}
}
