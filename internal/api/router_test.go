package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"taskboard-backend/internal/api"
	"taskboard-backend/internal/store/file"
)

func newAPI(t *testing.T) http.Handler {
	t.Helper()
	return api.NewRouter(file.New(filepath.Join(t.TempDir(), "data.json")))
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var m map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, m
}

func TestHealth(t *testing.T) {
	h := newAPI(t)

	code, resp := do(t, h, http.MethodGet, "/api/health", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp["status"] != "healthy" {
		t.Fatalf("unexpected status %q", resp["status"])
	}
	if _, err := time.Parse(time.RFC3339Nano, resp["timestamp"].(string)); err != nil {
		t.Fatalf("timestamp not parseable: %v", err)
	}
}

func TestListTasks_EmptyArray(t *testing.T) {
	h := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestScenario_TaskWithCommentsLifecycle(t *testing.T) {
	h := newAPI(t)

	code, task := do(t, h, http.MethodPost, "/api/tasks", `{"title":"T"}`)
	if code != http.StatusCreated {
		t.Fatalf("create task: expected 201, got %d", code)
	}
	taskID := task["id"].(string)

	code, _ = do(t, h, http.MethodPost, "/api/tasks/"+taskID+"/comments", `{"content":"c1"}`)
	if code != http.StatusCreated {
		t.Fatalf("create comment c1: expected 201, got %d", code)
	}
	time.Sleep(2 * time.Millisecond)
	code, c2 := do(t, h, http.MethodPost, "/api/tasks/"+taskID+"/comments", `{"content":"c2"}`)
	if code != http.StatusCreated {
		t.Fatalf("create comment c2: expected 201, got %d", code)
	}

	code, listing := do(t, h, http.MethodGet, "/api/tasks/"+taskID+"/comments", "")
	if code != http.StatusOK {
		t.Fatalf("list comments: expected 200, got %d", code)
	}
	if listing["count"] != float64(2) {
		t.Fatalf("expected count 2, got %v", listing["count"])
	}
	list := listing["comments"].([]any)
	if first := list[0].(map[string]any); first["id"] != c2["id"] {
		t.Fatalf("expected newest comment first, got %v", first["id"])
	}

	code, resp := do(t, h, http.MethodDelete, "/api/tasks/"+taskID, "")
	if code != http.StatusOK {
		t.Fatalf("delete task: expected 200, got %d", code)
	}
	if resp["message"] != "Task deleted successfully" {
		t.Fatalf("unexpected message %q", resp["message"])
	}

	code, listing = do(t, h, http.MethodGet, "/api/tasks/"+taskID+"/comments", "")
	if code != http.StatusOK || listing["count"] != float64(0) {
		t.Fatalf("expected 200 with count 0 after cascade, got %d %v", code, listing["count"])
	}

	code, resp = do(t, h, http.MethodGet, "/api/tasks/"+taskID, "")
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", code)
	}
	if resp["error"] != "Task not found" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestRouting_CommentCrudPaths(t *testing.T) {
	h := newAPI(t)

	code, comment := do(t, h, http.MethodPost, "/api/tasks/ghost/comments", `{"content":"orphan","author":"sam"}`)
	if code != http.StatusCreated {
		t.Fatalf("orphan comment: expected 201, got %d", code)
	}
	id := comment["id"].(string)

	code, got := do(t, h, http.MethodGet, "/api/comments/"+id, "")
	if code != http.StatusOK || got["content"] != "orphan" {
		t.Fatalf("get comment: got %d %v", code, got)
	}

	code, got = do(t, h, http.MethodPut, "/api/comments/"+id, `{"content":"edited"}`)
	if code != http.StatusOK || got["content"] != "edited" {
		t.Fatalf("update comment: got %d %v", code, got)
	}
	if got["author"] != "sam" {
		t.Fatalf("author must be unchanged, got %q", got["author"])
	}

	code, got = do(t, h, http.MethodDelete, "/api/comments/"+id, "")
	if code != http.StatusOK || got["message"] != "Comment deleted successfully" {
		t.Fatalf("delete comment: got %d %v", code, got)
	}
}
