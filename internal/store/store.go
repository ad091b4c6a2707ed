package store

import (
	"context"
	"errors"
	"time"
)

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskPatch carries the fields present in an update payload.
// A nil field means the key was absent from the request.
type TaskPatch struct {
	Title       *string
	Description *string
}

type CommentPatch struct {
	Content *string
	Author  *string
}

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// Interface is the storage contract shared by the file and Postgres backends.
type Interface interface {
	ListTasks(ctx context.Context) ([]Task, error)
	GetTask(ctx context.Context, id string) (*Task, error)
	CreateTask(ctx context.Context, task *Task) error
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (*Task, error)
	// DeleteTask removes the task and every comment referencing it.
	DeleteTask(ctx context.Context, id string) (*Task, error)

	CreateComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, id string) (*Comment, error)
	CommentsByTask(ctx context.Context, taskID string) ([]Comment, error)
	UpdateComment(ctx context.Context, id string, patch CommentPatch) (*Comment, error)
	DeleteComment(ctx context.Context, id string) (*Comment, error)

	Close() error
}
