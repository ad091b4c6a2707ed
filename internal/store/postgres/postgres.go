package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"taskboard-backend/internal/store"
)

// Tables are created without a foreign key on comments.task_id: orphan
// comments are part of the contract, cascade delete happens in code.
const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS comments (
	id TEXT PRIMARY KEY,
	task_id TEXT NOT NULL,
	content TEXT NOT NULL,
	author TEXT NOT NULL DEFAULT 'Anonymous',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`

type Storage struct {
	db *sql.DB
}

func New(connString string) (*Storage, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("could not create schema: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) ListTasks(ctx context.Context) ([]store.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, created_at
		FROM tasks
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]store.Task, 0)
	for rows.Next() {
		var t store.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("could not scan task: %w", err)
		}
		t.CreatedAt = t.CreatedAt.UTC()
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Storage) GetTask(ctx context.Context, id string) (*store.Task, error) {
	var t store.Task
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, created_at
		FROM tasks
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Title, &t.Description, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get task: %w", err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func (s *Storage) CreateTask(ctx context.Context, task *store.Task) error {
	task.ID = uuid.NewString()
	task.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, created_at)
		VALUES ($1, $2, $3, $4)
	`, task.ID, task.Title, task.Description, task.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not create task: %w", err)
	}
	return nil
}

func (s *Storage) UpdateTask(ctx context.Context, id string, patch store.TaskPatch) (*store.Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = $1, description = $2
		WHERE id = $3
	`, t.Title, t.Description, id)
	if err != nil {
		return nil, fmt.Errorf("could not update task: %w", err)
	}
	return t, nil
}

func (s *Storage) DeleteTask(ctx context.Context, id string) (*store.Task, error) {
	t, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE task_id = $1`, id); err != nil {
		return nil, fmt.Errorf("could not delete task comments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("could not delete task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit: %w", err)
	}
	return t, nil
}

func (s *Storage) CreateComment(ctx context.Context, comment *store.Comment) error {
	now := time.Now().UTC()
	comment.ID = uuid.NewString()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, task_id, content, author, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, comment.ID, comment.TaskID, comment.Content, comment.Author, comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not create comment: %w", err)
	}
	return nil
}

func (s *Storage) GetComment(ctx context.Context, id string) (*store.Comment, error) {
	var c store.Comment
	err := s.db.QueryRowContext(ctx, `
		SELECT id, task_id, content, author, created_at, updated_at
		FROM comments
		WHERE id = $1
	`, id).Scan(&c.ID, &c.TaskID, &c.Content, &c.Author, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get comment: %w", err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

func (s *Storage) CommentsByTask(ctx context.Context, taskID string) ([]store.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, task_id, content, author, created_at, updated_at
		FROM comments
		WHERE task_id = $1
		ORDER BY created_at DESC
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("could not list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]store.Comment, 0)
	for rows.Next() {
		var c store.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Content, &c.Author, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("could not scan comment: %w", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		c.UpdatedAt = c.UpdatedAt.UTC()
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *Storage) UpdateComment(ctx context.Context, id string, patch store.CommentPatch) (*store.Comment, error) {
	c, err := s.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Content != nil {
		c.Content = *patch.Content
	}
	if patch.Author != nil {
		c.Author = *patch.Author
	}
	c.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE comments
		SET content = $1, author = $2, updated_at = $3
		WHERE id = $4
	`, c.Content, c.Author, c.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("could not update comment: %w", err)
	}
	return c, nil
}

func (s *Storage) DeleteComment(ctx context.Context, id string) (*store.Comment, error) {
	c, err := s.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("could not delete comment: %w", err)
	}
	return c, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
