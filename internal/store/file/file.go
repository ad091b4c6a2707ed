package file

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard-backend/internal/store"
)

// data is the on-disk layout: one object with both tables keyed by id.
type data struct {
	Tasks    map[string]store.Task    `json:"tasks"`
	Comments map[string]store.Comment `json:"comments"`
}

// Storage keeps every record in memory and rewrites the backing file
// after each successful mutation.
type Storage struct {
	mu   sync.RWMutex
	path string

	tasks    map[string]store.Task
	comments map[string]store.Comment
}

// New loads the backing file if it exists. A missing file starts an empty
// store; a malformed file is logged and also starts empty. Load is never fatal.
func New(path string) *Storage {
	s := &Storage{
		path:     path,
		tasks:    make(map[string]store.Task),
		comments: make(map[string]store.Comment),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No data file found, starting with empty storage")
		} else {
			log.Printf("Error loading data: %v", err)
		}
		return s
	}

	var d data
	if err := json.Unmarshal(raw, &d); err != nil {
		log.Printf("Error loading data: %v", err)
		return s
	}
	if d.Tasks != nil {
		s.tasks = d.Tasks
	}
	if d.Comments != nil {
		s.comments = d.Comments
	}
	log.Printf("Loaded %d tasks and %d comments from %s", len(s.tasks), len(s.comments), path)
	return s
}

// save rewrites the whole file from the in-memory state. Failures are logged
// and swallowed: the in-memory mutation stands either way.
// Caller must hold mu.
func (s *Storage) save() {
	d := data{Tasks: s.tasks, Comments: s.comments}
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		log.Printf("Error saving data: %v", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		log.Printf("Error saving data: %v", err)
	}
}

func (s *Storage) ListTasks(ctx context.Context) ([]store.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]store.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	// map iteration is randomized, so order by creation instead
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

func (s *Storage) GetTask(ctx context.Context, id string) (*store.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &t, nil
}

func (s *Storage) CreateTask(ctx context.Context, task *store.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = uuid.NewString()
	task.CreatedAt = time.Now().UTC()
	s.tasks[task.ID] = *task
	s.save()
	return nil
}

func (s *Storage) UpdateTask(ctx context.Context, id string, patch store.TaskPatch) (*store.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	s.tasks[id] = t
	s.save()
	return &t, nil
}

func (s *Storage) DeleteTask(ctx context.Context, id string) (*store.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	for cid, c := range s.comments {
		if c.TaskID == id {
			delete(s.comments, cid)
		}
	}
	s.save()
	return &t, nil
}

func (s *Storage) CreateComment(ctx context.Context, comment *store.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	comment.ID = uuid.NewString()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	s.comments[comment.ID] = *comment
	s.save()
	return nil
}

func (s *Storage) GetComment(ctx context.Context, id string) (*store.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, store.ErrCommentNotFound
	}
	return &c, nil
}

func (s *Storage) CommentsByTask(ctx context.Context, taskID string) ([]store.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]store.Comment, 0)
	for _, c := range s.comments {
		if c.TaskID == taskID {
			comments = append(comments, c)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *Storage) UpdateComment(ctx context.Context, id string, patch store.CommentPatch) (*store.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, store.ErrCommentNotFound
	}
	if patch.Content != nil {
		c.Content = *patch.Content
	}
	if patch.Author != nil {
		c.Author = *patch.Author
	}
	// refreshed on every successful update call, changed fields or not
	c.UpdatedAt = time.Now().UTC()
	s.comments[id] = c
	s.save()
	return &c, nil
}

func (s *Storage) DeleteComment(ctx context.Context, id string) (*store.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, store.ErrCommentNotFound
	}
	delete(s.comments, id)
	s.save()
	return &c, nil
}

func (s *Storage) Close() error {
	return nil
}
