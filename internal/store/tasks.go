package store

import (
	"context"
	"fmt"

	"github.com/ederv/plandeck/internal/api"
	"github.com/ederv/plandeck/internal/model"
)

// CreateTask persists a new task and appends the server's representation.
// The backend returns the created entity synchronously, so no pending
// placeholder is kept locally.
func (s *Store) CreateTask(ctx context.Context, req api.CreateTaskRequest) (model.Task, error) {
	task, err := s.api.CreateTask(ctx, req)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()
	return task, nil
}

// UpdateTask applies a patch optimistically, persists it, and reconciles.
// On success the optimistic entity is replaced with the server's response
// so server-derived fields win. On failure the whole collection is
// re-fetched and the error is returned for the caller to surface.
func (s *Store) UpdateTask(ctx context.Context, id string, patch api.TaskPatch) (model.Task, error) {
	s.mu.Lock()
	idx := s.taskIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	optimistic := s.tasks[idx]
	patch.Apply(&optimistic)
	optimistic.UpdatedAt = s.now()
	s.tasks[idx] = optimistic
	s.mu.Unlock()

	task, err := s.api.UpdateTask(ctx, id, patch)
	if err != nil {
		s.resyncTasks(ctx)
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	s.mu.Lock()
	if idx := s.taskIndexLocked(id); idx >= 0 {
		s.tasks[idx] = task
	}
	s.mu.Unlock()
	return task, nil
}

// SetTaskStatus is the board-transition mutation
func (s *Store) SetTaskStatus(ctx context.Context, id string, status model.Status) (model.Task, error) {
	return s.UpdateTask(ctx, id, api.TaskPatch{Status: &status})
}

// DeleteTask removes the task optimistically and persists the delete.
// A failed delete re-fetches the collection, the same rollback policy as
// update, so the entity reappears instead of silently diverging from the
// server.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.taskIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.mu.Unlock()

	if err := s.api.DeleteTask(ctx, id); err != nil {
		s.resyncTasks(ctx)
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *Store) taskIndexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// resyncTasks discards local task state in favor of the backend's. Used
// after a failed mutation; a failed resync keeps the optimistic value,
// which the next successful load overwrites anyway.
func (s *Store) resyncTasks(ctx context.Context) {
	tasks, err := s.api.Tasks(ctx)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
}
