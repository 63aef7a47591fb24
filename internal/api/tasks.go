package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/ederv/plandeck/internal/model"
)

// TaskPatch is a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Title            *string         `json:"title,omitempty"`
	Description      *string         `json:"description,omitempty"`
	Status           *model.Status   `json:"status,omitempty"`
	Priority         *model.Priority `json:"priority,omitempty"`
	PlannedDate      *time.Time      `json:"planned_date,omitempty"`
	Deadline         *time.Time      `json:"deadline,omitempty"`
	Tags             []string        `json:"tags,omitempty"`
	EstimatedMinutes *int            `json:"estimated_minutes,omitempty"`
}

// Apply merges the patch into a task, the optimistic half of the
// mutate-then-reconcile cycle.
func (p TaskPatch) Apply(t *model.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.PlannedDate != nil {
		t.PlannedDate = p.PlannedDate
	}
	if p.Deadline != nil {
		t.Deadline = p.Deadline
	}
	if p.Tags != nil {
		t.Tags = p.Tags
	}
	if p.EstimatedMinutes != nil {
		t.EstimatedMinutes = p.EstimatedMinutes
	}
}

// CreateTaskRequest is the payload for creating a task
type CreateTaskRequest struct {
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	Status           model.Status    `json:"status,omitempty"`
	Priority         model.Priority  `json:"priority,omitempty"`
	PlannedDate      *time.Time      `json:"planned_date,omitempty"`
	Deadline         *time.Time      `json:"deadline,omitempty"`
	ParentTaskID     *string         `json:"parent_task_id,omitempty"`
	Tags             []string        `json:"tags,omitempty"`
	EstimatedMinutes *int            `json:"estimated_minutes,omitempty"`
}

// Tasks returns all of the user's tasks
func (c *Client) Tasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.get(ctx, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksByDate returns the tasks whose box includes the given day
func (c *Client) TasksByDate(ctx context.Context, date string) ([]model.Task, error) {
	q := url.Values{"date": {date}}
	var tasks []model.Task
	if err := c.get(ctx, "/tasks/by-date", q, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Task returns a single task
func (c *Client) Task(ctx context.Context, id string) (model.Task, error) {
	var task model.Task
	if err := c.get(ctx, "/tasks/"+url.PathEscape(id), nil, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Subtasks returns the children of a task
func (c *Client) Subtasks(ctx context.Context, id string) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.get(ctx, fmt.Sprintf("/tasks/%s/subtasks", url.PathEscape(id)), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task and returns the server's representation
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (model.Task, error) {
	var task model.Task
	if err := c.post(ctx, "/tasks", req, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// UpdateTask applies a patch and returns the authoritative result
func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) (model.Task, error) {
	var task model.Task
	if err := c.put(ctx, "/tasks/"+url.PathEscape(id), patch, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// DeleteTask deletes a task
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.delete(ctx, "/tasks/"+url.PathEscape(id), nil)
}
