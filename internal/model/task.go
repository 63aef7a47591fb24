package model

import (
	"time"
)

// Status represents the current state of a task
type Status string

const (
	StatusTodo       Status = "todo"
	StatusBacklog    Status = "backlog"
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Priority represents task priority level
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Task represents a single planning item
type Task struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Status           Status     `json:"status"`
	Priority         Priority   `json:"priority"`
	PlannedDate      *time.Time `json:"planned_date,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	ParentTaskID     *string    `json:"parent_task_id,omitempty"` // Set for subtasks
	Tags             []string   `json:"tags,omitempty"`
	EstimatedMinutes *int       `json:"estimated_minutes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// IsSubtask returns true if the task belongs to a parent task.
// Subtasks are excluded from the board and date-window views.
func (t *Task) IsSubtask() bool {
	return t.ParentTaskID != nil
}

// IsCompleted returns true if the task is done
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsOverdue returns true if the task is past its deadline
func (t *Task) IsOverdue() bool {
	if t.Deadline == nil || t.IsCompleted() {
		return false
	}
	return time.Now().After(*t.Deadline)
}

// PriorityWeight returns a numeric weight for sorting by priority
func (t *Task) PriorityWeight() int {
	switch t.Priority {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 2
	}
}
