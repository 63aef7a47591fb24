package views

import (
	"github.com/ederv/plandeck/internal/model"
)

// SyncedMsg is broadcast by the root model after a full backend sync
type SyncedMsg struct {
	Err error
}

// TaskCreatedMsg indicates a task was created
type TaskCreatedMsg struct {
	Task model.Task
	Err  error
}

// TaskUpdatedMsg indicates a task mutation resolved
type TaskUpdatedMsg struct {
	Task model.Task
	Err  error
}

// TaskDeletedMsg indicates a task was deleted
type TaskDeletedMsg struct {
	TaskID string
	Err    error
}

// ProjectRescheduledMsg indicates a timeline drag commit resolved
type ProjectRescheduledMsg struct {
	Project model.Project
	Err     error
}

// ProjectsReorderedMsg indicates a reorder batch resolved
type ProjectsReorderedMsg struct {
	Err error
}
