// Package board partitions tasks into the kanban columns and validates
// drag-and-drop transitions between them.
package board

import (
	"github.com/ederv/plandeck/internal/model"
)

// Column is one of the three canonical board columns
type Column string

const (
	ColumnTodo       Column = "todo"
	ColumnInProgress Column = "in_progress"
	ColumnCompleted  Column = "completed"
)

// Columns lists the canonical columns in display order
var Columns = []Column{ColumnTodo, ColumnInProgress, ColumnCompleted}

// Title returns the display name for a column
func (c Column) Title() string {
	switch c {
	case ColumnTodo:
		return "Todo"
	case ColumnInProgress:
		return "In Progress"
	case ColumnCompleted:
		return "Done"
	default:
		return string(c)
	}
}

// ColumnFor maps a task status to its board column. Backlog and planned
// tasks live in the todo column; other statuses map one to one.
func ColumnFor(status model.Status) Column {
	switch status {
	case model.StatusTodo, model.StatusBacklog, model.StatusPlanned:
		return ColumnTodo
	case model.StatusInProgress:
		return ColumnInProgress
	case model.StatusCompleted:
		return ColumnCompleted
	default:
		return ColumnTodo
	}
}

// StatusFor is the inverse mapping used when a card is dropped on a
// column: the column's canonical status.
func StatusFor(col Column) (model.Status, bool) {
	switch col {
	case ColumnTodo:
		return model.StatusTodo, true
	case ColumnInProgress:
		return model.StatusInProgress, true
	case ColumnCompleted:
		return model.StatusCompleted, true
	default:
		return "", false
	}
}

// Partition splits an already-filtered task list into columns
func Partition(tasks []model.Task) map[Column][]model.Task {
	cols := map[Column][]model.Task{
		ColumnTodo:       nil,
		ColumnInProgress: nil,
		ColumnCompleted:  nil,
	}
	for _, t := range tasks {
		col := ColumnFor(t.Status)
		cols[col] = append(cols[col], t)
	}
	return cols
}

// Transition resolves a drop of a task onto a destination column.
// Unknown destinations and drops that resolve to the task's current
// status are both no-ops; ok is false and no network call should be
// issued.
func Transition(task model.Task, dest Column) (model.Status, bool) {
	status, valid := StatusFor(dest)
	if !valid {
		return "", false
	}
	if ColumnFor(task.Status) == dest {
		return "", false
	}
	return status, true
}
