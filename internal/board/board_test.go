package board

import (
	"testing"

	"github.com/ederv/plandeck/internal/model"
)

func TestColumnForNormalization(t *testing.T) {
	for _, tc := range []struct {
		status model.Status
		want   Column
	}{
		{model.StatusTodo, ColumnTodo},
		{model.StatusBacklog, ColumnTodo},
		{model.StatusPlanned, ColumnTodo},
		{model.StatusInProgress, ColumnInProgress},
		{model.StatusCompleted, ColumnCompleted},
	} {
		if got := ColumnFor(tc.status); got != tc.want {
			t.Errorf("ColumnFor(%s) = %s, want %s", tc.status, got, tc.want)
		}
	}
}

func TestPartition(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Status: model.StatusBacklog},
		{ID: "b", Status: model.StatusPlanned},
		{ID: "c", Status: model.StatusInProgress},
		{ID: "d", Status: model.StatusCompleted},
		{ID: "e", Status: model.StatusTodo},
	}

	cols := Partition(tasks)
	if len(cols[ColumnTodo]) != 3 {
		t.Errorf("todo column has %d tasks, want 3", len(cols[ColumnTodo]))
	}
	if len(cols[ColumnInProgress]) != 1 {
		t.Errorf("in_progress column has %d tasks, want 1", len(cols[ColumnInProgress]))
	}
	if len(cols[ColumnCompleted]) != 1 {
		t.Errorf("completed column has %d tasks, want 1", len(cols[ColumnCompleted]))
	}
}

func TestTransitionValid(t *testing.T) {
	task := model.Task{ID: "a", Status: model.StatusTodo}

	status, ok := Transition(task, ColumnInProgress)
	if !ok || status != model.StatusInProgress {
		t.Errorf("Transition = (%s, %v), want (in_progress, true)", status, ok)
	}
}

func TestTransitionToCurrentColumnIsNoop(t *testing.T) {
	// A backlog task already lives in the todo column, so dropping it
	// there must not trigger a network call.
	task := model.Task{ID: "a", Status: model.StatusBacklog}

	if _, ok := Transition(task, ColumnTodo); ok {
		t.Error("transition resolving to the current column must be a no-op")
	}
}

func TestTransitionInvalidDestination(t *testing.T) {
	task := model.Task{ID: "a", Status: model.StatusTodo}

	if _, ok := Transition(task, Column("archive")); ok {
		t.Error("unknown destination column must be a no-op")
	}
}
