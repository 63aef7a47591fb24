package schedule

import (
	"reflect"
	"testing"
	"time"

	"github.com/ederv/plandeck/internal/model"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func seg(taskID, date string, source model.SegmentSource) model.TimeSegment {
	start := day(date).Add(9 * time.Hour)
	return model.TimeSegment{
		ID:        taskID + "-" + date,
		TaskID:    taskID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Date:      date,
		Source:    source,
	}
}

func TestBoxDatesFromSegments(t *testing.T) {
	planned := day("2025-03-01")
	task := model.Task{ID: "t1", Title: "Write report", PlannedDate: &planned}

	byTask := map[string][]model.TimeSegment{
		"t1": {
			seg("t1", "2025-03-10", model.SourceApp),
			seg("t1", "2025-03-12", model.SourceTask),
			seg("t1", "2025-03-10", model.SourceApp), // Same day twice
		},
	}

	got := BoxDates(task, byTask)
	want := []string{"2025-03-10", "2025-03-12"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BoxDates = %v, want %v", got, want)
	}
}

func TestBoxDatesIgnoresPlannedDateWhenSegmentsExist(t *testing.T) {
	planned := day("2025-01-01")
	task := model.Task{ID: "t1", PlannedDate: &planned}
	byTask := map[string][]model.TimeSegment{
		"t1": {seg("t1", "2025-03-10", model.SourceApp)},
	}

	got := BoxDates(task, byTask)
	if len(got) != 1 || got[0] != "2025-03-10" {
		t.Errorf("BoxDates = %v, want [2025-03-10] (planned_date must not leak in)", got)
	}
}

func TestBoxDatesGoogleSegmentsDoNotQualify(t *testing.T) {
	planned := day("2025-03-01")
	task := model.Task{ID: "t1", PlannedDate: &planned}
	byTask := map[string][]model.TimeSegment{
		"t1": {seg("t1", "2025-03-10", model.SourceGoogle)},
	}

	got := BoxDates(task, byTask)
	if len(got) != 1 || got[0] != "2025-03-01" {
		t.Errorf("BoxDates = %v, want fallback to planned_date", got)
	}
}

func TestBoxDatesSkipsSoftDeleted(t *testing.T) {
	task := model.Task{ID: "t1"}
	deleted := seg("t1", "2025-03-10", model.SourceApp)
	now := time.Now()
	deleted.DeletedAt = &now

	byTask := map[string][]model.TimeSegment{"t1": {deleted}}
	if got := BoxDates(task, byTask); got != nil {
		t.Errorf("BoxDates = %v, want empty (only segment is soft-deleted)", got)
	}
}

func TestBoxDatesPlannedDateFallback(t *testing.T) {
	planned := day("2025-03-05")
	task := model.Task{ID: "t1", PlannedDate: &planned}

	got := BoxDates(task, nil)
	if len(got) != 1 || got[0] != "2025-03-05" {
		t.Errorf("BoxDates = %v, want [2025-03-05]", got)
	}
}

func TestBoxDatesEmptyWithoutSegmentsOrPlannedDate(t *testing.T) {
	task := model.Task{ID: "t1"}
	if got := BoxDates(task, nil); got != nil {
		t.Errorf("BoxDates = %v, want empty", got)
	}
}

func TestBoxDatesDanglingDateFallsBackToStartTime(t *testing.T) {
	task := model.Task{ID: "t1"}
	s := seg("t1", "2025-03-10", model.SourceApp)
	s.Date = "" // Older records may miss the denormalized day
	byTask := map[string][]model.TimeSegment{"t1": {s}}

	got := BoxDates(task, byTask)
	if len(got) != 1 || got[0] != "2025-03-10" {
		t.Errorf("BoxDates = %v, want start-time day", got)
	}
}
