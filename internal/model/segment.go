package model

import (
	"time"
)

// SegmentSource identifies where a time segment came from
type SegmentSource string

const (
	SourceApp    SegmentSource = "app"    // Created by the user in the app
	SourceGoogle SegmentSource = "google" // Synced from an external calendar
	SourceTask   SegmentSource = "task"   // Derived from a scheduled task
)

// TimeSegment represents a block of time on the calendar. The TaskID is a
// weak reference: a dangling segment still renders (as "Untitled").
type TimeSegment struct {
	ID        string        `json:"id"`
	TaskID    string        `json:"task_id"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"` // Always after StartTime
	Date      string        `json:"date"`     // Calendar day (YYYY-MM-DD) of StartTime
	Status    Status        `json:"status"`
	Source    SegmentSource `json:"source"`
	DeletedAt *time.Time    `json:"deleted_at,omitempty"` // Soft delete
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Duration returns the segment length in minutes
func (s *TimeSegment) Duration() int {
	return int(s.EndTime.Sub(s.StartTime).Minutes())
}

// IsDeleted returns true if the segment has been soft-deleted.
// Deleted segments are excluded from all window and task-box computations.
func (s *TimeSegment) IsDeleted() bool {
	return s.DeletedAt != nil
}

// Qualifies returns true if the segment defines its task's box:
// user-created or task-origin, and not soft-deleted. Externally synced
// segments never define a box.
func (s *TimeSegment) Qualifies() bool {
	if s.IsDeleted() {
		return false
	}
	return s.Source == SourceApp || s.Source == SourceTask
}

// GroupSegmentsByTask indexes segments by their owning task id
func GroupSegmentsByTask(segments []TimeSegment) map[string][]TimeSegment {
	byTask := make(map[string][]TimeSegment)
	for _, s := range segments {
		byTask[s.TaskID] = append(byTask[s.TaskID], s)
	}
	return byTask
}
