package schedule

import (
	"time"

	"github.com/ederv/plandeck/internal/dateutil"
	"github.com/ederv/plandeck/internal/model"
)

// Mode selects the granularity of the visible window
type Mode int

const (
	ModeDay Mode = iota
	ModeWeek
)

// String returns the display name for a mode
func (m Mode) String() string {
	if m == ModeDay {
		return "Day"
	}
	return "Week"
}

// Window is the contiguous date range currently visible, inclusive on
// both ends. Start and End are local midnights.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor computes the active window for a mode and anchor date.
// Day mode is the single anchor day; week mode spans Sunday through
// Saturday of the anchor's week.
func WindowFor(mode Mode, anchor time.Time) Window {
	if mode == ModeDay {
		day := dateutil.StartOfDay(anchor)
		return Window{Start: day, End: day}
	}
	return Window{
		Start: dateutil.StartOfWeek(anchor),
		End:   dateutil.EndOfWeek(anchor),
	}
}

// ContainsDay reports whether a YYYY-MM-DD day falls inside the window.
// Comparison is on day strings, not timestamps, so timezone drift in the
// underlying times cannot move a day across the boundary.
func (w Window) ContainsDay(day string) bool {
	return day >= dateutil.DayString(w.Start) && day <= dateutil.DayString(w.End)
}

// Days lists every day string in the window, in order
func (w Window) Days() []string {
	var days []string
	for d := w.Start; !d.After(w.End); d = dateutil.AddDays(d, 1) {
		days = append(days, dateutil.DayString(d))
	}
	return days
}

// Previous shifts the anchor back one day or one week depending on mode
func Previous(mode Mode, anchor time.Time) time.Time {
	if mode == ModeDay {
		return dateutil.AddDays(anchor, -1)
	}
	return dateutil.AddDays(anchor, -7)
}

// Next shifts the anchor forward one day or one week depending on mode
func Next(mode Mode, anchor time.Time) time.Time {
	if mode == ModeDay {
		return dateutil.AddDays(anchor, 1)
	}
	return dateutil.AddDays(anchor, 7)
}

// InWindow reports whether any day of the task's box lies inside the
// window.
func InWindow(task model.Task, segmentsByTask map[string][]model.TimeSegment, w Window) bool {
	for _, day := range BoxDates(task, segmentsByTask) {
		if w.ContainsDay(day) {
			return true
		}
	}
	return false
}

// FilterTasks returns the window's tasks: completed tasks and subtasks
// are dropped first, then each remaining task is tested against the
// window through its box.
func FilterTasks(tasks []model.Task, segmentsByTask map[string][]model.TimeSegment, w Window) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.IsCompleted() || t.IsSubtask() {
			continue
		}
		if InWindow(t, segmentsByTask, w) {
			out = append(out, t)
		}
	}
	return out
}

// FilterSegments returns the non-deleted segments whose day lies inside
// the window.
func FilterSegments(segments []model.TimeSegment, w Window) []model.TimeSegment {
	var out []model.TimeSegment
	for _, s := range segments {
		if s.IsDeleted() {
			continue
		}
		day := s.Date
		if day == "" {
			day = dateutil.DayString(s.StartTime)
		}
		if w.ContainsDay(day) {
			out = append(out, s)
		}
	}
	return out
}
