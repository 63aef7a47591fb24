package schedule

import (
	"sort"

	"github.com/ederv/plandeck/internal/dateutil"
	"github.com/ederv/plandeck/internal/model"
)

// BoxDates computes the "task box": the set of calendar days (YYYY-MM-DD,
// sorted) on which a task appears in date-indexed views.
//
// Qualifying segments (source app/task, not soft-deleted) win outright:
// the box is the distinct start days of those segments and PlannedDate is
// ignored. Without qualifying segments the box falls back to PlannedDate,
// or is empty when no date is planned.
//
// Filtering of completed tasks and subtasks is the caller's job; the
// resolver only looks at segments and the planned date.
func BoxDates(task model.Task, segmentsByTask map[string][]model.TimeSegment) []string {
	seen := make(map[string]bool)
	var days []string

	for _, seg := range segmentsByTask[task.ID] {
		if !seg.Qualifies() {
			continue
		}
		day := seg.Date
		if day == "" {
			day = dateutil.DayString(seg.StartTime)
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}

	if len(days) > 0 {
		sort.Strings(days)
		return days
	}

	if task.PlannedDate != nil {
		return []string{dateutil.DayString(*task.PlannedDate)}
	}
	return nil
}
