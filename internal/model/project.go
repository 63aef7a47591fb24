package model

import (
	"time"
)

// ProjectStatus represents the current state of a project
type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not-started"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectOnHold     ProjectStatus = "on-hold"
)

// Project represents a multi-day effort rendered as a bar on the timeline.
// Deadline is never before StartDate. Order is the manual display rank:
// lower sorts earlier, and after any reorder Order equals the list index.
type Project struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	StartDate time.Time     `json:"start_date"`
	Deadline  time.Time     `json:"deadline"`
	Priority  Priority      `json:"priority"`
	Status    ProjectStatus `json:"status"`
	Order     int           `json:"order"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// DurationDays returns the inclusive number of calendar days the project spans
func (p *Project) DurationDays() int {
	start := time.Date(p.StartDate.Year(), p.StartDate.Month(), p.StartDate.Day(), 0, 0, 0, 0, p.StartDate.Location())
	end := time.Date(p.Deadline.Year(), p.Deadline.Month(), p.Deadline.Day(), 0, 0, 0, 0, p.Deadline.Location())
	return int(end.Sub(start).Hours()/24) + 1
}
