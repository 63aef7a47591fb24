// Package timeline maps between continuous drag coordinates and calendar
// date pairs on a week-based grid. The grid spans whole weeks: its left
// edge is the Sunday of the first visible week and TotalDays runs through
// the Saturday of the last.
package timeline

import (
	"math"
	"time"

	"github.com/ederv/plandeck/internal/dateutil"
)

// Grid describes the visible week grid. Width is in the continuous unit
// the pointer reports (pixels, or terminal cells in the TUI).
type Grid struct {
	Start     time.Time // Midnight of the leftmost day
	TotalDays int
	Width     float64
}

// WeekGrid builds a grid covering the whole weeks from first through last
func WeekGrid(first, last time.Time, width float64) Grid {
	start := dateutil.StartOfWeek(first)
	end := dateutil.EndOfWeek(last)
	return Grid{
		Start:     start,
		TotalDays: dateutil.DaysBetween(start, end) + 1,
		Width:     width,
	}
}

// Bar is a horizontal position and width as percentages of the grid
type Bar struct {
	LeftPercent  float64
	WidthPercent float64
}

// BarFor positions an inclusive [start, end] day pair on the grid.
// Offsets are whole days from the grid's left boundary; a single-day
// entity occupies one day of width.
func (g Grid) BarFor(start, end time.Time) Bar {
	if g.TotalDays <= 0 {
		return Bar{}
	}
	offset := dateutil.DaysBetween(g.Start, start)
	duration := dateutil.DaysBetween(start, end) + 1
	return Bar{
		LeftPercent:  float64(offset) / float64(g.TotalDays) * 100,
		WidthPercent: float64(duration) / float64(g.TotalDays) * 100,
	}
}

// DeltaDays snaps a pointer delta to whole days. The snap rounds to the
// nearest day so a drag commits only day-granular positions.
func (g Grid) DeltaDays(deltaPx float64) int {
	if g.Width <= 0 || g.TotalDays <= 0 {
		return 0
	}
	return int(math.Round(deltaPx / g.Width * float64(g.TotalDays)))
}

// DayAt returns the day under a grid coordinate, clamped to the grid
func (g Grid) DayAt(px float64) time.Time {
	if g.Width <= 0 || g.TotalDays <= 0 {
		return g.Start
	}
	idx := int(px / g.Width * float64(g.TotalDays))
	if idx < 0 {
		idx = 0
	}
	if idx >= g.TotalDays {
		idx = g.TotalDays - 1
	}
	return dateutil.AddDays(g.Start, idx)
}
