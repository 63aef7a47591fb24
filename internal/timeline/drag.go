package timeline

import (
	"time"

	"github.com/ederv/plandeck/internal/dateutil"
)

// Mode is the kind of drag gesture in progress
type Mode int

const (
	Move Mode = iota
	ResizeLeft
	ResizeRight
)

// State tracks the gesture lifecycle: idle until a pointer-down starts a
// drag, dragging while the pointer moves, committing from pointer-up
// until the persistence call resolves.
type State int

const (
	Idle State = iota
	Dragging
	Committing
)

// Commit is the single persistence request produced by a finished gesture
type Commit struct {
	EntityID string
	Start    time.Time
	End      time.Time
}

// Drag is the gesture state machine. All deltas are computed against the
// baseline captured at Begin, never against the previous frame, so
// repeated updates cannot accumulate drift.
type Drag struct {
	state State
	mode  Mode
	grid  Grid

	entityID string
	originPx float64

	// Baseline snapshot from gesture start
	baselineStart time.Time
	baselineEnd   time.Time

	// Last valid snapped preview
	previewStart time.Time
	previewEnd   time.Time
	hasPreview   bool
}

// Begin captures the drag baseline and enters the dragging state
func Begin(grid Grid, mode Mode, entityID string, originPx float64, start, end time.Time) *Drag {
	return &Drag{
		state:         Dragging,
		mode:          mode,
		grid:          grid,
		entityID:      entityID,
		originPx:      originPx,
		baselineStart: dateutil.StartOfDay(start),
		baselineEnd:   dateutil.StartOfDay(end),
	}
}

// State returns the current lifecycle state
func (d *Drag) State() State {
	return d.state
}

// EntityID returns the id of the entity being dragged
func (d *Drag) EntityID() string {
	return d.entityID
}

// Update recomputes the preview for the current pointer position.
// A delta that violates a resize guard is ignored outright: the preview
// keeps its last valid value rather than clamping to the boundary.
// Returns true when the preview changed.
func (d *Drag) Update(pointerPx float64) bool {
	if d.state != Dragging {
		return false
	}

	delta := d.grid.DeltaDays(pointerPx - d.originPx)
	if delta == 0 && !d.hasPreview {
		// Below the movement threshold: no preview yet
		return false
	}

	var start, end time.Time
	switch d.mode {
	case Move:
		// Duration is preserved exactly
		start = dateutil.AddDays(d.baselineStart, delta)
		end = dateutil.AddDays(d.baselineEnd, delta)
	case ResizeLeft:
		start = dateutil.AddDays(d.baselineStart, delta)
		end = d.baselineEnd
		if !start.Before(d.baselineEnd) {
			return false
		}
	case ResizeRight:
		start = d.baselineStart
		end = dateutil.AddDays(d.baselineEnd, delta)
		if !end.After(d.baselineStart) {
			return false
		}
	}

	if d.hasPreview && start.Equal(d.previewStart) && end.Equal(d.previewEnd) {
		return false
	}
	d.previewStart = start
	d.previewEnd = end
	d.hasPreview = true
	return true
}

// Preview returns the last valid snapped preview, if any
func (d *Drag) Preview() (start, end time.Time, ok bool) {
	if !d.hasPreview {
		return time.Time{}, time.Time{}, false
	}
	return d.previewStart, d.previewEnd, true
}

// End finishes the gesture. When a preview exists that differs from the
// baseline it returns the single Commit to persist and moves to the
// committing state; the preview is held until Settle is called. Without
// a preview (or with one equal to the baseline) the gesture ends
// immediately and no call is issued.
func (d *Drag) End() (Commit, bool) {
	if d.state != Dragging {
		return Commit{}, false
	}
	if !d.hasPreview ||
		(d.previewStart.Equal(d.baselineStart) && d.previewEnd.Equal(d.baselineEnd)) {
		d.state = Idle
		d.hasPreview = false
		return Commit{}, false
	}
	d.state = Committing
	return Commit{
		EntityID: d.entityID,
		Start:    d.previewStart,
		End:      d.previewEnd,
	}, true
}

// Settle resolves the commit: the persistence call has either replaced
// the preview with the committed value or failed, in which case the
// caller discards the preview and surfaces the error. Either way the
// machine returns to idle.
func (d *Drag) Settle() {
	d.state = Idle
	d.hasPreview = false
}

// Cancel aborts an in-flight gesture without issuing a call
func (d *Drag) Cancel() {
	d.state = Idle
	d.hasPreview = false
}
