package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ederv/plandeck/internal/dateutil"
	"github.com/ederv/plandeck/internal/model"
	"github.com/ederv/plandeck/internal/store"
	"github.com/ederv/plandeck/internal/timeline"
	"github.com/ederv/plandeck/internal/ui/theme"
)

const (
	timelineLabelWidth = 24
	timelineWeeks      = 4
	timelineHeaderRows = 2
)

// TimelineView is the project gantt over a week grid. A bar can be
// grabbed with the keyboard or the mouse; while a gesture is in
// progress the preview dates render instead of the stored ones, and
// they stay up until the reschedule round-trip resolves.
type TimelineView struct {
	store  *store.Store
	width  int
	height int

	// First visible week contains this day
	anchor time.Time

	projects  []model.Project
	cursorRow int
	scroll    int

	drag     *timeline.Drag
	dayDelta int
}

// NewTimelineView creates a new timeline view
func NewTimelineView(st *store.Store) TimelineView {
	v := TimelineView{
		store:  st,
		anchor: time.Now(),
	}
	v.reload()
	return v
}

// Init initializes the timeline view
func (v TimelineView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v TimelineView) SetSize(width, height int) TimelineView {
	v.width = width
	v.height = height
	return v
}

func (v *TimelineView) reload() {
	v.projects = v.store.Projects()
	if v.cursorRow >= len(v.projects) {
		if len(v.projects) > 0 {
			v.cursorRow = len(v.projects) - 1
		} else {
			v.cursorRow = 0
		}
	}
}

// grid returns the current week grid sized to the lane area
func (v TimelineView) grid() timeline.Grid {
	laneWidth := v.width - timelineLabelWidth - 2
	if laneWidth < 7 {
		laneWidth = 7
	}
	first := dateutil.StartOfWeek(v.anchor)
	last := dateutil.AddDays(first, timelineWeeks*7-1)
	return timeline.WeekGrid(first, last, float64(laneWidth))
}

// dayPx returns the pointer distance of one day on the current grid
func (v TimelineView) dayPx() float64 {
	g := v.grid()
	return g.Width / float64(g.TotalDays)
}

// Update handles messages
func (v TimelineView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SyncedMsg, ProjectsReorderedMsg:
		v.reload()
		return v, nil

	case ProjectRescheduledMsg:
		// Preview holds until the round-trip resolves
		if v.drag != nil {
			if msg.Err == nil {
				v.drag.Settle()
			} else {
				v.drag.Cancel()
			}
			v.drag = nil
		}
		v.reload()
		return v, nil

	case tea.MouseMsg:
		return v.handleMouse(msg)

	case tea.KeyMsg:
		if v.drag != nil && v.drag.State() == timeline.Dragging {
			return v.handleDragKeys(msg)
		}
		return v.handleNormalKeys(msg)
	}

	return v, nil
}

// handleNormalKeys handles keys outside a drag gesture
func (v TimelineView) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if v.cursorRow < len(v.projects)-1 {
			v.cursorRow++
			v.ensureCursorVisible()
		}
		return v, nil

	case "k", "up":
		if v.cursorRow > 0 {
			v.cursorRow--
			v.ensureCursorVisible()
		}
		return v, nil

	case "J":
		return v.reorder(v.cursorRow, v.cursorRow+1)

	case "K":
		return v.reorder(v.cursorRow, v.cursorRow-1)

	case "g":
		return v.beginDrag(timeline.Move), nil

	case "[":
		return v.beginDrag(timeline.ResizeLeft), nil

	case "]":
		return v.beginDrag(timeline.ResizeRight), nil

	case "p":
		v.anchor = dateutil.AddDays(v.anchor, -7)
		return v, nil

	case "n":
		v.anchor = dateutil.AddDays(v.anchor, 7)
		return v, nil

	case "t":
		v.anchor = time.Now()
		return v, nil
	}

	return v, nil
}

// handleDragKeys drives a keyboard gesture: h/l nudge the pointer one
// day at a time, enter commits, esc cancels.
func (v TimelineView) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		v.dayDelta--
		v.drag.Update(float64(v.dayDelta) * v.dayPx())
		return v, nil

	case "l", "right":
		v.dayDelta++
		v.drag.Update(float64(v.dayDelta) * v.dayPx())
		return v, nil

	case "enter":
		return v.commitDrag()

	case "esc":
		v.drag.Cancel()
		v.drag = nil
		return v, nil
	}

	return v, nil
}

// beginDrag starts a keyboard gesture on the selected project
func (v TimelineView) beginDrag(mode timeline.Mode) TimelineView {
	if v.cursorRow >= len(v.projects) {
		return v
	}
	p := v.projects[v.cursorRow]
	v.dayDelta = 0
	v.drag = timeline.Begin(v.grid(), mode, p.ID, 0, p.StartDate, p.Deadline)
	return v
}

// commitDrag finishes the gesture and issues the reschedule call
func (v TimelineView) commitDrag() (tea.Model, tea.Cmd) {
	commit, ok := v.drag.End()
	if !ok {
		// Nothing moved; the gesture just ends
		v.drag = nil
		return v, nil
	}

	st := v.store
	return v, func() tea.Msg {
		p, err := st.RescheduleProject(context.Background(), commit.EntityID, commit.Start, commit.End)
		return ProjectRescheduledMsg{Project: p, Err: err}
	}
}

// handleMouse maps mouse gestures onto the drag state machine
func (v TimelineView) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	laneLeft := timelineLabelWidth + 1
	row := msg.Y - timelineHeaderRows + v.scroll
	px := float64(msg.X - laneLeft)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return v, nil
		}
		if row < 0 || row >= len(v.projects) {
			return v, nil
		}
		v.cursorRow = row
		p := v.projects[row]

		// Pressing near a bar edge resizes; anywhere else on the row
		// moves the whole bar
		g := v.grid()
		bar := g.BarFor(p.StartDate, p.Deadline)
		left := bar.LeftPercent / 100 * g.Width
		right := left + bar.WidthPercent/100*g.Width
		mode := timeline.Move
		if px >= left-1 && px <= left+1 {
			mode = timeline.ResizeLeft
		} else if px >= right-1 && px <= right+1 {
			mode = timeline.ResizeRight
		}
		v.drag = timeline.Begin(g, mode, p.ID, px, p.StartDate, p.Deadline)
		return v, nil

	case tea.MouseActionMotion:
		if v.drag != nil && v.drag.State() == timeline.Dragging {
			v.drag.Update(px)
		}
		return v, nil

	case tea.MouseActionRelease:
		if v.drag != nil && v.drag.State() == timeline.Dragging {
			v.drag.Update(px)
			return v.commitDrag()
		}
		return v, nil
	}

	return v, nil
}

// reorder moves the project at src to dst in display order
func (v TimelineView) reorder(src, dst int) (tea.Model, tea.Cmd) {
	if src < 0 || src >= len(v.projects) || dst < 0 || dst >= len(v.projects) || src == dst {
		return v, nil
	}
	v.cursorRow = dst

	st := v.store
	return v, func() tea.Msg {
		err := st.ReorderProjects(context.Background(), src, dst)
		return ProjectsReorderedMsg{Err: err}
	}
}

func (v *TimelineView) ensureCursorVisible() {
	visible := v.visibleRowCount()
	if v.cursorRow >= v.scroll+visible {
		v.scroll = v.cursorRow - visible + 1
	}
	if v.cursorRow < v.scroll {
		v.scroll = v.cursorRow
	}
}

func (v *TimelineView) visibleRowCount() int {
	rows := v.height - timelineHeaderRows - 2
	if rows < 1 {
		return 1
	}
	return rows
}

// View renders the timeline
func (v TimelineView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	g := v.grid()
	laneWidth := int(g.Width)

	var b strings.Builder
	b.WriteString(v.renderHeader(g, laneWidth))
	b.WriteString("\n")

	visible := v.visibleRowCount()
	end := v.scroll + visible
	if end > len(v.projects) {
		end = len(v.projects)
	}

	todayCol := v.todayColumn(g, laneWidth)

	for i := v.scroll; i < end; i++ {
		p := v.projects[i]
		b.WriteString(v.renderRow(p, g, laneWidth, todayCol, i == v.cursorRow))
		b.WriteString("\n")
	}
	if len(v.projects) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Subtle).Italic(true).Render("(no projects)"))
		b.WriteString("\n")
	}

	var hints string
	if v.drag != nil && v.drag.State() == timeline.Dragging {
		hints = "h/l: nudge • enter: commit • esc: cancel"
	} else {
		hints = "j/k: select • g: grab • [ ]: resize • J/K: reorder • p/n: weeks • t: today"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(t.Subtle).Render(hints))

	return b.String()
}

// renderHeader renders the week boundary labels above the lane
func (v TimelineView) renderHeader(g timeline.Grid, laneWidth int) string {
	t := theme.Current.Theme

	label := lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		Width(timelineLabelWidth).
		Render("Project")

	lane := make([]rune, laneWidth)
	for i := range lane {
		lane[i] = ' '
	}
	header := string(lane)

	// One label per week, placed at the week's left boundary
	for w := 0; w < timelineWeeks; w++ {
		day := dateutil.AddDays(g.Start, w*7)
		col := int(float64(w*7) / float64(g.TotalDays) * float64(laneWidth))
		text := day.Format("Jan 2")
		if col+len(text) <= laneWidth {
			header = header[:col] + text + header[col+len(text):]
		}
	}

	return label + " " + lipgloss.NewStyle().Foreground(t.Secondary).Render(header) + "\n" +
		strings.Repeat(" ", timelineLabelWidth+1) + lipgloss.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", laneWidth))
}

// todayColumn returns the lane column for today, or -1 when outside the grid
func (v TimelineView) todayColumn(g timeline.Grid, laneWidth int) int {
	days := dateutil.DaysBetween(g.Start, time.Now())
	if days < 0 || days >= g.TotalDays {
		return -1
	}
	return int(float64(days) / float64(g.TotalDays) * float64(laneWidth))
}

// renderRow renders one project label and bar
func (v TimelineView) renderRow(p model.Project, g timeline.Grid, laneWidth, todayCol int, selected bool) string {
	t := theme.Current.Theme

	start, end := p.StartDate, p.Deadline
	dragging := false
	if v.drag != nil && v.drag.EntityID() == p.ID {
		if ps, pe, ok := v.drag.Preview(); ok {
			start, end = ps, pe
			dragging = true
		}
	}

	bar := g.BarFor(start, end)
	left := int(bar.LeftPercent / 100 * float64(laneWidth))
	width := int(bar.WidthPercent/100*float64(laneWidth) + 0.5)
	if width < 1 {
		width = 1
	}

	lane := make([]rune, laneWidth)
	for i := range lane {
		lane[i] = ' '
	}
	if todayCol >= 0 {
		lane[todayCol] = '·'
	}
	for i := left; i < left+width && i < laneWidth; i++ {
		if i < 0 {
			continue
		}
		lane[i] = '█'
	}

	fill := t.BarFill
	if dragging {
		fill = t.BarDragging
	}

	name := p.Name
	if len(name) > timelineLabelWidth-1 {
		name = name[:timelineLabelWidth-4] + "..."
	}
	labelStyle := lipgloss.NewStyle().Width(timelineLabelWidth).Foreground(t.Foreground)
	if selected {
		labelStyle = labelStyle.Background(t.Highlight).Bold(true)
	}
	if p.Status == model.ProjectCompleted {
		labelStyle = labelStyle.Foreground(t.Subtle).Strikethrough(true)
	}

	dates := fmt.Sprintf(" %s → %s", dateutil.DayString(start), dateutil.DayString(end))
	if !selected {
		dates = ""
	}

	return labelStyle.Render(name) + " " +
		lipgloss.NewStyle().Foreground(fill).Render(string(lane)) +
		lipgloss.NewStyle().Foreground(t.Subtle).Render(dates)
}

// IsInputMode reports whether a drag gesture should swallow global keys
func (v TimelineView) IsInputMode() bool {
	return v.drag != nil
}
