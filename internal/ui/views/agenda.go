package views

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ederv/plandeck/internal/dateutil"
	"github.com/ederv/plandeck/internal/model"
	"github.com/ederv/plandeck/internal/schedule"
	"github.com/ederv/plandeck/internal/store"
	"github.com/ederv/plandeck/internal/ui/theme"
)

// agendaEntry is one selectable line: a task scheduled on a day, or a
// standalone time segment.
type agendaEntry struct {
	day     string
	task    *model.Task
	segment *model.TimeSegment
}

// AgendaView lists what is scheduled in the current day or week window
type AgendaView struct {
	store  *store.Store
	width  int
	height int

	mode   schedule.Mode
	anchor time.Time

	entries []agendaEntry
	cursor  int
	scroll  int
}

// NewAgendaView creates a new agenda view
func NewAgendaView(st *store.Store) AgendaView {
	v := AgendaView{
		store:  st,
		mode:   schedule.ModeWeek,
		anchor: time.Now(),
	}
	v.reload()
	return v
}

// Init initializes the agenda view
func (v AgendaView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v AgendaView) SetSize(width, height int) AgendaView {
	v.width = width
	v.height = height
	return v
}

// reload rebuilds the window's entries from the store
func (v *AgendaView) reload() {
	w := schedule.WindowFor(v.mode, v.anchor)
	byTask := v.store.SegmentsByTask()

	tasks := schedule.FilterTasks(v.store.Tasks(), byTask, w)
	segments := schedule.FilterSegments(v.store.Segments(), w)

	var entries []agendaEntry
	for i := range tasks {
		t := tasks[i]
		for _, day := range schedule.BoxDates(t, byTask) {
			if !w.ContainsDay(day) {
				continue
			}
			entries = append(entries, agendaEntry{day: day, task: &tasks[i]})
		}
	}
	// Segments whose task resolves already show through the task's box
	// dates; dangling references still render on their own
	for i := range segments {
		if segments[i].TaskID != "" {
			if _, ok := v.store.TaskByID(segments[i].TaskID); ok {
				continue
			}
		}
		day := segments[i].Date
		if day == "" {
			day = dateutil.DayString(segments[i].StartTime)
		}
		entries = append(entries, agendaEntry{day: day, segment: &segments[i]})
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].day != entries[b].day {
			return entries[a].day < entries[b].day
		}
		// Tasks before standalone segments within a day
		return entries[a].task != nil && entries[b].task == nil
	})

	v.entries = entries
	if v.cursor >= len(entries) {
		if len(entries) > 0 {
			v.cursor = len(entries) - 1
		} else {
			v.cursor = 0
		}
	}
}

// Update handles messages
func (v AgendaView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SyncedMsg, TaskCreatedMsg, TaskUpdatedMsg, TaskDeletedMsg:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if v.cursor < len(v.entries)-1 {
				v.cursor++
				v.ensureCursorVisible()
			}
			return v, nil

		case "k", "up":
			if v.cursor > 0 {
				v.cursor--
				v.ensureCursorVisible()
			}
			return v, nil

		case "p":
			v.anchor = schedule.Previous(v.mode, v.anchor)
			v.reload()
			return v, nil

		case "n":
			v.anchor = schedule.Next(v.mode, v.anchor)
			v.reload()
			return v, nil

		case "t":
			v.anchor = time.Now()
			v.reload()
			return v, nil

		case "w":
			if v.mode == schedule.ModeWeek {
				v.mode = schedule.ModeDay
			} else {
				v.mode = schedule.ModeWeek
			}
			v.reload()
			return v, nil

		case "tab":
			return v, v.toggleCurrentTask()
		}
	}

	return v, nil
}

// toggleCurrentTask completes the selected task, which removes it from
// the window on the next reload
func (v AgendaView) toggleCurrentTask() tea.Cmd {
	if v.cursor >= len(v.entries) || v.entries[v.cursor].task == nil {
		return nil
	}
	task := *v.entries[v.cursor].task

	status := model.StatusCompleted
	if task.IsCompleted() {
		status = model.StatusTodo
	}

	st := v.store
	return func() tea.Msg {
		updated, err := st.SetTaskStatus(context.Background(), task.ID, status)
		return TaskUpdatedMsg{Task: updated, Err: err}
	}
}

func (v *AgendaView) ensureCursorVisible() {
	visible := v.visibleRowCount()
	if v.cursor >= v.scroll+visible {
		v.scroll = v.cursor - visible + 1
	}
	if v.cursor < v.scroll {
		v.scroll = v.cursor
	}
}

func (v *AgendaView) visibleRowCount() int {
	// Title, day headings, and footer hints eat into the height
	rows := v.height - 6
	if rows < 1 {
		return 1
	}
	return rows
}

// View renders the agenda
func (v AgendaView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	w := schedule.WindowFor(v.mode, v.anchor)

	var title string
	if v.mode == schedule.ModeDay {
		title = v.anchor.Format("Monday, Jan 2 2006")
	} else {
		title = fmt.Sprintf("Week of %s – %s", w.Start.Format("Jan 2"), w.End.Format("Jan 2"))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(title))
	b.WriteString("\n\n")

	visible := v.visibleRowCount()
	end := v.scroll + visible
	if end > len(v.entries) {
		end = len(v.entries)
	}

	lastDay := ""
	today := dateutil.DayString(time.Now())
	for i := v.scroll; i < end; i++ {
		e := v.entries[i]
		if e.day != lastDay {
			dayStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
			heading := e.day
			if d, err := dateutil.ParseDay(e.day); err == nil {
				heading = d.Format("Mon Jan 2")
			}
			if e.day == today {
				heading += " (today)"
				dayStyle = dayStyle.Foreground(t.TodayMarker)
			}
			b.WriteString(dayStyle.Render(heading))
			b.WriteString("\n")
			lastDay = e.day
		}
		b.WriteString(v.renderEntry(e, i == v.cursor))
		b.WriteString("\n")
	}

	if len(v.entries) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Subtle).Italic(true).Render("Nothing scheduled"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hints := "j/k: nav • tab: done • p/n: " + v.mode.String() + "s • t: today • w: day/week"
	b.WriteString(lipgloss.NewStyle().Foreground(t.Subtle).Render(hints))

	return b.String()
}

// renderEntry renders one agenda line
func (v AgendaView) renderEntry(e agendaEntry, selected bool) string {
	t := theme.Current.Theme

	style := lipgloss.NewStyle().Foreground(t.Foreground).Padding(0, 2)
	if selected {
		style = style.Background(t.Highlight)
	}

	if e.task != nil {
		task := e.task
		mark := "[ ]"
		if task.IsCompleted() {
			mark = "[x]"
			style = style.Foreground(t.Subtle)
		}
		var extra string
		if task.EstimatedMinutes != nil {
			extra = fmt.Sprintf(" (%dm)", *task.EstimatedMinutes)
		}
		if task.IsOverdue() {
			extra += lipgloss.NewStyle().Foreground(t.Error).Render(" overdue")
		}
		return style.Render(fmt.Sprintf("%s %s%s", mark, task.Title, extra))
	}

	seg := e.segment
	color := t.SegmentApp
	if seg.Source == model.SourceGoogle {
		color = t.SegmentExternal
	}
	span := fmt.Sprintf("%s-%s", seg.StartTime.Format("15:04"), seg.EndTime.Format("15:04"))
	return style.Render(" ◆ " + lipgloss.NewStyle().Foreground(color).Render(span) + " Untitled")
}

// IsInputMode returns whether the view is in input mode
func (v AgendaView) IsInputMode() bool {
	return false
}
