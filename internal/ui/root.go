package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ederv/plandeck/internal/app"
	"github.com/ederv/plandeck/internal/ui/theme"
	"github.com/ederv/plandeck/internal/ui/views"
)

// Debug logging (enable by setting PLANDECK_DEBUG=1)
var rootDebugLog *os.File

func init() {
	if os.Getenv("PLANDECK_DEBUG") == "1" {
		rootDebugLog, _ = os.OpenFile("/tmp/plandeck-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	}
}

func rootDebugf(format string, args ...interface{}) {
	if rootDebugLog != nil {
		fmt.Fprintf(rootDebugLog, format+"\n", args...)
		rootDebugLog.Sync()
	}
}

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView  View
	boardView    views.BoardView
	timelineView views.TimelineView
	agendaView   views.AgendaView
	helpVisible  bool

	syncing   bool
	reminded  bool
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	return RootModel{
		app:          application,
		keys:         DefaultKeyMap(),
		help:         h,
		currentView:  ViewBoard,
		boardView:    views.NewBoardView(application.Store),
		timelineView: views.NewTimelineView(application.Store),
		agendaView:   views.NewAgendaView(application.Store),
		syncing:      true,
	}
}

// WithView returns a copy of the model starting on the given view
func (m RootModel) WithView(v View) RootModel {
	m.currentView = v
	return m
}

// Init starts the initial backend sync
func (m RootModel) Init() tea.Cmd {
	rootDebugf("RootModel.Init()")
	return m.syncCmd()
}

// syncCmd reloads everything from the backend and refreshes the local
// snapshot on success
func (m RootModel) syncCmd() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		if err := a.Store.Load(context.Background()); err != nil {
			return views.SyncedMsg{Err: err}
		}
		if err := a.SaveSnapshot(); err != nil {
			rootDebugf("snapshot save failed: %v", err)
		}
		return views.SyncedMsg{}
	}
}

// deadlineReminderCmd sends one desktop reminder per task due within a
// day, once per session after the first successful sync
func (m RootModel) deadlineReminderCmd() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		now := time.Now()
		for _, t := range a.Store.Tasks() {
			if t.Deadline == nil || t.IsCompleted() || t.IsSubtask() {
				continue
			}
			dueIn := t.Deadline.Sub(now)
			if dueIn < 24*time.Hour {
				a.Notifier.SendDeadlineReminder(t.Title, dueIn)
			}
		}
		return nil
	}
}

// isDataMsg reports whether a message should reach every view, not just
// the active one
func isDataMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case views.SyncedMsg, views.TaskCreatedMsg, views.TaskUpdatedMsg,
		views.TaskDeletedMsg, views.ProjectRescheduledMsg, views.ProjectsReorderedMsg:
		return true
	}
	return false
}

// mutationErr extracts the error carried by a resolved mutation message
func mutationErr(msg tea.Msg) (error, bool) {
	switch msg := msg.(type) {
	case views.TaskCreatedMsg:
		return msg.Err, true
	case views.TaskUpdatedMsg:
		return msg.Err, true
	case views.TaskDeletedMsg:
		return msg.Err, true
	case views.ProjectRescheduledMsg:
		return msg.Err, true
	case views.ProjectsReorderedMsg:
		return msg.Err, true
	}
	return nil, false
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	rootDebugf("RootModel.Update received msg type: %T", msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header and footer
		contentHeight := m.height - 4
		m.boardView = m.boardView.SetSize(m.width, contentHeight)
		m.timelineView = m.timelineView.SetSize(m.width, contentHeight)
		m.agendaView = m.agendaView.SetSize(m.width, contentHeight)

	case tea.KeyMsg:
		m.statusMsg = ""
		m.errorMsg = ""

		isInputMode := false
		switch m.currentView {
		case ViewBoard:
			isInputMode = m.boardView.IsInputMode()
		case ViewTimeline:
			isInputMode = m.timelineView.IsInputMode()
		case ViewAgenda:
			isInputMode = m.agendaView.IsInputMode()
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil
		}

		if isInputMode {
			break // Fall through to view delegation
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.syncing = true
			m.statusMsg = "Syncing..."
			return m, m.syncCmd()

		case key.Matches(msg, m.keys.BoardView):
			m.currentView = ViewBoard
			return m, nil
		case key.Matches(msg, m.keys.TimelineView):
			m.currentView = ViewTimeline
			return m, nil
		case key.Matches(msg, m.keys.AgendaView):
			m.currentView = ViewAgenda
			return m, nil
		}

	case views.SyncedMsg:
		m.syncing = false
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
		} else {
			m.statusMsg = "Synced"
			if !m.reminded {
				m.reminded = true
				cmds = append(cmds, m.deadlineReminderCmd())
			}
		}

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil
	}

	if err, ok := mutationErr(msg); ok {
		if err != nil {
			m.errorMsg = err.Error()
			m.app.Notifier.SendSyncFailed("change not saved", err)
		} else {
			// Keep the on-disk snapshot close to the backend state
			cmds = append(cmds, func() tea.Msg {
				if err := m.app.SaveSnapshot(); err != nil {
					rootDebugf("snapshot save failed: %v", err)
				}
				return nil
			})
		}
	}

	if isDataMsg(msg) {
		// Every view renders from the shared store, so all of them
		// need to re-read it
		newBoard, cmd := m.boardView.Update(msg)
		m.boardView = newBoard.(views.BoardView)
		cmds = append(cmds, cmd)
		newTimeline, cmd := m.timelineView.Update(msg)
		m.timelineView = newTimeline.(views.TimelineView)
		cmds = append(cmds, cmd)
		newAgenda, cmd := m.agendaView.Update(msg)
		m.agendaView = newAgenda.(views.AgendaView)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	switch m.currentView {
	case ViewBoard:
		newBoard, cmd := m.boardView.Update(msg)
		m.boardView = newBoard.(views.BoardView)
		cmds = append(cmds, cmd)
	case ViewTimeline:
		newTimeline, cmd := m.timelineView.Update(msg)
		m.timelineView = newTimeline.(views.TimelineView)
		cmds = append(cmds, cmd)
	case ViewAgenda:
		newAgenda, cmd := m.agendaView.Update(msg)
		m.agendaView = newAgenda.(views.AgendaView)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight--
	}

	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentView {
		case ViewBoard:
			content = m.boardView.View()
		case ViewTimeline:
			content = m.timelineView.View()
		case ViewAgenda:
			content = m.agendaView.View()
		}
	}

	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("plandeck")

	sub := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	viewIndicator := sub.Render(fmt.Sprintf("[%s]", m.currentView.String()))

	var syncIndicator string
	if m.syncing {
		syncIndicator = sub.Render("syncing…")
	} else if m.app.Config.DevMode {
		syncIndicator = sub.Render("dev")
	}

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, viewIndicator)
	rightSide := syncIndicator + sub.Render(fmt.Sprintf("theme: %s", t.Name))

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	keyHint := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	line := keyHint("1-3", "views") + sep +
		keyHint("r", "sync") + sep +
		keyHint("ctrl+t", "theme") + sep +
		keyHint("?", "help") + sep +
		keyHint("q", "quit")

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	section := func(b *strings.Builder, name string, rows [][]string) {
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, kv := range rows {
			b.WriteString(keyStyle.Render(kv[0]))
			b.WriteString(descStyle.Render(kv[1]))
			b.WriteString("\n")
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Plandeck Help"))
	b.WriteString("\n\n")

	section(&b, "Views", [][]string{
		{"1", "Board (kanban columns)"},
		{"2", "Timeline (project gantt)"},
		{"3", "Agenda (day/week window)"},
	})

	section(&b, "Board", [][]string{
		{"h/l j/k", "Navigate columns and cards"},
		{"H / L", "Move task to adjacent column"},
		{"tab", "Toggle done"},
		{"a / d", "Add / delete task"},
	})

	section(&b, "Timeline", [][]string{
		{"j/k", "Select project"},
		{"g", "Grab bar (then h/l, enter, esc)"},
		{"[ / ]", "Resize start / deadline"},
		{"J / K", "Reorder projects"},
		{"p/n t", "Shift weeks, jump to today"},
	})

	section(&b, "Agenda", [][]string{
		{"p/n t", "Previous/next period, today"},
		{"w", "Toggle day/week window"},
		{"tab", "Toggle done"},
	})

	section(&b, "System", [][]string{
		{"r", "Sync with backend"},
		{"ctrl+t", "Cycle theme"},
		{"q / ctrl+c", "Quit"},
	})

	b.WriteString("\n")
	b.WriteString(descStyle.Render("Press ? to close"))
	return b.String()
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
}
