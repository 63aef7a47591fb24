package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ederv/plandeck/internal/api"
	"github.com/ederv/plandeck/internal/board"
	"github.com/ederv/plandeck/internal/model"
	"github.com/ederv/plandeck/internal/store"
	"github.com/ederv/plandeck/internal/ui/theme"
)

// BoardMode represents the current input mode
type BoardMode int

const (
	BoardModeNormal BoardMode = iota
	BoardModeAdd
	BoardModeConfirmDelete
)

// BoardView is the kanban board over the shared store
type BoardView struct {
	store  *store.Store
	width  int
	height int

	// Tasks organized by column, refreshed from the store on each data
	// message
	columns map[board.Column][]model.Task

	// Navigation state
	currentColumn int
	cursorRow     int

	// Per-column scroll offset
	columnScroll [3]int

	// Subtask counts: map[taskID] -> [total, done]
	subtaskCounts map[string][2]int

	mode      BoardMode
	textInput textinput.Model

	deleteTaskID string
}

// NewBoardView creates a new board view
func NewBoardView(st *store.Store) BoardView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	v := BoardView{
		store:         st,
		textInput:     ti,
		subtaskCounts: make(map[string][2]int),
	}
	v.reload()
	return v
}

// Init initializes the board view
func (v BoardView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v BoardView) SetSize(width, height int) BoardView {
	v.width = width
	v.height = height
	return v
}

// reload re-partitions the store's tasks into columns
func (v *BoardView) reload() {
	tasks := v.store.Tasks()

	counts := make(map[string][2]int)
	for _, t := range tasks {
		if t.ParentTaskID == nil {
			continue
		}
		c := counts[*t.ParentTaskID]
		c[0]++
		if t.IsCompleted() {
			c[1]++
		}
		counts[*t.ParentTaskID] = c
	}
	v.subtaskCounts = counts

	// Board shows top-level tasks only; subtasks appear as counts on
	// their parent card
	topLevel := tasks[:0:0]
	for _, t := range tasks {
		if !t.IsSubtask() {
			topLevel = append(topLevel, t)
		}
	}
	v.columns = board.Partition(topLevel)
	v.clampCursor()
}

func (v *BoardView) column(i int) []model.Task {
	if i < 0 || i >= len(board.Columns) {
		return nil
	}
	return v.columns[board.Columns[i]]
}

// Update handles messages
func (v BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SyncedMsg, TaskCreatedMsg, TaskUpdatedMsg, TaskDeletedMsg:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case BoardModeAdd:
			return v.handleAddMode(msg)
		case BoardModeConfirmDelete:
			return v.handleConfirmDeleteMode(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	if v.mode == BoardModeAdd {
		var cmd tea.Cmd
		v.textInput, cmd = v.textInput.Update(msg)
		return v, cmd
	}

	return v, nil
}

// handleNormalMode handles keys in normal mode
func (v BoardView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		if v.currentColumn > 0 {
			v.currentColumn--
			v.clampCursor()
		}
		return v, nil

	case "l", "right":
		if v.currentColumn < len(board.Columns)-1 {
			v.currentColumn++
			v.clampCursor()
		}
		return v, nil

	case "j", "down":
		if v.cursorRow < len(v.column(v.currentColumn))-1 {
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

	case "g":
		v.cursorRow = 0
		v.columnScroll[v.currentColumn] = 0
		return v, nil

	case "G":
		if col := v.column(v.currentColumn); len(col) > 0 {
			v.cursorRow = len(col) - 1
			v.ensureCursorVisible()
		}
		return v, nil

	case "H":
		return v, v.moveTask(-1)

	case "L":
		return v, v.moveTask(1)

	case "tab":
		return v, v.toggleCurrentTask()

	case "a":
		v.mode = BoardModeAdd
		v.textInput.SetValue("")
		v.textInput.Placeholder = "New task..."
		v.textInput.Focus()
		return v, nil

	case "d":
		if col := v.column(v.currentColumn); len(col) > 0 && v.cursorRow < len(col) {
			v.deleteTaskID = col[v.cursorRow].ID
			v.mode = BoardModeConfirmDelete
		}
		return v, nil
	}

	return v, nil
}

// handleAddMode handles keys in add mode
func (v BoardView) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(v.textInput.Value())
		if title != "" {
			v.mode = BoardModeNormal
			v.textInput.Blur()
			return v, v.createTask(title)
		}
		return v, nil
	case "esc":
		v.mode = BoardModeNormal
		v.textInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.textInput, cmd = v.textInput.Update(msg)
	return v, cmd
}

// handleConfirmDeleteMode handles keys in delete confirmation mode
func (v BoardView) handleConfirmDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = BoardModeNormal
		taskID := v.deleteTaskID
		v.deleteTaskID = ""
		return v, v.deleteTask(taskID)
	case "n", "N", "esc":
		v.mode = BoardModeNormal
		v.deleteTaskID = ""
		return v, nil
	}
	return v, nil
}

// clampCursor ensures cursor is valid for current column
func (v *BoardView) clampCursor() {
	col := v.column(v.currentColumn)
	if v.cursorRow >= len(col) {
		if len(col) > 0 {
			v.cursorRow = len(col) - 1
		} else {
			v.cursorRow = 0
		}
	}
	v.ensureCursorVisible()
}

// ensureCursorVisible adjusts scroll to keep cursor in view
func (v *BoardView) ensureCursorVisible() {
	visibleItems := v.visibleItemCount()
	if visibleItems <= 0 {
		visibleItems = 5
	}

	col := v.currentColumn
	if v.cursorRow >= v.columnScroll[col]+visibleItems {
		v.columnScroll[col] = v.cursorRow - visibleItems + 1
	}
	if v.cursorRow < v.columnScroll[col] {
		v.columnScroll[col] = v.cursorRow
	}
}

// visibleItemCount returns how many items fit in the column height
func (v *BoardView) visibleItemCount() int {
	// Header row, border, and scroll indicators take 7 lines
	availableHeight := v.height - 7
	if availableHeight < 1 {
		return 1
	}
	return availableHeight
}

// moveTask moves the current task to an adjacent column. Transitions off
// either edge of the board are ignored.
func (v BoardView) moveTask(direction int) tea.Cmd {
	col := v.column(v.currentColumn)
	if len(col) == 0 || v.cursorRow >= len(col) {
		return nil
	}

	destIndex := v.currentColumn + direction
	if destIndex < 0 || destIndex >= len(board.Columns) {
		return nil
	}

	task := col[v.cursorRow]
	status, ok := board.Transition(task, board.Columns[destIndex])
	if !ok {
		return nil
	}

	st := v.store
	return func() tea.Msg {
		updated, err := st.SetTaskStatus(context.Background(), task.ID, status)
		return TaskUpdatedMsg{Task: updated, Err: err}
	}
}

// toggleCurrentTask toggles the done status of the current task
func (v BoardView) toggleCurrentTask() tea.Cmd {
	col := v.column(v.currentColumn)
	if len(col) == 0 || v.cursorRow >= len(col) {
		return nil
	}

	task := col[v.cursorRow]
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

// createTask creates a new task in the current column
func (v BoardView) createTask(title string) tea.Cmd {
	status, ok := board.StatusFor(board.Columns[v.currentColumn])
	if !ok {
		status = model.StatusTodo
	}

	st := v.store
	return func() tea.Msg {
		task, err := st.CreateTask(context.Background(), api.CreateTaskRequest{
			Title:  title,
			Status: status,
		})
		return TaskCreatedMsg{Task: task, Err: err}
	}
}

// deleteTask deletes a task
func (v BoardView) deleteTask(taskID string) tea.Cmd {
	st := v.store
	return func() tea.Msg {
		err := st.DeleteTask(context.Background(), taskID)
		return TaskDeletedMsg{TaskID: taskID, Err: err}
	}
}

// View renders the board
func (v BoardView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	columnColors := map[board.Column]lipgloss.Color{
		board.ColumnTodo:       t.StatusTodo,
		board.ColumnInProgress: t.StatusInProgress,
		board.ColumnCompleted:  t.StatusCompleted,
	}

	colWidth := (v.width - 4) / len(board.Columns)
	if colWidth < 25 {
		colWidth = 25
	}

	headerStyle := func(c board.Column, active bool) lipgloss.Style {
		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(columnColors[c]).
			Width(colWidth).
			Align(lipgloss.Center)
		if active {
			s = s.Background(t.Highlight)
		}
		return s
	}

	columnStyle := lipgloss.NewStyle().
		Width(colWidth).
		Height(v.height - 3).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	var headers []string
	for i, c := range board.Columns {
		tasks := v.column(i)
		header := fmt.Sprintf("%s (%d)", c.Title(), len(tasks))
		headers = append(headers, headerStyle(c, i == v.currentColumn).Render(header))
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, headers...)

	visibleItems := v.visibleItemCount()
	var cols []string
	for i := range board.Columns {
		tasks := v.column(i)
		isActiveCol := i == v.currentColumn
		scrollOffset := v.columnScroll[i]

		startIdx := scrollOffset
		endIdx := scrollOffset + visibleItems
		if startIdx > len(tasks) {
			startIdx = len(tasks)
		}
		if endIdx > len(tasks) {
			endIdx = len(tasks)
		}

		var items []string
		if scrollOffset > 0 {
			items = append(items, lipgloss.NewStyle().
				Foreground(t.Subtle).
				Width(colWidth-4).
				Align(lipgloss.Center).
				Render(fmt.Sprintf("↑ %d more", scrollOffset)))
		}

		for j := startIdx; j < endIdx; j++ {
			items = append(items, v.renderCard(tasks[j], colWidth, isActiveCol && j == v.cursorRow))
		}

		if endIdx < len(tasks) {
			items = append(items, lipgloss.NewStyle().
				Foreground(t.Subtle).
				Width(colWidth-4).
				Align(lipgloss.Center).
				Render(fmt.Sprintf("↓ %d more", len(tasks)-endIdx)))
		}

		content := strings.Join(items, "\n")
		if len(tasks) == 0 {
			content = lipgloss.NewStyle().
				Foreground(t.Subtle).
				Italic(true).
				Render("(empty)")
		}

		cs := columnStyle
		if isActiveCol {
			cs = cs.BorderForeground(t.Primary)
		}
		cols = append(cols, cs.Render(content))
	}
	columnsRow := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	var footer string
	switch v.mode {
	case BoardModeAdd:
		footer = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1).
			Width(v.width - 4).
			Render("Add task: " + v.textInput.View())
	case BoardModeConfirmDelete:
		taskTitle := ""
		if col := v.column(v.currentColumn); v.cursorRow < len(col) {
			taskTitle = col[v.cursorRow].Title
		}
		footer = lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true).
			Render(fmt.Sprintf("Delete '%s'? (y/n)", taskTitle))
	default:
		hints := "h/l: column • j/k: nav • H/L: move • tab: done • a: add • d: del"
		footer = lipgloss.NewStyle().Foreground(t.Subtle).Render(hints)
	}

	return lipgloss.JoinVertical(lipgloss.Left, headerRow, columnsRow, footer)
}

// renderCard renders one task card line
func (v BoardView) renderCard(task model.Task, colWidth int, selected bool) string {
	t := theme.Current.Theme

	cardStyle := lipgloss.NewStyle().
		Width(colWidth - 4).
		Padding(0, 1).
		Foreground(t.Foreground)
	if selected {
		cardStyle = cardStyle.Background(t.Highlight)
	}

	priorityChar := ""
	priorityStyle := lipgloss.NewStyle()
	switch task.Priority {
	case model.PriorityUrgent:
		priorityChar = priorityStyle.Foreground(t.PriorityUrgent).Render("!")
	case model.PriorityHigh:
		priorityChar = priorityStyle.Foreground(t.PriorityHigh).Render("▲")
	case model.PriorityMedium:
		priorityChar = priorityStyle.Foreground(t.PriorityMedium).Render("●")
	case model.PriorityLow:
		priorityChar = priorityStyle.Foreground(t.PriorityLow).Render("▽")
	}

	var deadlineStr string
	deadlineLen := 0
	if task.Deadline != nil {
		d := task.Deadline.Format("Jan 2")
		style := lipgloss.NewStyle().Foreground(t.Warning)
		if task.IsOverdue() {
			style = lipgloss.NewStyle().Foreground(t.Error)
		}
		deadlineStr = style.Render(" " + d)
		deadlineLen = len(d) + 1
	}

	var subtaskStr string
	subtaskLen := 0
	if counts, ok := v.subtaskCounts[task.ID]; ok {
		total, done := counts[0], counts[1]
		style := lipgloss.NewStyle().Foreground(t.Subtle)
		if done == total {
			style = lipgloss.NewStyle().Foreground(t.Success)
		}
		plain := fmt.Sprintf(" (%d/%d)", done, total)
		subtaskStr = style.Render(plain)
		subtaskLen = len(plain)
	}

	title := task.Title
	maxTitleLen := colWidth - 8 - deadlineLen - subtaskLen
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	return cardStyle.Render(fmt.Sprintf("%s %s%s%s", priorityChar, title, subtaskStr, deadlineStr))
}

// IsInputMode returns whether the view is in input mode
func (v BoardView) IsInputMode() bool {
	return v.mode == BoardModeAdd || v.mode == BoardModeConfirmDelete
}
