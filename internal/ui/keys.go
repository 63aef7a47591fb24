package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Actions
	Add       key.Binding
	Delete    key.Binding
	Toggle    key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Grab      key.Binding
	Commit    key.Binding

	// Time navigation
	PrevPeriod key.Binding
	NextPeriod key.Binding
	Today      key.Binding
	CycleMode  key.Binding

	// Views
	BoardView    key.Binding
	TimelineView key.Binding
	AgendaView   key.Binding

	// General
	Refresh    key.Binding
	Help       key.Binding
	ThemeCycle key.Binding
	Quit       key.Binding
	Cancel     key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle done"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "move left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "move right"),
		),
		Grab: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "grab bar"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "commit"),
		),

		PrevPeriod: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous"),
		),
		NextPeriod: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		CycleMode: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "day/week"),
		),

		BoardView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "board"),
		),
		TimelineView: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "timeline"),
		),
		AgendaView: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "agenda"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("escape"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Add, k.Delete, k.Toggle},
		{k.MoveLeft, k.MoveRight, k.Grab, k.Commit},
		{k.PrevPeriod, k.NextPeriod, k.Today, k.CycleMode},
		{k.BoardView, k.TimelineView, k.AgendaView},
		{k.Refresh, k.ThemeCycle, k.Help, k.Quit},
	}
}
