package ui

// View represents the current active view
type View int

const (
	ViewBoard View = iota
	ViewTimeline
	ViewAgenda
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewBoard:
		return "Board"
	case ViewTimeline:
		return "Timeline"
	case ViewAgenda:
		return "Agenda"
	default:
		return "Unknown"
	}
}

// ErrorMsg contains an error to display in the footer
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display in the footer
type StatusMsg struct {
	Message string
}
