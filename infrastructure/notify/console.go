package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"memoboard/application/ports"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// ConsoleSink prints each notification as one styled line
type ConsoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleSink writes notifications to w
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// Show implements Sink
func (s *ConsoleSink) Show(n ports.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s %s\n", Mark(n.Severity), n.Message)
}

// Dismiss implements Sink. Printed lines stay in the scrollback.
func (s *ConsoleSink) Dismiss() {}

// Mark renders the symbol shown in front of a notification
func Mark(severity ports.Severity) string {
	switch severity {
	case ports.SeveritySuccess:
		return successStyle.Render("✓")
	case ports.SeverityError:
		return errorStyle.Render("✗")
	default:
		return infoStyle.Render("•")
	}
}
