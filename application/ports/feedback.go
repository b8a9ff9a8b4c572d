package ports

import "time"

// Severity classifies a user notification
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification is a single piece of user feedback
type Notification struct {
	Message  string    `json:"message"`
	Severity Severity  `json:"type"`
	ShownAt  time.Time `json:"shownAt"`
}

// Notifier delivers fire-and-forget feedback to the user
type Notifier interface {
	Notify(message string, severity Severity)
}

// NotifierFunc adapts a function to the Notifier interface
type NotifierFunc func(message string, severity Severity)

// Notify calls f(message, severity)
func (f NotifierFunc) Notify(message string, severity Severity) {
	f(message, severity)
}

// Confirmer asks the user to approve a destructive action
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface
type ConfirmFunc func(prompt string) bool

// Confirm calls f(prompt)
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// AlwaysConfirm approves every prompt. Used by surfaces where the request
// itself is the confirmation.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })
