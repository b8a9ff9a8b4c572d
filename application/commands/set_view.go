package commands

import (
	"unicode/utf8"

	pkgerrors "memoboard/pkg/errors"
)

const maxViewQueryLength = 500

// SetViewCommand changes the engine's current query and category filter.
// A nil field keeps its current value.
type SetViewCommand struct {
	Query      *string `json:"query,omitempty"`
	CategoryID *string `json:"category,omitempty"`
}

// Validate validates the SetViewCommand
func (c SetViewCommand) Validate() error {
	if c.Query != nil && utf8.RuneCountInString(*c.Query) > maxViewQueryLength {
		return pkgerrors.NewValidationError("query is too long")
	}
	return nil
}
