package queries

import (
	"time"
	"unicode/utf8"

	pkgerrors "memoboard/pkg/errors"
)

const maxQueryLength = 500

// FilterMemosQuery asks for the memos matching a query and category.
// It does not change the engine's current view state.
type FilterMemosQuery struct {
	Query      string
	CategoryID string
	Now        time.Time
}

// Validate validates the FilterMemosQuery
func (q FilterMemosQuery) Validate() error {
	if utf8.RuneCountInString(q.Query) > maxQueryLength {
		return pkgerrors.NewValidationError("query is too long")
	}
	return nil
}

// FilterMemosResult represents the filtered list
type FilterMemosResult struct {
	Memos []MemoView `json:"memos"`
	Total int        `json:"total"`
}
