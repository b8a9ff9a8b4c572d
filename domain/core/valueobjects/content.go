package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"memoboard/domain/config"
	pkgerrors "memoboard/pkg/errors"
)

// MemoContent is a value object for the text of a memo
type MemoContent struct {
	title string
	body  string
}

// NewMemoContent creates content with validation using default configuration
func NewMemoContent(title, body string) (MemoContent, error) {
	return NewMemoContentWithConfig(title, body, config.DefaultDomainConfig())
}

// NewMemoContentWithConfig creates content with validation and configuration.
// Text is stored as entered; only blankness is judged on the trimmed value.
func NewMemoContentWithConfig(title, body string, cfg *config.DomainConfig) (MemoContent, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	if strings.TrimSpace(title) == "" {
		return MemoContent{}, pkgerrors.NewValidationError("title cannot be empty")
	}
	if strings.TrimSpace(body) == "" {
		return MemoContent{}, pkgerrors.NewValidationError("content cannot be empty")
	}

	if utf8.RuneCountInString(title) > cfg.MaxTitleLength {
		return MemoContent{}, pkgerrors.NewValidationError(
			fmt.Sprintf("title exceeds maximum length of %d characters", cfg.MaxTitleLength))
	}
	if utf8.RuneCountInString(body) > cfg.MaxContentLength {
		return MemoContent{}, pkgerrors.NewValidationError(
			fmt.Sprintf("content exceeds maximum length of %d characters", cfg.MaxContentLength))
	}

	return MemoContent{title: title, body: body}, nil
}

// Title returns the memo title
func (c MemoContent) Title() string {
	return c.title
}

// Body returns the memo body
func (c MemoContent) Body() string {
	return c.body
}

// Contains reports whether the lower-cased needle occurs in title or body
func (c MemoContent) Contains(lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(c.title), lowerNeedle) ||
		strings.Contains(strings.ToLower(c.body), lowerNeedle)
}

// Summary returns a truncated summary of the content
func (c MemoContent) Summary(maxLength int) string {
	if maxLength <= 3 {
		return ""
	}

	combined := c.title + ": " + c.body
	if utf8.RuneCountInString(combined) <= maxLength {
		return combined
	}

	runes := []rune(combined)
	return string(runes[:maxLength-3]) + "..."
}

// RestoreMemoContent rebuilds content read back from a store. Length limits
// are not applied; blank fields are still rejected.
func RestoreMemoContent(title, body string) (MemoContent, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		return MemoContent{}, pkgerrors.NewValidationError("stored memo is missing title or content")
	}
	return MemoContent{title: title, body: body}, nil
}
