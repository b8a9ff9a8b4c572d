package entities

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"memoboard/domain/config"
	"memoboard/domain/core/valueobjects"
	pkgerrors "memoboard/pkg/errors"
)

// Memo is a single note. It is immutable once built: copies can be shared
// freely between the working set and any derived view.
type Memo struct {
	id        valueobjects.MemoID
	content   valueobjects.MemoContent
	category  string
	image     valueobjects.Image
	tags      []string
	createdAt time.Time
}

// NewMemo creates a memo with full business rule validation
func NewMemo(
	id valueobjects.MemoID,
	content valueobjects.MemoContent,
	category string,
	image valueobjects.Image,
	tags []string,
	createdAt time.Time,
) (Memo, error) {
	return NewMemoWithConfig(id, content, category, image, tags, createdAt, config.DefaultDomainConfig())
}

// NewMemoWithConfig creates a memo with validation and configuration
func NewMemoWithConfig(
	id valueobjects.MemoID,
	content valueobjects.MemoContent,
	category string,
	image valueobjects.Image,
	tags []string,
	createdAt time.Time,
	cfg *config.DomainConfig,
) (Memo, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	tags = valueobjects.NormalizeTags(tags)
	if err := ValidateTags(tags, cfg); err != nil {
		return Memo{}, err
	}

	return ReconstructMemo(id, content, category, image, tags, createdAt)
}

// ValidateTags checks normalized tags against the configured limits
func ValidateTags(tags []string, cfg *config.DomainConfig) error {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if cfg.MaxTags > 0 && len(tags) > cfg.MaxTags {
		return pkgerrors.NewValidationError(fmt.Sprintf("maximum tags reached: %d", cfg.MaxTags))
	}
	for _, tag := range tags {
		if cfg.MaxTagLength > 0 && utf8.RuneCountInString(tag) > cfg.MaxTagLength {
			return pkgerrors.NewValidationError(
				fmt.Sprintf("tag %q exceeds maximum length of %d characters", tag, cfg.MaxTagLength))
		}
	}
	return nil
}

// ReconstructMemo rebuilds a memo from store data. Only the structural
// invariants are checked so that older records stay readable.
func ReconstructMemo(
	id valueobjects.MemoID,
	content valueobjects.MemoContent,
	category string,
	image valueobjects.Image,
	tags []string,
	createdAt time.Time,
) (Memo, error) {
	if id.IsZero() {
		return Memo{}, pkgerrors.NewValidationError("memo ID cannot be empty")
	}
	if content.Title() == "" || content.Body() == "" {
		return Memo{}, pkgerrors.NewValidationError("title and content are required")
	}
	if strings.TrimSpace(category) == "" {
		return Memo{}, pkgerrors.NewValidationError("category is required")
	}
	if createdAt.IsZero() {
		return Memo{}, pkgerrors.NewValidationError("createdAt is required")
	}

	return Memo{
		id:        id,
		content:   content,
		category:  category,
		image:     image,
		tags:      valueobjects.NormalizeTags(tags),
		createdAt: createdAt,
	}, nil
}

// ID returns the memo's unique identifier
func (m Memo) ID() valueobjects.MemoID {
	return m.id
}

// Title returns the memo title
func (m Memo) Title() string {
	return m.content.Title()
}

// Content returns the memo body
func (m Memo) Content() string {
	return m.content.Body()
}

// Text returns title and body as a value object
func (m Memo) Text() valueobjects.MemoContent {
	return m.content
}

// Category returns the category id
func (m Memo) Category() string {
	return m.category
}

// Image returns the attached image, zero when absent
func (m Memo) Image() valueobjects.Image {
	return m.image
}

// HasImage reports whether an image is attached
func (m Memo) HasImage() bool {
	return !m.image.IsZero()
}

// Tags returns a copy of the memo's tags
func (m Memo) Tags() []string {
	out := make([]string, len(m.tags))
	copy(out, m.tags)
	return out
}

// CreatedAt returns the creation timestamp
func (m Memo) CreatedAt() time.Time {
	return m.createdAt
}

// Matches reports whether the lower-cased query occurs in the title or body,
// and optionally in any tag.
func (m Memo) Matches(lowerQuery string, includeTags bool) bool {
	if m.content.Contains(lowerQuery) {
		return true
	}
	if !includeTags {
		return false
	}
	for _, tag := range m.tags {
		if strings.Contains(strings.ToLower(tag), lowerQuery) {
			return true
		}
	}
	return false
}
