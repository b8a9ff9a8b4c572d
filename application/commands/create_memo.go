package commands

import (
	"memoboard/domain/core/valueobjects"
	pkgerrors "memoboard/pkg/errors"
	"memoboard/pkg/utils"
)

// CreateMemoCommand represents the command to create a new memo.
// Tags may be given as a list, as a comma separated string, or both.
type CreateMemoCommand struct {
	Title     string   `json:"title" validate:"notblank"`
	Content   string   `json:"content" validate:"notblank"`
	Category  string   `json:"category" validate:"notblank"`
	Image     string   `json:"image,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	TagString string   `json:"tagsString,omitempty"`
}

// Validate checks that every required field is present
func (c CreateMemoCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return pkgerrors.NewValidationError(err.Error()).WithCode(pkgerrors.CodeRequiredFields)
	}
	return nil
}

// TagList merges and normalizes both tag inputs
func (c CreateMemoCommand) TagList() []string {
	tags := valueobjects.NormalizeTags(c.Tags)
	return append(tags, valueobjects.ParseTags(c.TagString)...)
}
