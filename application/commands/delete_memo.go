package commands

import (
	pkgerrors "memoboard/pkg/errors"
	"memoboard/pkg/utils"
)

// DeletePrompt is shown to the user before a memo is deleted
const DeletePrompt = "Delete this memo?"

// DeleteMemoCommand represents the command to delete a memo
type DeleteMemoCommand struct {
	MemoID string `json:"memo_id" validate:"notblank"`
}

// Validate validates the DeleteMemoCommand
func (c DeleteMemoCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// DeleteMemoResult describes what a delete did
type DeleteMemoResult struct {
	Confirmed bool `json:"confirmed"`
	Removed   bool `json:"removed"`
}
