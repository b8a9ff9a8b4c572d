package valueobjects

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// MemoID is a value object representing a unique memo identifier.
// Ids coming from a store are opaque; only locally minted ids are UUIDs.
type MemoID struct {
	value string
}

// NewMemoID creates a new time-ordered MemoID
func NewMemoID() MemoID {
	id, err := uuid.NewV7()
	if err != nil {
		return MemoID{value: uuid.New().String()}
	}
	return MemoID{value: id.String()}
}

// MemoIDFromString creates a MemoID from an existing string
func MemoIDFromString(id string) (MemoID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return MemoID{}, errors.New("memo ID cannot be empty")
	}
	return MemoID{value: id}, nil
}

// String returns the string representation of the MemoID
func (id MemoID) String() string {
	return id.value
}

// Equals checks if two MemoIDs are equal
func (id MemoID) Equals(other MemoID) bool {
	return id.value == other.value
}

// IsZero checks if the MemoID is the zero value
func (id MemoID) IsZero() bool {
	return id.value == ""
}

// MarshalText implements encoding.TextMarshaler
func (id MemoID) MarshalText() ([]byte, error) {
	return []byte(id.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *MemoID) UnmarshalText(data []byte) error {
	id.value = string(data)
	return nil
}
