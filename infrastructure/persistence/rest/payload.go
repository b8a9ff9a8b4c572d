package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"memoboard/application/ports"
	"memoboard/domain/core/entities"
	"memoboard/domain/core/valueobjects"
	"memoboard/pkg/utils"
)

// FlexibleID accepts both numeric and string ids. json-server style backends
// hand out either depending on version.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = FlexibleID(n.String())
	return nil
}

// MemoPayload is the wire form of a memo
type MemoPayload struct {
	ID        FlexibleID `json:"id,omitempty"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Category  string     `json:"category"`
	Image     *string    `json:"image"`
	Tags      []string   `json:"tags"`
	CreatedAt string     `json:"createdAt"`
}

// CategoryPayload is the wire form of a category
type CategoryPayload struct {
	ID    FlexibleID `json:"id"`
	Name  string     `json:"name"`
	Color string     `json:"color"`
}

// NewMemoPayload converts a memo to its wire form
func NewMemoPayload(m entities.Memo) MemoPayload {
	p := MemoPayload{
		ID:        FlexibleID(m.ID().String()),
		Title:     m.Title(),
		Content:   m.Content(),
		Category:  m.Category(),
		Tags:      m.Tags(),
		CreatedAt: utils.FormatTimestamp(m.CreatedAt()),
	}
	if m.HasImage() {
		uri := m.Image().DataURI()
		p.Image = &uri
	}
	return p
}

// NewDraftPayload builds the body of a create request. The server assigns the id.
func NewDraftPayload(draft ports.MemoDraft, createdAt time.Time) MemoPayload {
	p := MemoPayload{
		Title:     draft.Content.Title(),
		Content:   draft.Content.Body(),
		Category:  draft.Category,
		Tags:      valueobjects.NormalizeTags(draft.Tags),
		CreatedAt: utils.FormatTimestamp(createdAt),
	}
	if !draft.Image.IsZero() {
		uri := draft.Image.DataURI()
		p.Image = &uri
	}
	return p
}

// ToMemo converts a wire memo back into an entity
func (p MemoPayload) ToMemo() (entities.Memo, error) {
	id, err := valueobjects.MemoIDFromString(string(p.ID))
	if err != nil {
		return entities.Memo{}, err
	}
	content, err := valueobjects.RestoreMemoContent(p.Title, p.Content)
	if err != nil {
		return entities.Memo{}, err
	}
	var image valueobjects.Image
	if p.Image != nil {
		if image, err = valueobjects.ImageFromDataURI(*p.Image); err != nil {
			return entities.Memo{}, err
		}
	}
	createdAt, err := utils.ParseTimestamp(p.CreatedAt)
	if err != nil {
		return entities.Memo{}, err
	}
	return entities.ReconstructMemo(id, content, p.Category, image, p.Tags, createdAt)
}

// ToCategory converts a wire category into an entity
func (p CategoryPayload) ToCategory() entities.Category {
	return entities.Category{ID: string(p.ID), Name: p.Name, Color: p.Color}
}

// NewCategoryPayload converts a category to its wire form
func NewCategoryPayload(c entities.Category) CategoryPayload {
	return CategoryPayload{ID: FlexibleID(c.ID), Name: c.Name, Color: c.Color}
}
