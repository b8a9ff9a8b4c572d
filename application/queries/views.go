package queries

import (
	"time"

	"memoboard/domain/core/entities"
)

// MemoView is a memo prepared for display
type MemoView struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Category      string   `json:"category"`
	CategoryName  string   `json:"categoryName"`
	CategoryColor string   `json:"categoryColor"`
	Image         string   `json:"image,omitempty"`
	Tags          []string `json:"tags"`
	CreatedAt     string   `json:"createdAt"`
	RelativeTime  string   `json:"relativeTime"`
}

// CategoryView is a catalog entry with the number of memos filed under it
type CategoryView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// NewMemoView renders a memo with its resolved category
func NewMemoView(m entities.Memo, category entities.Category, now time.Time) MemoView {
	return MemoView{
		ID:            m.ID().String(),
		Title:         m.Title(),
		Content:       m.Content(),
		Category:      m.Category(),
		CategoryName:  category.Name,
		CategoryColor: category.Color,
		Image:         m.Image().DataURI(),
		Tags:          m.Tags(),
		CreatedAt:     m.CreatedAt().UTC().Format(time.RFC3339Nano),
		RelativeTime:  FormatRelativeTime(m.CreatedAt(), now),
	}
}

// RenderMemos builds views for a list of memos using the engine's catalog
func RenderMemos(engine *MemoQueryEngine, memos []entities.Memo, now time.Time) []MemoView {
	views := make([]MemoView, 0, len(memos))
	for _, m := range memos {
		views = append(views, NewMemoView(m, engine.ResolveCategory(m.Category()), now))
	}
	return views
}

// RenderCategories builds catalog views with per-category memo counts
func RenderCategories(engine *MemoQueryEngine) []CategoryView {
	categories := engine.Categories()
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, CategoryView{
			ID:    c.ID,
			Name:  c.Name,
			Color: c.Color,
			Count: len(engine.MemosByCategory(c.ID)),
		})
	}
	return views
}
