package queries

import "time"

// GetViewQuery asks for the engine's current view state
type GetViewQuery struct {
	Now time.Time
}

// Validate validates the GetViewQuery
func (q GetViewQuery) Validate() error {
	return nil
}

// ViewResult is the current query, category and visible memos
type ViewResult struct {
	Query      string         `json:"query"`
	CategoryID string         `json:"category"`
	Memos      []MemoView     `json:"memos"`
	Categories []CategoryView `json:"categories"`
	Total      int            `json:"total"`
}

// RenderSnapshot turns an engine snapshot into a ViewResult
func RenderSnapshot(engine *MemoQueryEngine, snap Snapshot, now time.Time) ViewResult {
	categories := make([]CategoryView, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		categories = append(categories, CategoryView{
			ID:    c.ID,
			Name:  c.Name,
			Color: c.Color,
			Count: len(engine.MemosByCategory(c.ID)),
		})
	}
	return ViewResult{
		Query:      snap.Query,
		CategoryID: snap.CategoryID,
		Memos:      RenderMemos(engine, snap.Visible, now),
		Categories: categories,
		Total:      len(snap.Visible),
	}
}
