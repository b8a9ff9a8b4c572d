package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"memoboard/application/queries"
)

// Clock returns the current time
type Clock func() time.Time

// FilterMemosHandler answers filter queries from the engine
type FilterMemosHandler struct {
	engine *queries.MemoQueryEngine
	clock  Clock
	logger *zap.Logger
}

// NewFilterMemosHandler creates a new filter handler
func NewFilterMemosHandler(engine *queries.MemoQueryEngine, clock Clock, logger *zap.Logger) *FilterMemosHandler {
	if clock == nil {
		clock = time.Now
	}
	return &FilterMemosHandler{engine: engine, clock: clock, logger: logger}
}

// Handle executes the filter query
func (h *FilterMemosHandler) Handle(ctx context.Context, query queries.FilterMemosQuery) (*queries.FilterMemosResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	now := query.Now
	if now.IsZero() {
		now = h.clock()
	}

	memos := h.engine.Filter(query.Query, query.CategoryID)

	h.logger.Debug("Filtered memos",
		zap.String("query", query.Query),
		zap.String("category", query.CategoryID),
		zap.Int("matched", len(memos)),
	)

	return &queries.FilterMemosResult{
		Memos: queries.RenderMemos(h.engine, memos, now),
		Total: len(memos),
	}, nil
}

// ListCategoriesHandler answers catalog queries
type ListCategoriesHandler struct {
	engine *queries.MemoQueryEngine
}

// NewListCategoriesHandler creates a new catalog handler
func NewListCategoriesHandler(engine *queries.MemoQueryEngine) *ListCategoriesHandler {
	return &ListCategoriesHandler{engine: engine}
}

// Handle executes the catalog query
func (h *ListCategoriesHandler) Handle(ctx context.Context, query queries.ListCategoriesQuery) (*queries.ListCategoriesResult, error) {
	return &queries.ListCategoriesResult{Categories: queries.RenderCategories(h.engine)}, nil
}

// GetViewHandler answers view state queries
type GetViewHandler struct {
	engine *queries.MemoQueryEngine
	clock  Clock
}

// NewGetViewHandler creates a new view handler
func NewGetViewHandler(engine *queries.MemoQueryEngine, clock Clock) *GetViewHandler {
	if clock == nil {
		clock = time.Now
	}
	return &GetViewHandler{engine: engine, clock: clock}
}

// Handle executes the view query
func (h *GetViewHandler) Handle(ctx context.Context, query queries.GetViewQuery) (*queries.ViewResult, error) {
	now := query.Now
	if now.IsZero() {
		now = h.clock()
	}
	result := queries.RenderSnapshot(h.engine, h.engine.Snapshot(), now)
	return &result, nil
}
