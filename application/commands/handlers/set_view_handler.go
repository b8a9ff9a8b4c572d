package handlers

import (
	"context"

	"go.uber.org/zap"

	"memoboard/application/commands"
	"memoboard/application/queries"
)

// SetViewHandler applies view state changes to the engine
type SetViewHandler struct {
	engine *queries.MemoQueryEngine
	logger *zap.Logger
}

// NewSetViewHandler creates a new view handler
func NewSetViewHandler(engine *queries.MemoQueryEngine, logger *zap.Logger) *SetViewHandler {
	return &SetViewHandler{engine: engine, logger: logger}
}

// Handle updates the query and category and returns the resulting snapshot
func (h *SetViewHandler) Handle(ctx context.Context, cmd commands.SetViewCommand) (queries.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return queries.Snapshot{}, err
	}

	if cmd.Query != nil {
		h.engine.SetQuery(*cmd.Query)
	}
	if cmd.CategoryID != nil {
		h.engine.SetCategory(*cmd.CategoryID)
	}

	snap := h.engine.Snapshot()
	h.logger.Debug("View updated",
		zap.String("query", snap.Query),
		zap.String("category", snap.CategoryID),
		zap.Int("visible", len(snap.Visible)),
	)
	return snap, nil
}
