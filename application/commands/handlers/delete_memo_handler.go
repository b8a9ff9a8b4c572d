package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"memoboard/application/commands"
	"memoboard/application/ports"
	"memoboard/application/queries"
	"memoboard/domain/core/valueobjects"
	"memoboard/domain/events"
	pkgerrors "memoboard/pkg/errors"
)

// DeleteMemoHandler handles memo deletion commands
type DeleteMemoHandler struct {
	store     ports.MemoStore
	engine    *queries.MemoQueryEngine
	notifier  ports.Notifier
	confirmer ports.Confirmer
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewDeleteMemoHandler creates a new delete memo handler. publisher may be nil.
func NewDeleteMemoHandler(
	store ports.MemoStore,
	engine *queries.MemoQueryEngine,
	notifier ports.Notifier,
	confirmer ports.Confirmer,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *DeleteMemoHandler {
	if confirmer == nil {
		confirmer = ports.AlwaysConfirm
	}
	return &DeleteMemoHandler{
		store:     store,
		engine:    engine,
		notifier:  notifier,
		confirmer: confirmer,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle asks for confirmation, deletes the memo from the store and then
// from the working set. A memo the store no longer has is dropped silently.
func (h *DeleteMemoHandler) Handle(ctx context.Context, cmd commands.DeleteMemoCommand) (*commands.DeleteMemoResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	memoID, err := valueobjects.MemoIDFromString(cmd.MemoID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	if !h.confirmer.Confirm(commands.DeletePrompt) {
		h.logger.Debug("Delete declined", zap.String("memoID", memoID.String()))
		return &commands.DeleteMemoResult{}, nil
	}

	if err := h.store.Delete(ctx, memoID); err != nil {
		if pkgerrors.IsNotFound(err) {
			removed := h.engine.Remove(memoID)
			h.logger.Debug("Memo already gone from store",
				zap.String("memoID", memoID.String()),
				zap.Bool("removedLocally", removed),
			)
			return &commands.DeleteMemoResult{Confirmed: true, Removed: removed}, nil
		}

		h.logger.Error("Failed to delete memo",
			zap.String("memoID", memoID.String()),
			zap.Error(err),
		)
		h.notifier.Notify(msgDeleteFailed, ports.SeverityError)
		if pkgerrors.GetAppError(err) == nil {
			err = pkgerrors.NewTransportError("delete", err)
		}
		return nil, err
	}

	removed := h.engine.Remove(memoID)
	h.notifier.Notify(msgDeleted, ports.SeveritySuccess)

	h.logger.Info("Memo deleted", zap.String("memoID", memoID.String()))

	if h.publisher != nil {
		if err := h.publisher.Publish(ctx, events.NewMemoDeleted(memoID, time.Now())); err != nil {
			h.logger.Warn("Failed to publish memo deleted event",
				zap.String("memoID", memoID.String()),
				zap.Error(err),
			)
		}
	}

	return &commands.DeleteMemoResult{Confirmed: true, Removed: removed}, nil
}
