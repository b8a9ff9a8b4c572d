package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"memoboard/application/commands"
	"memoboard/application/ports"
	"memoboard/application/queries"
	"memoboard/application/services"
	"memoboard/domain/config"
	"memoboard/domain/core/entities"
	"memoboard/domain/core/valueobjects"
	"memoboard/domain/events"
	pkgerrors "memoboard/pkg/errors"
)

// CreateMemoHandler handles the CreateMemoCommand
type CreateMemoHandler struct {
	store     ports.MemoStore
	engine    *queries.MemoQueryEngine
	notifier  ports.Notifier
	publisher ports.EventPublisher
	images    *services.ImageIntake
	config    *config.DomainConfig
	logger    *zap.Logger
}

// NewCreateMemoHandler creates a new handler instance. publisher may be nil.
func NewCreateMemoHandler(
	store ports.MemoStore,
	engine *queries.MemoQueryEngine,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *CreateMemoHandler {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &CreateMemoHandler{
		store:     store,
		engine:    engine,
		notifier:  notifier,
		publisher: publisher,
		images:    services.NewImageIntake(notifier, cfg, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Handle validates the draft, stores it and prepends the stored memo to the
// working set. Nothing reaches the store when validation fails.
func (h *CreateMemoHandler) Handle(ctx context.Context, cmd commands.CreateMemoCommand) (entities.Memo, error) {
	draft, err := h.buildDraft(cmd)
	if err != nil {
		h.logger.Debug("Rejected memo draft", zap.Error(err))
		h.notifier.Notify(rejectionMessage(err), ports.SeverityError)
		return entities.Memo{}, err
	}

	memo, err := h.store.Create(ctx, draft)
	if err != nil {
		h.logger.Error("Failed to create memo",
			zap.String("category", draft.Category),
			zap.Error(err),
		)
		h.notifier.Notify(msgCreateFailed, ports.SeverityError)
		if pkgerrors.GetAppError(err) == nil {
			err = pkgerrors.NewTransportError("create", err)
		}
		return entities.Memo{}, err
	}

	h.engine.Insert(memo)
	h.notifier.Notify(msgCreated, ports.SeveritySuccess)

	h.logger.Info("Memo created",
		zap.String("memoID", memo.ID().String()),
		zap.String("category", memo.Category()),
		zap.Int("tags", len(memo.Tags())),
	)

	h.publish(ctx, events.NewMemoCreated(memo.ID(), memo.Title(), memo.Category(), memo.Tags(), memo.HasImage(), time.Now()))

	return memo, nil
}

func (h *CreateMemoHandler) buildDraft(cmd commands.CreateMemoCommand) (ports.MemoDraft, error) {
	if err := cmd.Validate(); err != nil {
		return ports.MemoDraft{}, err
	}

	content, err := valueobjects.NewMemoContentWithConfig(cmd.Title, cmd.Content, h.config)
	if err != nil {
		return ports.MemoDraft{}, err
	}

	image, err := h.images.ValidateDataURI(cmd.Image)
	if err != nil {
		return ports.MemoDraft{}, err
	}

	tags := cmd.TagList()
	if err := entities.ValidateTags(tags, h.config); err != nil {
		return ports.MemoDraft{}, err
	}

	return ports.MemoDraft{
		Content:  content,
		Category: cmd.Category,
		Image:    image,
		Tags:     tags,
	}, nil
}

// rejectionMessage picks the notification for a draft that failed validation
func rejectionMessage(err error) string {
	appErr := pkgerrors.GetAppError(err)
	if appErr == nil || appErr.Code == pkgerrors.CodeRequiredFields {
		return msgRequiredFields
	}
	return appErr.Message
}

func (h *CreateMemoHandler) publish(ctx context.Context, event events.DomainEvent) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("Failed to publish event",
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
			zap.Error(err),
		)
	}
}
