package handlers

import (
	"context"

	"go.uber.org/zap"

	"memoboard/application/commands"
	"memoboard/application/ports"
	"memoboard/application/queries"
	"memoboard/domain/config"
	"memoboard/domain/core/entities"
	pkgerrors "memoboard/pkg/errors"
)

// LoadMemosHandler replaces the working set with the store contents
type LoadMemosHandler struct {
	store      ports.MemoStore
	categories ports.CategorySource
	engine     *queries.MemoQueryEngine
	notifier   ports.Notifier
	config     *config.DomainConfig
	logger     *zap.Logger
}

// NewLoadMemosHandler creates a new load handler. categories is only
// consulted when the category source is remote and may be nil otherwise.
func NewLoadMemosHandler(
	store ports.MemoStore,
	categories ports.CategorySource,
	engine *queries.MemoQueryEngine,
	notifier ports.Notifier,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *LoadMemosHandler {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &LoadMemosHandler{
		store:      store,
		categories: categories,
		engine:     engine,
		notifier:   notifier,
		config:     cfg,
		logger:     logger,
	}
}

// Handle lists the store and installs the result as the working set. On
// failure the previous working set is kept.
func (h *LoadMemosHandler) Handle(ctx context.Context, cmd commands.LoadMemosCommand) (*commands.LoadMemosResult, error) {
	memos, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("Failed to load memos", zap.Error(err))
		h.notifier.Notify(msgLoadFailed, ports.SeverityError)
		if pkgerrors.GetAppError(err) == nil {
			err = pkgerrors.NewTransportError("list", err)
		}
		return nil, err
	}

	h.engine.SetWorkingSet(memos)

	catalogFailed := false
	if h.config.CategorySource == config.CategorySourceRemote {
		catalogFailed = h.loadRemoteCatalog(ctx) != nil
	}

	result := &commands.LoadMemosResult{
		Count:      len(memos),
		Categories: len(h.engine.Categories()),
	}

	h.logger.Info("Memos loaded",
		zap.Int("count", result.Count),
		zap.Int("categories", result.Categories),
	)
	if catalogFailed {
		h.notifier.Notify(msgCategoriesFailed, ports.SeverityError)
	} else {
		h.notifier.Notify(msgLoaded, ports.SeveritySuccess)
	}

	return result, nil
}

// loadRemoteCatalog keeps the previous catalog when the fetch fails. Without
// one, an empty catalog is installed so every id resolves to the fallback
// category instead of being derived from the memos.
func (h *LoadMemosHandler) loadRemoteCatalog(ctx context.Context) error {
	if h.categories == nil {
		h.logger.Warn("Remote category source configured but store serves no categories")
		h.keepOrEmptyCatalog()
		return pkgerrors.NewUnavailableError("category source")
	}

	categories, err := h.categories.ListCategories(ctx)
	if err != nil {
		h.logger.Warn("Failed to load categories", zap.Error(err))
		h.keepOrEmptyCatalog()
		return err
	}

	h.engine.SetCatalog(entities.NewCategoryCatalog(categories))
	return nil
}

func (h *LoadMemosHandler) keepOrEmptyCatalog() {
	if !h.engine.HasCatalog() {
		h.engine.SetCatalog(entities.NewCategoryCatalog(nil))
	}
}
