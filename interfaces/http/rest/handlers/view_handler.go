package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"memoboard/application/commands"
	"memoboard/application/commands/bus"
	"memoboard/application/queries"
	querybus "memoboard/application/queries/bus"
	"memoboard/pkg/common"
	pkgerrors "memoboard/pkg/errors"
)

// ViewHandler exposes the engine's current query and category
type ViewHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *ViewHandler {
	return &ViewHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// GetView handles GET /view
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetViewQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// UpdateView handles PUT /view with {"query": "...", "category": "..."}
func (h *ViewHandler) UpdateView(w http.ResponseWriter, r *http.Request) {
	var cmd commands.SetViewCommand
	if err := common.ParseJSONBody(w, r, &cmd, common.DefaultMaxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(fmt.Sprintf("Invalid request body: %v", err)))
		return
	}

	if _, err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.GetView(w, r)
}
