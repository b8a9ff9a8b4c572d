package handlers

import (
	"net/http"

	"memoboard/application/queries"
	querybus "memoboard/application/queries/bus"
	"memoboard/pkg/common"
	pkgerrors "memoboard/pkg/errors"
)

// CategoryHandler serves the category catalog
type CategoryHandler struct {
	queryBus *querybus.QueryBus
	errors   *pkgerrors.ErrorHandler
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(queryBus *querybus.QueryBus, errorHandler *pkgerrors.ErrorHandler) *CategoryHandler {
	return &CategoryHandler{queryBus: queryBus, errors: errorHandler}
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListCategoriesQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
