package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"memoboard/application/commands"
	"memoboard/application/commands/bus"
	"memoboard/application/queries"
	querybus "memoboard/application/queries/bus"
	"memoboard/domain/core/entities"
	"memoboard/pkg/common"
	pkgerrors "memoboard/pkg/errors"
)

// CategoryResolver looks up the display entry of a category id
type CategoryResolver interface {
	ResolveCategory(id string) entities.Category
}

// MemoHandler handles memo-related HTTP requests
type MemoHandler struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	categories   CategoryResolver
	errors       *pkgerrors.ErrorHandler
	maxBodyBytes int64
	clock        func() time.Time
	logger       *zap.Logger
}

// NewMemoHandler creates a new memo handler. maxImageBytes sizes the
// request body limit since images travel inline as data URIs.
func NewMemoHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	categories CategoryResolver,
	errorHandler *pkgerrors.ErrorHandler,
	maxImageBytes int64,
	logger *zap.Logger,
) *MemoHandler {
	return &MemoHandler{
		commandBus:   commandBus,
		queryBus:     queryBus,
		categories:   categories,
		errors:       errorHandler,
		maxBodyBytes: maxImageBytes*2 + common.DefaultMaxBodyBytes,
		clock:        time.Now,
		logger:       logger,
	}
}

// CreateMemoRequest represents the request body for creating a memo
type CreateMemoRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Category   string   `json:"category"`
	Image      string   `json:"image,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	TagsString string   `json:"tagsString,omitempty"`
}

// ListMemos handles GET /memos?q=&category=
func (h *MemoHandler) ListMemos(w http.ResponseWriter, r *http.Request) {
	query := queries.FilterMemosQuery{
		Query:      r.URL.Query().Get("q"),
		CategoryID: r.URL.Query().Get("category"),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// CreateMemo handles POST /memos
func (h *MemoHandler) CreateMemo(w http.ResponseWriter, r *http.Request) {
	var req CreateMemoRequest
	if err := common.ParseJSONBody(w, r, &req, h.maxBodyBytes); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(fmt.Sprintf("Invalid request body: %v", err)))
		return
	}

	cmd := commands.CreateMemoCommand{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Image:     req.Image,
		Tags:      req.Tags,
		TagString: req.TagsString,
	}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	memo, ok := result.(entities.Memo)
	if !ok {
		h.errors.Handle(w, r, pkgerrors.NewInternalError("unexpected create result"))
		return
	}

	view := queries.NewMemoView(memo, h.categories.ResolveCategory(memo.Category()), h.clock())
	common.RespondJSON(w, http.StatusCreated, view)
}

// DeleteMemo handles DELETE /memos/{memoID}
func (h *MemoHandler) DeleteMemo(w http.ResponseWriter, r *http.Request) {
	cmd := commands.DeleteMemoCommand{MemoID: chi.URLParam(r, "memoID")}

	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if res, ok := result.(*commands.DeleteMemoResult); ok && !res.Confirmed {
		common.RespondJSON(w, http.StatusOK, res)
		return
	}

	common.RespondNoContent(w)
}

// ReloadMemos handles POST /memos/reload
func (h *MemoHandler) ReloadMemos(w http.ResponseWriter, r *http.Request) {
	result, err := h.commandBus.Send(r.Context(), commands.LoadMemosCommand{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
