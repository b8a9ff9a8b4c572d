package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAppError_Predicates(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		check  func(error) bool
		status int
	}{
		{"validation", NewValidationError("title is required"), IsValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("memo"), IsNotFound, http.StatusNotFound},
		{"transport", NewTransportError("list", stderrors.New("connection refused")), IsTransport, http.StatusBadGateway},
		{"unavailable", NewUnavailableError("memo-store"), IsUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.Equal(t, tt.status, GetAppError(tt.err).HTTPStatus)

			wrapped := fmt.Errorf("command handler failed: %w", tt.err)
			assert.True(t, tt.check(wrapped))
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("dial tcp: refused")
	err := NewTransportError("create", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store operation 'create' failed")
	assert.Contains(t, err.Error(), "dial tcp: refused")
}

func TestAppError_WithCode(t *testing.T) {
	err := NewValidationError("title is required").WithCode(CodeRequiredFields)

	assert.True(t, IsValidation(err))
	assert.Equal(t, CodeRequiredFields, GetAppError(err).Code)
	assert.Empty(t, NewValidationError("too long").Code)
}

func TestErrorHandler_Handle(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)

	t.Run("app error keeps its status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/memos", nil)

		h.Handle(rec, req, NewValidationError("title is required"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.True(t, body.Error)
		assert.Equal(t, "VALIDATION", body.Type)
		assert.Equal(t, "title is required", body.Message)
	})

	t.Run("plain error is hidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/memos", nil)

		h.Handle(rec, req, stderrors.New("secret detail"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret detail")
	})

	t.Run("status helper", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/memos", nil)

		h.HandleStatus(rec, req, http.StatusBadGateway, "store down")

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "TRANSPORT", body.Type)
	})
}
