package common

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONBody(t *testing.T) {
	type body struct {
		Title string `json:"title"`
	}

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"a"}`))
		var b body
		require.NoError(t, ParseJSONBody(httptest.NewRecorder(), req, &b, 1024))
		assert.Equal(t, "a", b.Title)
	})

	t.Run("unknown field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"titel":"a"}`))
		var b body
		assert.Error(t, ParseJSONBody(httptest.NewRecorder(), req, &b, 1024))
	})

	t.Run("too large", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"`+strings.Repeat("x", 100)+`"}`))
		var b body
		err := ParseJSONBody(httptest.NewRecorder(), req, &b, 16)
		assert.EqualError(t, err, "request body exceeds 16 bytes")
	})
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"1"}`, rec.Body.String())
}
