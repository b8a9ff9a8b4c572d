package mockapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"memoboard/infrastructure/persistence/memory"
	"memoboard/infrastructure/persistence/rest"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func postMemo(t *testing.T, h http.Handler, image string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"title": "t", "content": "c", "category": "work", "image": image,
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/memos", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateMemo_Image(t *testing.T) {
	store := memory.NewMemoStore()
	router := NewRouter(store, zap.NewNop())

	rec := postMemo(t, router, "data:text/html;base64,"+base64.StdEncoding.EncodeToString([]byte("<html></html>")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postMemo(t, router, "data:image/png;base64,!!!")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	memos, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, memos)

	rec = postMemo(t, router, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngHeader))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created rest.MemoPayload
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.NotNil(t, created.Image)
	assert.Contains(t, *created.Image, "data:image/png;base64,")
}

func TestCORS(t *testing.T) {
	router := NewRouter(memory.NewMemoStore(), zap.NewNop())

	req := httptest.NewRequest(http.MethodOptions, "/memos", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	req = httptest.NewRequest(http.MethodGet, "/memos", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
