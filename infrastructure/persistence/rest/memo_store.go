package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"go.uber.org/zap"

	"memoboard/application/ports"
	"memoboard/domain/core/entities"
	"memoboard/domain/core/valueobjects"
	pkgerrors "memoboard/pkg/errors"
)

const maxErrorBody = 4096

// MemoStore talks to a json-server style memo API:
// GET/POST {base}/memos, DELETE {base}/memos/{id}, GET {base}/categories.
// Every failure is reported once; there is no retry and no client timeout.
type MemoStore struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures a MemoStore
type Option func(*MemoStore)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(s *MemoStore) {
		s.client = client
	}
}

// WithTracing instruments outgoing requests with X-Ray subsegments
func WithTracing() Option {
	return func(s *MemoStore) {
		s.client = xray.Client(s.client)
	}
}

// WithClock overrides the clock used to stamp new memos
func WithClock(now func() time.Time) Option {
	return func(s *MemoStore) {
		s.now = now
	}
}

// NewMemoStore creates a REST backed store
func NewMemoStore(baseURL string, logger *zap.Logger, opts ...Option) (*MemoStore, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid store URL %q", baseURL)
	}

	s := &MemoStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// List fetches every memo
func (s *MemoStore) List(ctx context.Context) ([]entities.Memo, error) {
	var payloads []MemoPayload
	if err := s.do(ctx, "list", http.MethodGet, "/memos", nil, &payloads); err != nil {
		return nil, err
	}

	memos := make([]entities.Memo, 0, len(payloads))
	for _, p := range payloads {
		m, err := p.ToMemo()
		if err != nil {
			s.logger.Warn("Skipping malformed memo",
				zap.String("memoID", string(p.ID)),
				zap.Error(err),
			)
			continue
		}
		memos = append(memos, m)
	}
	return memos, nil
}

// Create posts a draft and returns the memo as stored by the server
func (s *MemoStore) Create(ctx context.Context, draft ports.MemoDraft) (entities.Memo, error) {
	var created MemoPayload
	if err := s.do(ctx, "create", http.MethodPost, "/memos", NewDraftPayload(draft, s.now()), &created); err != nil {
		return entities.Memo{}, err
	}

	memo, err := created.ToMemo()
	if err != nil {
		return entities.Memo{}, pkgerrors.NewTransportError("create", fmt.Errorf("unexpected response: %w", err))
	}
	return memo, nil
}

// Delete removes a memo; a 404 yields a NotFound error
func (s *MemoStore) Delete(ctx context.Context, id valueobjects.MemoID) error {
	return s.do(ctx, "delete", http.MethodDelete, "/memos/"+url.PathEscape(id.String()), nil, nil)
}

// ListCategories fetches the server's category catalog
func (s *MemoStore) ListCategories(ctx context.Context) ([]entities.Category, error) {
	var payloads []CategoryPayload
	if err := s.do(ctx, "categories", http.MethodGet, "/categories", nil, &payloads); err != nil {
		return nil, err
	}

	categories := make([]entities.Category, 0, len(payloads))
	for _, p := range payloads {
		categories = append(categories, p.ToCategory())
	}
	return categories, nil
}

func (s *MemoStore) do(ctx context.Context, operation, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.NewInternalError("failed to encode request").WithCause(err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return pkgerrors.NewTransportError(operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("Memo API request failed",
			zap.String("operation", operation),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return pkgerrors.NewTransportError(operation, err)
	}
	defer resp.Body.Close()

	s.logger.Debug("Memo API request",
		zap.String("operation", operation),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNotFound && method == http.MethodDelete {
		return pkgerrors.NewNotFoundError("memo")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return pkgerrors.NewTransportError(operation,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))).
			WithDetails(map[string]interface{}{"status": resp.StatusCode})
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.NewTransportError(operation, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}
