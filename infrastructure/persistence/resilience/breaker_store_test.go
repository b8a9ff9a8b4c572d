package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"memoboard/application/ports"
	"memoboard/domain/core/entities"
	"memoboard/domain/core/valueobjects"
	pkgerrors "memoboard/pkg/errors"
)

type flakyStore struct {
	err   error
	calls int
}

func (f *flakyStore) List(ctx context.Context) ([]entities.Memo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []entities.Memo{}, nil
}

func (f *flakyStore) Create(ctx context.Context, draft ports.MemoDraft) (entities.Memo, error) {
	f.calls++
	return entities.Memo{}, f.err
}

func (f *flakyStore) Delete(ctx context.Context, id valueobjects.MemoID) error {
	f.calls++
	return f.err
}

func testConfig() BreakerConfig {
	cfg := DefaultBreakerConfig("memo-store")
	cfg.MinRequests = 2
	cfg.FailureThreshold = 0.5
	cfg.Timeout = time.Hour
	return cfg
}

func TestBreakerStore_OpensAfterFailures(t *testing.T) {
	ctx := context.Background()
	inner := &flakyStore{err: pkgerrors.NewTransportError("list", errors.New("connection refused"))}
	store := NewBreakerStore(inner, nil, testConfig(), zap.NewNop())

	for i := 0; i < 2; i++ {
		_, err := store.List(ctx)
		assert.True(t, pkgerrors.IsTransport(err))
	}
	assert.Equal(t, gobreaker.StateOpen, store.State())

	_, err := store.List(ctx)
	assert.True(t, pkgerrors.IsUnavailable(err))
	assert.Equal(t, 2, inner.calls, "open breaker does not reach the store")
}

func TestBreakerStore_IgnoresNotFound(t *testing.T) {
	ctx := context.Background()
	inner := &flakyStore{err: pkgerrors.NewNotFoundError("memo")}
	store := NewBreakerStore(inner, nil, testConfig(), zap.NewNop())

	id, err := valueobjects.MemoIDFromString("42")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		assert.True(t, pkgerrors.IsNotFound(store.Delete(ctx, id)))
	}
	assert.Equal(t, gobreaker.StateClosed, store.State())
}

func TestBreakerStore_PassesResults(t *testing.T) {
	store := NewBreakerStore(&flakyStore{}, nil, testConfig(), zap.NewNop())

	memos, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, memos)

	_, err = store.ListCategories(context.Background())
	assert.Error(t, err, "no category source configured")
}
