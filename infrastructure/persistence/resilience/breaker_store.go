// Package resilience wraps store collaborators with a circuit breaker so a
// failing backend is reported once and then rejected fast.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"memoboard/application/ports"
	"memoboard/domain/core/entities"
	"memoboard/domain/core/valueobjects"
	pkgerrors "memoboard/pkg/errors"
)

// BreakerConfig holds configuration for the store circuit breaker
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns the default breaker configuration
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      1,
		Interval:         30 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      3,
	}
}

// BreakerStore decorates a MemoStore and optional CategorySource
type BreakerStore struct {
	store      ports.MemoStore
	categories ports.CategorySource
	cb         *gobreaker.CircuitBreaker
	name       string
}

// NewBreakerStore wraps store. categories may be nil.
func NewBreakerStore(store ports.MemoStore, categories ports.CategorySource, cfg BreakerConfig, logger *zap.Logger) *BreakerStore {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// Rejected input and missing memos say nothing about backend health
		IsSuccessful: func(err error) bool {
			return err == nil || pkgerrors.IsValidation(err) || pkgerrors.IsNotFound(err)
		},
	})

	return &BreakerStore{
		store:      store,
		categories: categories,
		cb:         cb,
		name:       cfg.Name,
	}
}

// State reports the current breaker state
func (s *BreakerStore) State() gobreaker.State {
	return s.cb.State()
}

// List implements ports.MemoStore
func (s *BreakerStore) List(ctx context.Context) ([]entities.Memo, error) {
	result, err := s.cb.Execute(func() (interface{}, error) {
		return s.store.List(ctx)
	})
	if err != nil {
		return nil, s.translate(err)
	}
	return result.([]entities.Memo), nil
}

// Create implements ports.MemoStore
func (s *BreakerStore) Create(ctx context.Context, draft ports.MemoDraft) (entities.Memo, error) {
	result, err := s.cb.Execute(func() (interface{}, error) {
		return s.store.Create(ctx, draft)
	})
	if err != nil {
		return entities.Memo{}, s.translate(err)
	}
	return result.(entities.Memo), nil
}

// Delete implements ports.MemoStore
func (s *BreakerStore) Delete(ctx context.Context, id valueobjects.MemoID) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.store.Delete(ctx, id)
	})
	return s.translate(err)
}

// ListCategories implements ports.CategorySource
func (s *BreakerStore) ListCategories(ctx context.Context) ([]entities.Category, error) {
	if s.categories == nil {
		return nil, pkgerrors.NewInternalError("store has no category source")
	}
	result, err := s.cb.Execute(func() (interface{}, error) {
		return s.categories.ListCategories(ctx)
	})
	if err != nil {
		return nil, s.translate(err)
	}
	return result.([]entities.Category), nil
}

func (s *BreakerStore) translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return pkgerrors.NewUnavailableError(s.name).WithCause(err)
	}
	return err
}
