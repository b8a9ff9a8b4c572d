package memory

import (
	"context"
	"sync"
	"time"

	"memoboard/application/ports"
	"memoboard/domain/core/entities"
	"memoboard/domain/core/valueobjects"
	pkgerrors "memoboard/pkg/errors"
)

// MemoStore keeps memos in process memory. Nothing survives a restart.
type MemoStore struct {
	mu         sync.RWMutex
	memos      []entities.Memo
	categories []entities.Category
	now        func() time.Time
}

// Option configures a MemoStore
type Option func(*MemoStore)

// WithClock overrides the clock used to stamp new memos
func WithClock(now func() time.Time) Option {
	return func(s *MemoStore) {
		s.now = now
	}
}

// WithMemos preloads the store
func WithMemos(memos ...entities.Memo) Option {
	return func(s *MemoStore) {
		s.memos = append(s.memos, memos...)
	}
}

// WithCategories sets the catalog served by ListCategories
func WithCategories(categories []entities.Category) Option {
	return func(s *MemoStore) {
		s.categories = categories
	}
}

// NewMemoStore creates an in-memory store
func NewMemoStore(opts ...Option) *MemoStore {
	s := &MemoStore{
		memos:      []entities.Memo{},
		categories: entities.DefaultCategories(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every memo, most recently created first
func (s *MemoStore) List(ctx context.Context) ([]entities.Memo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Memo, len(s.memos))
	copy(out, s.memos)
	return out, nil
}

// Create assigns an id and creation time to the draft and stores it
func (s *MemoStore) Create(ctx context.Context, draft ports.MemoDraft) (entities.Memo, error) {
	return s.CreateAt(ctx, draft, s.now())
}

// CreateAt stores a draft with a caller supplied creation time
func (s *MemoStore) CreateAt(ctx context.Context, draft ports.MemoDraft, createdAt time.Time) (entities.Memo, error) {
	// The draft was validated against the active domain config upstream.
	memo, err := entities.ReconstructMemo(
		valueobjects.NewMemoID(),
		draft.Content,
		draft.Category,
		draft.Image,
		draft.Tags,
		createdAt,
	)
	if err != nil {
		return entities.Memo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.memos = append([]entities.Memo{memo}, s.memos...)
	return memo, nil
}

// Delete removes a memo by id
func (s *MemoStore) Delete(ctx context.Context, id valueobjects.MemoID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.memos {
		if m.ID().Equals(id) {
			s.memos = append(s.memos[:i:i], s.memos[i+1:]...)
			return nil
		}
	}
	return pkgerrors.NewNotFoundError("memo")
}

// ListCategories returns the configured catalog
func (s *MemoStore) ListCategories(ctx context.Context) ([]entities.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}
