package queries

import (
	"sort"
	"strings"
	"sync"

	"memoboard/domain/config"
	"memoboard/domain/core/entities"
	"memoboard/domain/core/valueobjects"
)

// Snapshot is the engine state delivered to observers after every change
type Snapshot struct {
	Query      string
	CategoryID string
	Visible    []entities.Memo
	Categories []entities.Category
}

// Observer receives engine snapshots. Observers run outside the engine lock
// and may call back into the engine.
type Observer func(Snapshot)

// MemoQueryEngine holds the working set of memos together with the current
// search query and category filter, and derives the visible list from them.
type MemoQueryEngine struct {
	mu          sync.RWMutex
	memos       []entities.Memo
	query       string
	categoryID  string
	catalog     *entities.CategoryCatalog
	includeTags bool

	observerMu sync.Mutex
	observers  map[int]Observer
	nextID     int
}

// NewMemoQueryEngine creates an engine with an empty working set
func NewMemoQueryEngine(cfg *config.DomainConfig) *MemoQueryEngine {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &MemoQueryEngine{
		memos:       []entities.Memo{},
		includeTags: cfg.IncludeTagsInSearch,
		observers:   make(map[int]Observer),
	}
}

// SetWorkingSet replaces the working set. The engine keeps its own copy,
// ordered newest first by creation time; ties keep their input order.
func (e *MemoQueryEngine) SetWorkingSet(memos []entities.Memo) {
	set := make([]entities.Memo, len(memos))
	copy(set, memos)
	sort.SliceStable(set, func(i, j int) bool {
		return set[i].CreatedAt().After(set[j].CreatedAt())
	})

	e.mu.Lock()
	e.memos = set
	e.mu.Unlock()

	e.publish()
}

// WorkingSet returns a copy of the working set
func (e *MemoQueryEngine) WorkingSet() []entities.Memo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneMemos(e.memos)
}

// Len returns the size of the working set
func (e *MemoQueryEngine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.memos)
}

// DeriveCategories returns the distinct category ids of the working set in
// first-seen order
func (e *MemoQueryEngine) DeriveCategories() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.deriveLocked()
}

func (e *MemoQueryEngine) deriveLocked() []string {
	seen := make(map[string]struct{}, len(e.memos))
	ids := make([]string, 0)
	for _, m := range e.memos {
		if _, ok := seen[m.Category()]; ok {
			continue
		}
		seen[m.Category()] = struct{}{}
		ids = append(ids, m.Category())
	}
	return ids
}

// Filter returns the memos matching both the category and the query.
// An empty categoryID matches every category and a blank query matches
// every memo. Working set order is preserved.
func (e *MemoQueryEngine) Filter(query, categoryID string) []entities.Memo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.filterLocked(query, categoryID)
}

func (e *MemoQueryEngine) filterLocked(query, categoryID string) []entities.Memo {
	textSearch := strings.TrimSpace(query) != ""
	needle := strings.ToLower(query)

	out := make([]entities.Memo, 0, len(e.memos))
	for _, m := range e.memos {
		if categoryID != "" && m.Category() != categoryID {
			continue
		}
		if textSearch && !m.Matches(needle, e.includeTags) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Insert prepends a memo that the store has already accepted
func (e *MemoQueryEngine) Insert(memo entities.Memo) {
	e.mu.Lock()
	set := make([]entities.Memo, 0, len(e.memos)+1)
	set = append(set, memo)
	e.memos = append(set, e.memos...)
	e.mu.Unlock()

	e.publish()
}

// Remove drops the first memo with the given id. It reports whether a memo
// was removed; removing an absent id changes nothing.
func (e *MemoQueryEngine) Remove(id valueobjects.MemoID) bool {
	e.mu.Lock()
	idx := -1
	for i, m := range e.memos {
		if m.ID().Equals(id) {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return false
	}
	set := make([]entities.Memo, 0, len(e.memos)-1)
	set = append(set, e.memos[:idx]...)
	e.memos = append(set, e.memos[idx+1:]...)
	e.mu.Unlock()

	e.publish()
	return true
}

// SetQuery updates the current free-text query
func (e *MemoQueryEngine) SetQuery(query string) {
	e.mu.Lock()
	e.query = query
	e.mu.Unlock()

	e.publish()
}

// SetCategory updates the current category filter; "" selects all
func (e *MemoQueryEngine) SetCategory(categoryID string) {
	e.mu.Lock()
	e.categoryID = categoryID
	e.mu.Unlock()

	e.publish()
}

// Query returns the current free-text query
func (e *MemoQueryEngine) Query() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query
}

// CategoryID returns the current category filter
func (e *MemoQueryEngine) CategoryID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.categoryID
}

// Visible returns Filter applied to the current query and category
func (e *MemoQueryEngine) Visible() []entities.Memo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.filterLocked(e.query, e.categoryID)
}

// MemosByCategory returns the memos of one category in working set order
func (e *MemoQueryEngine) MemosByCategory(categoryID string) []entities.Memo {
	return e.Filter("", categoryID)
}

// SetCatalog installs the category catalog used for display
func (e *MemoQueryEngine) SetCatalog(catalog entities.CategoryCatalog) {
	e.mu.Lock()
	e.catalog = &catalog
	e.mu.Unlock()

	e.publish()
}

// HasCatalog reports whether a catalog has been installed
func (e *MemoQueryEngine) HasCatalog() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.catalog != nil
}

// Categories returns the display catalog. Without an installed catalog the
// derived ids are listed with their id as name.
func (e *MemoQueryEngine) Categories() []entities.Category {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.categoriesLocked()
}

func (e *MemoQueryEngine) categoriesLocked() []entities.Category {
	if e.catalog != nil {
		return e.catalog.All()
	}
	ids := e.deriveLocked()
	out := make([]entities.Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, derivedCategory(id))
	}
	return out
}

// ResolveCategory returns the display entry for a category id. Ids missing
// from an installed catalog get the fallback name and color.
func (e *MemoQueryEngine) ResolveCategory(id string) entities.Category {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.catalog != nil {
		return e.catalog.Resolve(id)
	}
	return derivedCategory(id)
}

func derivedCategory(id string) entities.Category {
	if id == "" {
		return entities.Category{Name: entities.FallbackCategoryName, Color: entities.FallbackCategoryColor}
	}
	return entities.Category{ID: id, Name: id, Color: entities.FallbackCategoryColor}
}

// Snapshot returns the current state
func (e *MemoQueryEngine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{
		Query:      e.query,
		CategoryID: e.categoryID,
		Visible:    e.filterLocked(e.query, e.categoryID),
		Categories: e.categoriesLocked(),
	}
}

// Subscribe registers an observer and returns a function that removes it
func (e *MemoQueryEngine) Subscribe(observer Observer) func() {
	e.observerMu.Lock()
	id := e.nextID
	e.nextID++
	e.observers[id] = observer
	e.observerMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.observerMu.Lock()
			delete(e.observers, id)
			e.observerMu.Unlock()
		})
	}
}

func (e *MemoQueryEngine) publish() {
	e.observerMu.Lock()
	if len(e.observers) == 0 {
		e.observerMu.Unlock()
		return
	}
	ids := make([]int, 0, len(e.observers))
	for id := range e.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	observers := make([]Observer, 0, len(ids))
	for _, id := range ids {
		observers = append(observers, e.observers[id])
	}
	e.observerMu.Unlock()

	snap := e.Snapshot()
	for _, observer := range observers {
		observer(snap)
	}
}

func cloneMemos(memos []entities.Memo) []entities.Memo {
	out := make([]entities.Memo, len(memos))
	copy(out, memos)
	return out
}
