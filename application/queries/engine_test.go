package queries

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoboard/domain/config"
	"memoboard/domain/core/entities"
	"memoboard/domain/core/valueobjects"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newMemo(t *testing.T, id, title, content, category string, age time.Duration, tags ...string) entities.Memo {
	t.Helper()
	memoID, err := valueobjects.MemoIDFromString(id)
	require.NoError(t, err)
	text, err := valueobjects.NewMemoContent(title, content)
	require.NoError(t, err)
	m, err := entities.NewMemo(memoID, text, category, valueobjects.Image{}, tags, baseTime.Add(-age))
	require.NoError(t, err)
	return m
}

func ids(memos []entities.Memo) []string {
	out := make([]string, 0, len(memos))
	for _, m := range memos {
		out = append(out, m.ID().String())
	}
	return out
}

func sampleEngine(t *testing.T) *MemoQueryEngine {
	t.Helper()
	e := NewMemoQueryEngine(nil)
	e.SetWorkingSet([]entities.Memo{
		newMemo(t, "1", "Sprint planning", "Agenda for Monday", "work", 2*time.Hour, "meeting"),
		newMemo(t, "2", "Groceries", "Milk, eggs", "personal", time.Hour, "shopping"),
		newMemo(t, "3", "Go generics", "Type parameters notes", "study", 3*time.Hour),
		newMemo(t, "4", "Weekly report", "Send to the MANAGER", "work", 30*time.Minute),
	})
	return e
}

func TestSetWorkingSet_OrdersNewestFirst(t *testing.T) {
	e := sampleEngine(t)
	assert.Equal(t, []string{"4", "2", "1", "3"}, ids(e.WorkingSet()))
}

func TestSetWorkingSet_StableAndIdempotent(t *testing.T) {
	a := newMemo(t, "a", "t", "c", "work", time.Hour)
	b := newMemo(t, "b", "t", "c", "work", time.Hour)
	input := []entities.Memo{a, b}

	e := NewMemoQueryEngine(nil)
	e.SetWorkingSet(input)
	first := ids(e.WorkingSet())
	e.SetWorkingSet(input)

	assert.Equal(t, []string{"a", "b"}, first)
	assert.Equal(t, first, ids(e.WorkingSet()))
	assert.Equal(t, []string{"a", "b"}, ids(input), "input slice must not be reordered")
}

func TestFilter_IdentityWhenEmpty(t *testing.T) {
	e := sampleEngine(t)
	assert.Equal(t, ids(e.WorkingSet()), ids(e.Filter("", "")))
	assert.Equal(t, ids(e.WorkingSet()), ids(e.Filter("   ", "")), "blank query does not filter")
}

func TestFilter(t *testing.T) {
	e := sampleEngine(t)

	tests := []struct {
		name     string
		query    string
		category string
		want     []string
	}{
		{"category only", "", "work", []string{"4", "1"}},
		{"category is case sensitive", "", "Work", []string{}},
		{"query matches title", "groc", "", []string{"2"}},
		{"query matches content", "agenda", "", []string{"1"}},
		{"query is case insensitive", "MILK", "", []string{"2"}},
		{"field case folded", "manager", "", []string{"4"}},
		{"query and category are conjunctive", "report", "personal", []string{}},
		{"query with category", "report", "work", []string{"4"}},
		{"tags not searched by default", "shopping", "", []string{}},
		{"unknown category", "", "travel", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Filter(tt.query, tt.category)
			assert.Equal(t, tt.want, ids(got))
			for _, m := range got {
				if tt.category != "" {
					assert.Equal(t, tt.category, m.Category())
				}
			}
		})
	}
}

func TestFilter_IncludeTags(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.IncludeTagsInSearch = true
	e := NewMemoQueryEngine(cfg)
	e.SetWorkingSet([]entities.Memo{newMemo(t, "1", "Groceries", "milk", "personal", 0, "Shopping")})

	assert.Equal(t, []string{"1"}, ids(e.Filter("shop", "")))
}

func TestFilter_IsPure(t *testing.T) {
	e := sampleEngine(t)
	before := ids(e.WorkingSet())

	e.Filter("report", "work")

	assert.Equal(t, before, ids(e.WorkingSet()))
	assert.Equal(t, "", e.Query())
	assert.Equal(t, "", e.CategoryID())
}

func TestInsert_ThenFilter(t *testing.T) {
	e := sampleEngine(t)
	m := newMemo(t, "5", "Old idea", "resurfaced", "other", 30*24*time.Hour)

	e.Insert(m)

	assert.Equal(t, "5", e.WorkingSet()[0].ID().String(), "insert prepends regardless of age")
	assert.Equal(t, "5", e.Filter("", "")[0].ID().String())
	assert.Equal(t, []string{"5"}, ids(e.Filter("resurfaced", "other")))
}

func TestRemove(t *testing.T) {
	e := sampleEngine(t)
	id, _ := valueobjects.MemoIDFromString("2")

	assert.True(t, e.Remove(id))
	assert.NotContains(t, ids(e.Filter("", "")), "2")
	assert.Equal(t, 3, e.Len())

	t.Run("absent id is a no-op", func(t *testing.T) {
		before := ids(e.WorkingSet())
		assert.False(t, e.Remove(id))
		assert.Equal(t, before, ids(e.WorkingSet()))
	})
}

func TestRemove_AtMostOne(t *testing.T) {
	e := NewMemoQueryEngine(nil)
	dup := newMemo(t, "x", "t", "c", "work", 0)
	e.SetWorkingSet([]entities.Memo{dup, dup})

	id, _ := valueobjects.MemoIDFromString("x")
	e.Remove(id)

	assert.Equal(t, 1, e.Len())
}

func TestDeriveCategories(t *testing.T) {
	e := sampleEngine(t)
	assert.Equal(t, []string{"work", "personal", "study"}, e.DeriveCategories())

	empty := NewMemoQueryEngine(nil)
	assert.NotNil(t, empty.DeriveCategories())
	assert.Empty(t, empty.DeriveCategories())
}

func TestVisible_FollowsState(t *testing.T) {
	e := sampleEngine(t)
	e.SetQuery("report")
	e.SetCategory("work")

	assert.Equal(t, ids(e.Filter("report", "work")), ids(e.Visible()))

	e.SetCategory("")
	e.SetQuery("")
	assert.Equal(t, ids(e.WorkingSet()), ids(e.Visible()))
}

func TestCategories_DerivedAndCatalog(t *testing.T) {
	e := sampleEngine(t)

	derived := e.Categories()
	require.Len(t, derived, 3)
	assert.Equal(t, "work", derived[0].Name)
	assert.Equal(t, entities.FallbackCategoryColor, derived[0].Color)

	e.SetCatalog(entities.NewCategoryCatalog(entities.DefaultCategories()))
	assert.Len(t, e.Categories(), 4)

	work := e.ResolveCategory("work")
	assert.Equal(t, "Work", work.Name)
	assert.Equal(t, "#3b82f6", work.Color)

	unknown := e.ResolveCategory("travel")
	assert.Equal(t, entities.FallbackCategoryName, unknown.Name)
	assert.Equal(t, entities.FallbackCategoryColor, unknown.Color)
}

func TestMemosByCategory(t *testing.T) {
	e := sampleEngine(t)
	assert.Equal(t, []string{"4", "1"}, ids(e.MemosByCategory("work")))
	assert.Empty(t, e.MemosByCategory("travel"))
}

func TestSubscribe(t *testing.T) {
	e := NewMemoQueryEngine(nil)

	var snaps []Snapshot
	unsubscribe := e.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	e.SetWorkingSet([]entities.Memo{newMemo(t, "1", "Groceries", "milk", "personal", 0)})
	e.SetQuery("zzz")
	e.SetCategory("personal")

	require.Len(t, snaps, 3)
	assert.Len(t, snaps[0].Visible, 1)
	assert.Empty(t, snaps[1].Visible)
	assert.Equal(t, "zzz", snaps[2].Query)
	assert.Equal(t, "personal", snaps[2].CategoryID)

	unsubscribe()
	unsubscribe()
	e.SetQuery("")
	assert.Len(t, snaps, 3)
}

func TestSubscribe_ObserverMayReadEngine(t *testing.T) {
	e := NewMemoQueryEngine(nil)
	var seen int
	e.Subscribe(func(Snapshot) { seen = e.Len() })

	e.Insert(newMemo(t, "1", "t", "c", "work", 0))
	assert.Equal(t, 1, seen)
}

func TestEngine_ConcurrentAccess(t *testing.T) {
	e := sampleEngine(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			e.Filter("o", "")
			e.Categories()
		}()
		go func() {
			defer wg.Done()
			e.SetQuery("o")
			e.Visible()
		}()
	}
	wg.Wait()
	assert.Equal(t, 4, e.Len())
}
