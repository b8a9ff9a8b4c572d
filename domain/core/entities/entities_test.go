package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoboard/domain/config"
	"memoboard/domain/core/valueobjects"
	pkgerrors "memoboard/pkg/errors"
)

func mustContent(t *testing.T, title, body string) valueobjects.MemoContent {
	t.Helper()
	c, err := valueobjects.NewMemoContent(title, body)
	require.NoError(t, err)
	return c
}

func TestNewMemo(t *testing.T) {
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	id := valueobjects.NewMemoID()

	t.Run("valid memo", func(t *testing.T) {
		m, err := NewMemo(id, mustContent(t, "Meeting", "Agenda"), "work", valueobjects.Image{}, []string{" a ", "", "b"}, created)
		require.NoError(t, err)
		assert.Equal(t, id, m.ID())
		assert.Equal(t, "Meeting", m.Title())
		assert.Equal(t, "Agenda", m.Content())
		assert.Equal(t, "work", m.Category())
		assert.Equal(t, []string{"a", "b"}, m.Tags())
		assert.Equal(t, created, m.CreatedAt())
		assert.False(t, m.HasImage())
	})

	t.Run("missing category", func(t *testing.T) {
		_, err := NewMemo(id, mustContent(t, "t", "c"), " ", valueobjects.Image{}, nil, created)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := NewMemo(valueobjects.MemoID{}, mustContent(t, "t", "c"), "work", valueobjects.Image{}, nil, created)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("zero content", func(t *testing.T) {
		_, err := NewMemo(id, valueobjects.MemoContent{}, "work", valueobjects.Image{}, nil, created)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("tag limit", func(t *testing.T) {
		cfg := config.DefaultDomainConfig()
		cfg.MaxTags = 1
		_, err := NewMemoWithConfig(id, mustContent(t, "t", "c"), "work", valueobjects.Image{}, []string{"a", "b"}, created, cfg)
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestMemo_TagsAreCopied(t *testing.T) {
	m, err := NewMemo(valueobjects.NewMemoID(), mustContent(t, "t", "c"), "work", valueobjects.Image{}, []string{"a"}, time.Now())
	require.NoError(t, err)

	tags := m.Tags()
	tags[0] = "mutated"
	assert.Equal(t, []string{"a"}, m.Tags())
}

func TestMemo_Matches(t *testing.T) {
	m, err := NewMemo(valueobjects.NewMemoID(), mustContent(t, "Groceries", "milk"), "personal", valueobjects.Image{}, []string{"Urgent"}, time.Now())
	require.NoError(t, err)

	assert.True(t, m.Matches("groc", false))
	assert.False(t, m.Matches("urgent", false))
	assert.True(t, m.Matches("urgent", true))
}

func TestCategoryCatalog(t *testing.T) {
	catalog := NewCategoryCatalog(append(DefaultCategories(), Category{ID: "work", Name: "Dup"}, Category{}))

	assert.Equal(t, 4, catalog.Len())

	work, ok := catalog.Lookup("work")
	require.True(t, ok)
	assert.Equal(t, "Work", work.Name)
	assert.Equal(t, "#3b82f6", work.Color)

	unknown := catalog.Resolve("travel")
	assert.Equal(t, "travel", unknown.ID)
	assert.Equal(t, FallbackCategoryName, unknown.Name)
	assert.Equal(t, FallbackCategoryColor, unknown.Color)

	all := catalog.All()
	all[0].Name = "changed"
	assert.Equal(t, "Work", catalog.All()[0].Name)
}
