package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDomainConfig(t *testing.T) {
	tests := []struct {
		env         string
		includeTags bool
	}{
		{"production", false},
		{"development", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := LoadDomainConfig(tt.env)
			assert.NoError(t, cfg.Validate())
			assert.Equal(t, tt.includeTags, cfg.IncludeTagsInSearch)
			assert.Equal(t, int64(5*1024*1024), cfg.MaxImageBytes)
			assert.Equal(t, 3*time.Second, cfg.NotificationTTL)
		})
	}
}

func TestDomainConfig_Validate(t *testing.T) {
	cfg := DefaultDomainConfig()
	cfg.CategorySource = "database"
	assert.Error(t, cfg.Validate())

	cfg = DefaultDomainConfig()
	cfg.NotificationTTL = 0
	assert.Error(t, cfg.Validate())
}

func TestParseCategorySource(t *testing.T) {
	src, err := ParseCategorySource("")
	assert.NoError(t, err)
	assert.Equal(t, CategorySourceStatic, src)

	src, err = ParseCategorySource("remote")
	assert.NoError(t, err)
	assert.Equal(t, CategorySourceRemote, src)

	_, err = ParseCategorySource("merged")
	assert.Error(t, err)
}
