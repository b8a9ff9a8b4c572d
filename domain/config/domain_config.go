package config

import (
	"fmt"
	"time"
)

// CategorySource selects where the displayed category catalog comes from.
type CategorySource string

const (
	// CategorySourceStatic uses the built-in or file-provided catalog.
	CategorySourceStatic CategorySource = "static"
	// CategorySourceDerived uses the distinct category ids of the working set.
	CategorySourceDerived CategorySource = "derived"
	// CategorySourceRemote asks the memo store for its categories.
	CategorySourceRemote CategorySource = "remote"
)

// ParseCategorySource converts a configuration string into a CategorySource.
func ParseCategorySource(s string) (CategorySource, error) {
	switch CategorySource(s) {
	case CategorySourceStatic, CategorySourceDerived, CategorySourceRemote:
		return CategorySource(s), nil
	case "":
		return CategorySourceStatic, nil
	default:
		return "", fmt.Errorf("unknown category source %q", s)
	}
}

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Memo constraints
	MaxTitleLength   int
	MaxContentLength int
	MaxTags          int
	MaxTagLength     int

	// Image intake
	MaxImageBytes int64

	// Feedback
	NotificationTTL time.Duration

	// Search and catalog behaviour
	IncludeTagsInSearch bool
	CategorySource      CategorySource
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxTitleLength:   200,
		MaxContentLength: 50000,
		MaxTags:          20,
		MaxTagLength:     50,

		MaxImageBytes: 5 * 1024 * 1024,

		NotificationTTL: 3 * time.Second,

		IncludeTagsInSearch: false,
		CategorySource:      CategorySourceStatic,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// Images are inlined into store items
	config.MaxContentLength = 20000
	config.MaxTags = 10

	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	config.MaxContentLength = 100000
	config.MaxTags = 50
	config.IncludeTagsInSearch = true

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.MaxTitleLength <= 0 {
		return fmt.Errorf("max title length must be positive, got %d", c.MaxTitleLength)
	}
	if c.MaxContentLength <= 0 {
		return fmt.Errorf("max content length must be positive, got %d", c.MaxContentLength)
	}
	if c.MaxTags < 0 || c.MaxTagLength < 0 {
		return fmt.Errorf("tag limits must not be negative")
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("max image bytes must be positive, got %d", c.MaxImageBytes)
	}
	if c.NotificationTTL <= 0 {
		return fmt.Errorf("notification TTL must be positive, got %s", c.NotificationTTL)
	}
	if _, err := ParseCategorySource(string(c.CategorySource)); err != nil {
		return err
	}
	return nil
}
