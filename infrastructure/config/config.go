package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	domainconfig "memoboard/domain/config"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreREST     = "rest"
	StoreDynamoDB = "dynamodb"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Memo store
	StoreBackend         string
	StoreURL             string
	SeedSampleMemos      bool
	EnableCircuitBreaker bool

	// Categories and search
	CategorySource      string
	CategoryCatalogFile string
	IncludeTagsInSearch bool

	// User feedback and uploads
	NotificationTTL time.Duration
	MaxImageBytes   int64

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	EventBusName  string
	EnableEvents  bool

	// WebSocket configuration
	WebSocketEndpoint string
	ConnectionsTable  string

	// Logging
	LogLevel string

	// Feature flags
	EnableMetrics bool
	EnableTracing bool
	EnableCORS    bool
	CORSOrigins   []string

	// Write requests per client per minute; 0 disables limiting
	RateLimitPerMinute int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		StoreBackend:         strings.ToLower(getEnv("STORE_BACKEND", StoreMemory)),
		StoreURL:             getEnv("STORE_URL", "http://localhost:3000"),
		SeedSampleMemos:      getEnvBool("SEED_SAMPLE_MEMOS", true),
		EnableCircuitBreaker: getEnvBool("ENABLE_CIRCUIT_BREAKER", false),

		CategorySource:      strings.ToLower(getEnv("CATEGORY_SOURCE", string(domainconfig.CategorySourceStatic))),
		CategoryCatalogFile: getEnv("CATEGORY_CATALOG_FILE", ""),
		IncludeTagsInSearch: getEnvBool("INCLUDE_TAGS_IN_SEARCH", false),

		NotificationTTL: getEnvDuration("NOTIFICATION_TTL", 3*time.Second),
		MaxImageBytes:   int64(getEnvInt("MAX_IMAGE_BYTES", 5*1024*1024)),

		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("DYNAMODB_TABLE", "memoboard"),
		EventBusName:  getEnv("EVENT_BUS_NAME", "memoboard-events"),
		EnableEvents:  getEnvBool("ENABLE_EVENTS", false),

		WebSocketEndpoint: getEnv("WEBSOCKET_ENDPOINT", ""),
		ConnectionsTable:  getEnv("CONNECTIONS_TABLE", "memoboard-connections"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
		CORSOrigins:   getEnvList("CORS_ORIGINS", []string{"*"}),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreMemory:
	case StoreREST:
		if c.StoreURL == "" {
			return fmt.Errorf("STORE_URL is required for the rest store")
		}
	case StoreDynamoDB:
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required for the dynamodb store")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if _, err := domainconfig.ParseCategorySource(c.CategorySource); err != nil {
		return fmt.Errorf("CATEGORY_SOURCE: %w", err)
	}

	if c.NotificationTTL <= 0 {
		return fmt.Errorf("NOTIFICATION_TTL must be positive")
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("MAX_IMAGE_BYTES must be positive")
	}

	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}

	if c.EnableEvents && c.EventBusName == "" {
		return fmt.Errorf("EVENT_BUS_NAME is required when events are enabled")
	}

	return nil
}

// DomainConfig derives the business rules for the current environment with
// the environment overrides applied
func (c *Config) DomainConfig() *domainconfig.DomainConfig {
	dc := domainconfig.LoadDomainConfig(c.Environment)
	dc.IncludeTagsInSearch = c.IncludeTagsInSearch
	dc.NotificationTTL = c.NotificationTTL
	dc.MaxImageBytes = c.MaxImageBytes
	if src, err := domainconfig.ParseCategorySource(c.CategorySource); err == nil {
		dc.CategorySource = src
	}
	return dc
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList gets a comma separated environment variable with a default value
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
