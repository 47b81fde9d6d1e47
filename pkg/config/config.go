// Package config loads runtime configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config captures runtime configuration for the proxy service.
type Config struct {
	HTTP    HTTPConfig
	Reviews ReviewsConfig
	Catalog CatalogConfig
	Logging LoggingConfig
}

// HTTPConfig configures the inbound HTTP server.
type HTTPConfig struct {
	Port          int
	ShutdownGrace time.Duration
}

// ReviewsConfig configures the reviews upstream and the snapshot cache.
type ReviewsConfig struct {
	BaseURL    string
	ShopDomain string
	APIToken   string
	PerPage    int
	MaxPages   int
	Timeout    time.Duration
	CacheTTL   time.Duration
}

// CatalogConfig configures the catalog upstream and the batch resolver.
type CatalogConfig struct {
	ShopDomain string
	BaseURL    string
	APIToken   string
	APIVersion string
	ChunkSize  int
	Timeout    time.Duration
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string
	Pretty bool
}

const (
	defaultPort          = 8080
	defaultShutdownGrace = 15 * time.Second
	defaultReviewsBase   = "https://judge.me"
	defaultPerPage       = 100
	defaultMaxPages      = 100
	defaultTimeout       = 5 * time.Second
	defaultCacheTTL      = 24 * time.Hour
	defaultAPIVersion    = "2024-07"
	defaultChunkSize     = 50
	defaultLogLevel      = "info"
)

// Load reads configuration from environment variables, applying defaults
// when a variable is unset.
func Load() (*Config, error) {
	port, err := intEnv("PORT", defaultPort)
	if err != nil {
		return nil, err
	}
	grace, err := durationEnv("SHUTDOWN_GRACE", defaultShutdownGrace)
	if err != nil {
		return nil, err
	}
	reviewsTimeout, err := durationEnv("REVIEWS_TIMEOUT", defaultTimeout)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := durationEnv("REVIEWS_CACHE_TTL", defaultCacheTTL)
	if err != nil {
		return nil, err
	}
	maxPages, err := intEnv("REVIEWS_MAX_PAGES", defaultMaxPages)
	if err != nil {
		return nil, err
	}
	catalogTimeout, err := durationEnv("CATALOG_TIMEOUT", defaultTimeout)
	if err != nil {
		return nil, err
	}
	chunkSize, err := intEnv("CATALOG_CHUNK_SIZE", defaultChunkSize)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Port:          port,
			ShutdownGrace: grace,
		},
		Reviews: ReviewsConfig{
			BaseURL:    getEnvOrDefault("REVIEWS_BASE_URL", defaultReviewsBase),
			ShopDomain: os.Getenv("SHOP_DOMAIN"),
			APIToken:   os.Getenv("REVIEWS_API_TOKEN"),
			PerPage:    defaultPerPage,
			MaxPages:   maxPages,
			Timeout:    reviewsTimeout,
			CacheTTL:   cacheTTL,
		},
		Catalog: CatalogConfig{
			ShopDomain: os.Getenv("SHOP_DOMAIN"),
			BaseURL:    os.Getenv("CATALOG_BASE_URL"),
			APIToken:   os.Getenv("CATALOG_API_TOKEN"),
			APIVersion: getEnvOrDefault("CATALOG_API_VERSION", defaultAPIVersion),
			ChunkSize:  chunkSize,
			Timeout:    catalogTimeout,
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", defaultLogLevel),
			Pretty: os.Getenv("LOG_PRETTY") == "true",
		},
	}

	if cfg.Reviews.MaxPages <= 0 {
		return nil, fmt.Errorf("REVIEWS_MAX_PAGES must be positive (got %d)", cfg.Reviews.MaxPages)
	}
	if cfg.Catalog.ChunkSize <= 0 {
		return nil, fmt.Errorf("CATALOG_CHUNK_SIZE must be positive (got %d)", cfg.Catalog.ChunkSize)
	}

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
