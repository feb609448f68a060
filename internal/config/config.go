// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Datastore backends selectable with DATASTORE.
const (
	DatastorePostgres = "postgres"
	DatastoreMemory   = "memory"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Blog engine
	PageSize  int
	Datastore string // "postgres" or "memory"

	// ListingCacheTTL is how long rendered article pages stay in Valkey.
	// Zero disables the listing cache.
	ListingCacheTTL time.Duration

	// CommentRateLimit is the number of comments one client may post per minute.
	CommentRateLimit int
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode or a numeric value does not parse.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "customblog"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "customblog"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		Datastore: envOrDefault("DATASTORE", DatastorePostgres),
	}

	var err error
	if cfg.PageSize, err = envInt("PAGE_SIZE", 5); err != nil {
		return nil, err
	}
	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be a positive integer, got %d", cfg.PageSize)
	}

	if cfg.CommentRateLimit, err = envInt("COMMENT_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.CommentRateLimit < 1 {
		return nil, fmt.Errorf("COMMENT_RATE_LIMIT must be a positive integer, got %d", cfg.CommentRateLimit)
	}

	ttl := envOrDefault("LISTING_CACHE_TTL", "5m")
	if cfg.ListingCacheTTL, err = time.ParseDuration(ttl); err != nil {
		return nil, fmt.Errorf("LISTING_CACHE_TTL: %w", err)
	}
	if cfg.ListingCacheTTL < 0 {
		return nil, fmt.Errorf("LISTING_CACHE_TTL must not be negative, got %s", ttl)
	}

	switch cfg.Datastore {
	case DatastorePostgres, DatastoreMemory:
	default:
		return nil, fmt.Errorf("DATASTORE must be %q or %q, got %q", DatastorePostgres, DatastoreMemory, cfg.Datastore)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.Datastore == DatastoreMemory {
			return nil, fmt.Errorf("DATASTORE=memory is not allowed in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Logger builds the process logger: JSON in production, text with debug
// output everywhere else.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	if c.Env == "production" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt reads an integer environment variable, returning a fallback if unset or empty.
func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
