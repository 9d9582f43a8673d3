// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.New(&cfg.Database)
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Search   SearchConfig   `koanf:"search"`
	Cache    CacheConfig    `koanf:"cache"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
	NATS     NATSConfig     `koanf:"nats"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
	SlowRequest time.Duration `koanf:"slow_request"` // 0 disables slow request warnings
}

// DatabaseConfig holds DuckDB catalog store settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`   // 0 = use NumCPU
	SeedPath  string `koanf:"seed_path"` // JSON catalog snapshot loaded at startup (optional)
}

// SearchConfig holds fuzzy search and ranking settings.
//
// Environment Variables:
//   - SEARCH_STRATEGY: partial_ratio or levenshtein (default: partial_ratio)
//   - SEARCH_THRESHOLD: minimum score 0-100 (default: 70)
//   - SEARCH_DEFAULT_LIMIT: page size when none is given (default: 5)
//   - SEARCH_MAX_LIMIT: largest accepted page size (default: 50)
//   - SEARCH_FETCH_MULTIPLIER: provider over-fetch factor, at least 3 (default: 3)
//   - SEARCH_MAX_QUERY_LENGTH: longest accepted query (default: 200)
//   - SEARCH_TIMEOUT: retrieval bound per search call (default: 5s)
type SearchConfig struct {
	Strategy        string        `koanf:"strategy"`
	Threshold       int           `koanf:"threshold"`
	DefaultLimit    int           `koanf:"default_limit"`
	MaxLimit        int           `koanf:"max_limit"`
	FetchMultiplier int           `koanf:"fetch_multiplier"`
	MaxQueryLength  int           `koanf:"max_query_length"`
	Timeout         time.Duration `koanf:"timeout"`
	Breaker         BreakerConfig `koanf:"breaker"`
}

// BreakerConfig holds circuit breaker settings for catalog retrieval
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// CacheConfig holds search result cache settings
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	Size    int           `koanf:"size"`
	TTL     time.Duration `koanf:"ttl"`
}

// SecurityConfig holds authentication and HTTP protection settings
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"` // none, jwt, basic
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	AdminUsername     string        `koanf:"admin_username"`
	AdminPassword     string        `koanf:"admin_password"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// NATSConfig holds catalog synchronization settings. The content and
// artist services publish catalog changes to JetStream and the search
// service applies them to its read model.
type NATSConfig struct {
	// Enabled controls whether the catalog consumer runs.
	Enabled bool `koanf:"enabled"`

	// URL is the NATS server connection URL.
	URL string `koanf:"url"`

	// EmbeddedServer starts an in-process JetStream server on URL's port.
	EmbeddedServer bool `koanf:"embedded_server"`

	// StoreDir is the JetStream storage directory for the embedded server.
	StoreDir string `koanf:"store_dir"`

	// MaxMemory and MaxStore bound embedded JetStream resources in bytes.
	MaxMemory int64 `koanf:"max_memory"`
	MaxStore  int64 `koanf:"max_store"`

	// StreamName is the JetStream stream carrying catalog events.
	StreamName string `koanf:"stream_name"`

	// DurableName is the durable consumer name, shared across replicas.
	DurableName string `koanf:"durable_name"`

	// QueueGroup load-balances events across search replicas.
	QueueGroup string `koanf:"queue_group"`

	// SubscribersCount is the number of concurrent subscriber goroutines.
	SubscribersCount int `koanf:"subscribers_count"`

	// AckWaitTimeout is how long JetStream waits for an ack before redelivery.
	AckWaitTimeout time.Duration `koanf:"ack_wait_timeout"`

	// MaxDeliver bounds redelivery attempts for a failing event.
	MaxDeliver int `koanf:"max_deliver"`
}

// Load reads configuration from all sources and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
