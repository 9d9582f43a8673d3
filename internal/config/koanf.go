// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/songbird/config.yaml",
	"/etc/songbird/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8004,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
			SlowRequest: time.Second,
		},
		Database: DatabaseConfig{
			Path:      "/data/songbird.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
			SeedPath:  "",
		},
		Search: SearchConfig{
			Strategy:        "partial_ratio",
			Threshold:       70,
			DefaultLimit:    5,
			MaxLimit:        50,
			FetchMultiplier: 3,
			MaxQueryLength:  200,
			Timeout:         5 * time.Second,
			Breaker: BreakerConfig{
				Enabled:          true,
				MaxRequests:      3,
				Interval:         30 * time.Second,
				Timeout:          10 * time.Second,
				FailureThreshold: 5,
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			Size:    1000,
			TTL:     30 * time.Second,
		},
		Security: SecurityConfig{
			AuthMode:          "jwt",
			JWTSecret:         "",
			SessionTimeout:    24 * time.Hour,
			AdminUsername:     "",
			AdminPassword:     "",
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			TrustedProxies:    []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		NATS: NATSConfig{
			Enabled:          false,
			URL:              "nats://127.0.0.1:4222",
			EmbeddedServer:   false,
			StoreDir:         "/data/nats/jetstream",
			MaxMemory:        256 << 20, // 256MB
			MaxStore:         1 << 30,   // 1GB
			StreamName:       "CATALOG_EVENTS",
			DurableName:      "songbird-search",
			QueueGroup:       "search",
			SubscribersCount: 2,
			AckWaitTimeout:   30 * time.Second,
			MaxDeliver:       5,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// SEARCH_THRESHOLD -> search.threshold
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",
	"slow_request": "server.slow_request",

	// Database mappings
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"catalog_seed_path": "database.seed_path",

	// Search mappings
	"search_strategy":                  "search.strategy",
	"search_threshold":                 "search.threshold",
	"search_default_limit":             "search.default_limit",
	"search_max_limit":                 "search.max_limit",
	"search_fetch_multiplier":          "search.fetch_multiplier",
	"search_max_query_length":          "search.max_query_length",
	"search_timeout":                   "search.timeout",
	"search_breaker_enabled":           "search.breaker.enabled",
	"search_breaker_max_requests":      "search.breaker.max_requests",
	"search_breaker_interval":          "search.breaker.interval",
	"search_breaker_timeout":           "search.breaker.timeout",
	"search_breaker_failure_threshold": "search.breaker.failure_threshold",

	// Cache mappings
	"cache_enabled": "cache.enabled",
	"cache_size":    "cache.size",
	"cache_ttl":     "cache.ttl",

	// Security mappings
	"auth_mode":           "security.auth_mode",
	"jwt_secret":          "security.jwt_secret",
	"session_timeout":     "security.session_timeout",
	"admin_username":      "security.admin_username",
	"admin_password":      "security.admin_password",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"trusted_proxies":     "security.trusted_proxies",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// NATS mappings
	"nats_enabled":      "nats.enabled",
	"nats_url":          "nats.url",
	"nats_embedded":     "nats.embedded_server",
	"nats_store_dir":    "nats.store_dir",
	"nats_max_memory":   "nats.max_memory",
	"nats_max_store":    "nats.max_store",
	"nats_stream_name":  "nats.stream_name",
	"nats_durable_name": "nats.durable_name",
	"nats_queue_group":  "nats.queue_group",
	"nats_subscribers":  "nats.subscribers_count",
	"nats_ack_wait":     "nats.ack_wait_timeout",
	"nats_max_deliver":  "nats.max_deliver",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - SEARCH_THRESHOLD -> search.threshold
//   - DUCKDB_PATH -> database.path
//
// Unmapped keys return "" and are skipped, so unrelated environment
// variables never leak into the config.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
