// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

/*
Package config provides centralized configuration management for Songbird.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. Later layers override earlier ones.

# Config File

The first existing file wins:
  - $CONFIG_PATH
  - ./config.yaml, ./config.yml
  - /etc/songbird/config.yaml, /etc/songbird/config.yml

Example:

	server:
	  port: 8004
	search:
	  strategy: partial_ratio
	  threshold: 70
	  default_limit: 5
	cache:
	  ttl: 30s
	nats:
	  enabled: true
	  url: nats://nats:4222

# Environment Variables

Only mapped variables are read:

Server:
  - HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT, ENVIRONMENT

Database:
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS, CATALOG_SEED_PATH

Search:
  - SEARCH_STRATEGY, SEARCH_THRESHOLD, SEARCH_DEFAULT_LIMIT, SEARCH_MAX_LIMIT
  - SEARCH_FETCH_MULTIPLIER, SEARCH_MAX_QUERY_LENGTH, SEARCH_TIMEOUT
  - SEARCH_BREAKER_ENABLED, SEARCH_BREAKER_MAX_REQUESTS, SEARCH_BREAKER_INTERVAL
  - SEARCH_BREAKER_TIMEOUT, SEARCH_BREAKER_FAILURE_THRESHOLD

Cache:
  - CACHE_ENABLED, CACHE_SIZE, CACHE_TTL

Security:
  - AUTH_MODE (none, jwt, basic), JWT_SECRET, SESSION_TIMEOUT
  - ADMIN_USERNAME, ADMIN_PASSWORD
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS, TRUSTED_PROXIES (comma-separated)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Catalog sync:
  - NATS_ENABLED, NATS_URL, NATS_EMBEDDED, NATS_STORE_DIR
  - NATS_MAX_MEMORY, NATS_MAX_STORE, NATS_STREAM_NAME, NATS_DURABLE_NAME
  - NATS_QUEUE_GROUP, NATS_SUBSCRIBERS, NATS_ACK_WAIT, NATS_MAX_DELIVER

# Validation

Load validates every section and returns an error naming the offending
environment variable. Production mode (ENVIRONMENT=production) refuses
AUTH_MODE=none and wildcard CORS.
*/
package config
