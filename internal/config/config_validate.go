// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateSearch,
		c.validateCache,
		c.validateSecurity,
		c.validateLogging,
		c.validateNATS,
	}

	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.SlowRequest < 0 {
		return fmt.Errorf("SLOW_REQUEST must not be negative")
	}
	return nil
}

// validateDatabase validates the catalog store configuration
func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	return nil
}

// validSearchStrategies defines the accepted ranking strategies
var validSearchStrategies = map[string]bool{
	"partial_ratio": true,
	"levenshtein":   true,
}

// validateSearch validates fuzzy search settings
func (c *Config) validateSearch() error {
	s := c.Search
	if !validSearchStrategies[s.Strategy] {
		return fmt.Errorf("SEARCH_STRATEGY must be one of: partial_ratio, levenshtein")
	}
	if s.Threshold < 0 || s.Threshold > 100 {
		return fmt.Errorf("SEARCH_THRESHOLD must be between 0 and 100")
	}
	if s.MaxLimit < 1 {
		return fmt.Errorf("SEARCH_MAX_LIMIT must be at least 1")
	}
	if s.DefaultLimit < 1 || s.DefaultLimit > s.MaxLimit {
		return fmt.Errorf("SEARCH_DEFAULT_LIMIT must be between 1 and SEARCH_MAX_LIMIT (%d)", s.MaxLimit)
	}
	if s.FetchMultiplier < 3 {
		return fmt.Errorf("SEARCH_FETCH_MULTIPLIER must be at least 3")
	}
	if s.MaxQueryLength < 1 {
		return fmt.Errorf("SEARCH_MAX_QUERY_LENGTH must be at least 1")
	}
	if s.Timeout < 0 {
		return fmt.Errorf("SEARCH_TIMEOUT must not be negative")
	}
	if s.Breaker.Enabled && s.Breaker.FailureThreshold < 1 {
		return fmt.Errorf("SEARCH_BREAKER_FAILURE_THRESHOLD must be at least 1")
	}
	return nil
}

// validateCache validates result cache settings
func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if c.Cache.Size < 1 {
		return fmt.Errorf("CACHE_SIZE must be at least 1 when CACHE_ENABLED=true")
	}
	if c.Cache.TTL < time.Second {
		return fmt.Errorf("CACHE_TTL must be at least 1s when CACHE_ENABLED=true")
	}
	return nil
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	if err := c.validateAuthMode(); err != nil {
		return err
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateAuthModeConfig()
}

// validAuthModes defines the allowed authentication modes
var validAuthModes = map[string]bool{
	"none":  true,
	"jwt":   true,
	"basic": true,
}

// validateAuthMode checks if auth mode is valid
func (c *Config) validateAuthMode() error {
	if !validAuthModes[c.Security.AuthMode] {
		return fmt.Errorf("AUTH_MODE must be one of: none, jwt, basic")
	}

	// Refuse to serve an open search endpoint in production by accident.
	if c.Security.AuthMode == "none" && c.IsProduction() {
		return fmt.Errorf("AUTH_MODE=none is not allowed when ENVIRONMENT=production. " +
			"Either set AUTH_MODE to jwt or basic, or use ENVIRONMENT=development for testing purposes")
	}
	return nil
}

// validateAuthModeConfig validates configuration for the selected auth mode
func (c *Config) validateAuthModeConfig() error {
	switch c.Security.AuthMode {
	case "jwt":
		return c.validateJWTSecret()
	case "basic":
		return c.validateAdminCredentials()
	}
	return nil
}

// validateCORS rejects wildcard CORS in production with authentication enabled.
func (c *Config) validateCORS() error {
	if c.Security.AuthMode != "none" && c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production with authentication enabled. " +
			"Set specific origins: CORS_ORIGINS=https://yourdomain.com,https://app.yourdomain.com")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if CORS configuration has security concerns
// that should be logged at startup
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.Security.AuthMode != "none" && c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// validateJWTSecret validates the shared HMAC secret used to verify tokens
// issued by the platform's auth service.
func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_MODE is jwt")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for security")
	}
	if containsPlaceholder(c.Security.JWTSecret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value - generate a secure secret with: openssl rand -base64 32")
	}
	return nil
}

// validateAdminCredentials validates admin username and password for basic mode
func (c *Config) validateAdminCredentials() error {
	if c.Security.AdminUsername == "" {
		return fmt.Errorf("ADMIN_USERNAME is required when AUTH_MODE is basic")
	}
	if c.Security.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required when AUTH_MODE is basic")
	}
	if len(c.Security.AdminPassword) < 12 {
		return fmt.Errorf("ADMIN_PASSWORD must be at least 12 characters")
	}
	if containsPlaceholder(c.Security.AdminPassword) {
		return fmt.Errorf("ADMIN_PASSWORD contains a placeholder value - set a secure password")
	}
	return nil
}

// validLogLevels defines the accepted log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the accepted log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// NATS limit constants
const (
	natsMinMemory      = 16 * 1024 * 1024 // 16MB
	natsMinStore       = 64 * 1024 * 1024 // 64MB
	natsMaxSubscribers = 32
)

// validateNATS validates catalog sync configuration (only if enabled)
func (c *Config) validateNATS() error {
	if !c.NATS.Enabled {
		return nil
	}

	if err := validateNATSURL(c.NATS.URL); err != nil {
		return fmt.Errorf("NATS_URL is invalid: %w", err)
	}
	if c.NATS.StreamName == "" {
		return fmt.Errorf("NATS_STREAM_NAME is required when NATS_ENABLED=true")
	}
	if c.NATS.DurableName == "" {
		return fmt.Errorf("NATS_DURABLE_NAME is required when NATS_ENABLED=true")
	}
	if c.NATS.SubscribersCount < 1 || c.NATS.SubscribersCount > natsMaxSubscribers {
		return fmt.Errorf("NATS_SUBSCRIBERS must be between 1 and %d", natsMaxSubscribers)
	}
	if c.NATS.MaxDeliver < 1 {
		return fmt.Errorf("NATS_MAX_DELIVER must be at least 1")
	}
	if c.NATS.AckWaitTimeout < time.Second {
		return fmt.Errorf("NATS_ACK_WAIT must be at least 1s")
	}
	if c.NATS.EmbeddedServer {
		if c.NATS.MaxMemory < natsMinMemory {
			return fmt.Errorf("NATS_MAX_MEMORY must be at least 16MB (16777216 bytes)")
		}
		if c.NATS.MaxStore < natsMinStore {
			return fmt.Errorf("NATS_MAX_STORE must be at least 64MB (67108864 bytes)")
		}
	}
	return nil
}

// validateNATSURL validates that the NATS URL is properly formatted
// Supports: nats://, tls://, ws:// and wss:// schemes
func validateNATSURL(rawURL string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	validSchemes := map[string]bool{"nats": true, "tls": true, "ws": true, "wss": true}
	if !validSchemes[parsedURL.Scheme] {
		return fmt.Errorf("scheme must be nats, tls, ws, or wss, got: %s", parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("host is required (e.g., localhost:4222, nats.example.com)")
	}

	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"YOUR_PASSWORD",
	"PLACEHOLDER",
	"EXAMPLE",
}

// containsPlaceholder checks if a value contains common placeholder patterns
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
