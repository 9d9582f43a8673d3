// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses, with metadata
// for observability and caching information.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"songs": {"page": 1, "results": [...]}, "albums": {...}, "artists": {...}},
//	  "metadata": {
//	    "timestamp": "2026-03-02T12:00:00Z",
//	    "query_time_ms": 12
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "Query parameter 'q' is required"
//	  },
//	  "metadata": {"timestamp": "2026-03-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and performance tracking.
//
// Query time tracking:
//   - Cached responses: QueryTimeMS is 0, Cached is true
//   - Fresh queries: QueryTimeMS covers retrieval, ranking and serialization
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - UNAUTHORIZED: Missing or invalid credentials
//   - SERVICE_UNAVAILABLE: Catalog store not reachable
//   - TIMEOUT: Search did not complete in time
//   - INTERNAL_ERROR: Unexpected failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the readiness payload returned by /api/v1/health/ready.
type HealthStatus struct {
	Status            string        `json:"status"`
	Version           string        `json:"version"`
	DatabaseConnected bool          `json:"database_connected"`
	Catalog           CatalogCounts `json:"catalog"`
	Strategy          string        `json:"strategy"`
	CatalogSync       bool          `json:"catalog_sync"`
	Uptime            float64       `json:"uptime_seconds"`
}
