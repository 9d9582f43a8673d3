// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

// Package metrics defines Songbird's Prometheus instrumentation.
//
// All collectors are registered on the default registry via promauto and
// exposed by the API router at /metrics.
//
// # Metric Families
//
// Search:
//
//	songbird_search_requests_total{outcome}
//	songbird_search_pipeline_duration_seconds{entity}
//	songbird_search_candidates_fetched{entity}
//	songbird_search_results_returned{entity}
//	songbird_search_retrieval_errors_total{entity}
//	songbird_search_shape_errors_total{entity}
//
// Storage and HTTP:
//
//	duckdb_query_duration_seconds{operation,table}
//	duckdb_query_errors_total{operation,table,error_type}
//	api_requests_total{method,endpoint,status_code}
//	api_request_duration_seconds{method,endpoint}
//	api_active_requests
//
// Resilience and sync:
//
//	cache_hits_total / cache_misses_total / cache_entries / cache_evictions_total
//	circuit_breaker_state / circuit_breaker_requests_total / circuit_breaker_state_transitions_total
//	songbird_catalog_events_total{entity,event_type,outcome}
//	songbird_catalog_event_duration_seconds
//
// Label values are bounded: entity is one of song, album, artist and the
// API endpoint label is the chi route pattern, never the raw path.
package metrics
