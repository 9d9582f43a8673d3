// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Search pipelines (per collection)
// - Database query performance (DuckDB)
// - API endpoint latency and throughput
// - Result cache efficiency
// - Circuit breakers guarding catalog retrieval
// - Catalog sync consumption

var (
	// Search Metrics
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "songbird_search_requests_total",
			Help: "Total number of search calls by outcome",
		},
		[]string{"outcome"}, // "ok", "degraded", "invalid", "canceled"
	)

	SearchPipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "songbird_search_pipeline_duration_seconds",
			Help:    "Duration of one collection's retrieve, rank and serialize pipeline",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"entity"},
	)

	SearchCandidatesFetched = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "songbird_search_candidates_fetched",
			Help:    "Number of candidates returned by a provider per pipeline run",
			Buckets: []float64{0, 1, 3, 5, 10, 15, 30, 60, 150},
		},
		[]string{"entity"},
	)

	SearchResultsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "songbird_search_results_returned",
			Help:    "Number of ranked results returned per pipeline run",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
		[]string{"entity"},
	)

	SearchRetrievalErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "songbird_search_retrieval_errors_total",
			Help: "Total number of provider failures degraded to an empty page",
		},
		[]string{"entity"},
	)

	SearchShapeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "songbird_search_shape_errors_total",
			Help: "Total number of ranked records skipped by the serializer",
		},
		[]string{"entity"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (capacity or TTL)",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Catalog Sync Metrics
	CatalogEventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "songbird_catalog_events_total",
			Help: "Total number of catalog events consumed by outcome",
		},
		[]string{"entity", "event_type", "outcome"}, // outcome: "applied", "invalid", "failed"
	)

	CatalogEventDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "songbird_catalog_event_duration_seconds",
			Help:    "Time to apply one catalog event to the store",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSearchPipeline records one collection's pipeline run.
func RecordSearchPipeline(entity string, duration time.Duration, fetched, returned int) {
	SearchPipelineDuration.WithLabelValues(entity).Observe(duration.Seconds())
	SearchCandidatesFetched.WithLabelValues(entity).Observe(float64(fetched))
	SearchResultsReturned.WithLabelValues(entity).Observe(float64(returned))
}

// RecordRetrievalError counts a provider failure for entity.
func RecordRetrievalError(entity string) {
	SearchRetrievalErrors.WithLabelValues(entity).Inc()
}

// RecordShapeError counts a record dropped by the serializer.
func RecordShapeError(entity string) {
	SearchShapeErrors.WithLabelValues(entity).Inc()
}

// RecordSearchOutcome counts a completed search call.
func RecordSearchOutcome(outcome string) {
	SearchRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordCacheLookup records a hit or miss for cacheType.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordBreakerResult classifies a call through a circuit breaker.
// rejected is true when the breaker refused the call without running it.
func RecordBreakerResult(name string, err error, rejected bool) {
	result := "success"
	switch {
	case rejected:
		result = "rejected"
	case err != nil:
		result = "failure"
	}
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordBreakerTransition records a state change. state values follow
// gobreaker's ordering: 0=closed, 1=half-open, 2=open.
func RecordBreakerTransition(name, from, to string, state int) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCatalogEvent records the outcome of applying one catalog event.
func RecordCatalogEvent(entity, eventType, outcome string, duration time.Duration) {
	CatalogEventsConsumed.WithLabelValues(entity, eventType, outcome).Inc()
	CatalogEventDuration.Observe(duration.Seconds())
}
