// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package metrics

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// Metrics are process-global, so tests assert on deltas and use label
// values no other test touches.

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		wantErrs  float64
	}{
		{"successful select", "SELECT", "test_songs", nil, 0},
		{"failed upsert", "UPSERT", "test_albums", errors.New("constraint violation"), 1},
		{"long error is truncated", "DELETE", "test_artists", errors.New(strings.Repeat("x", 120)), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordDBQuery(tt.operation, tt.table, 5*time.Millisecond, tt.err)

			if got := testutil.CollectAndCount(DBQueryDuration); got == 0 {
				t.Error("Expected query duration samples")
			}
			if tt.err == nil {
				return
			}
			label := tt.err.Error()
			if len(label) > 50 {
				label = label[:50]
			}
			got := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, label))
			if got != tt.wantErrs {
				t.Errorf("Expected %v errors, got %v", tt.wantErrs, got)
			}
		})
	}
}

func TestRecordSearchOutcome(t *testing.T) {
	before := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("degraded"))
	RecordSearchOutcome("degraded")
	RecordSearchOutcome("degraded")
	after := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("degraded"))

	if after-before != 2 {
		t.Errorf("Expected 2 degraded searches recorded, got %v", after-before)
	}
}

func TestRecordSearchPipelineAndErrors(t *testing.T) {
	const entity = "test_pipeline_entity"

	RecordSearchPipeline(entity, 3*time.Millisecond, 15, 4)
	RecordRetrievalError(entity)
	RecordShapeError(entity)
	RecordShapeError(entity)

	if got := testutil.ToFloat64(SearchRetrievalErrors.WithLabelValues(entity)); got != 1 {
		t.Errorf("Expected 1 retrieval error, got %v", got)
	}
	if got := testutil.ToFloat64(SearchShapeErrors.WithLabelValues(entity)); got != 2 {
		t.Errorf("Expected 2 shape errors, got %v", got)
	}
	if got := testutil.CollectAndCount(SearchCandidatesFetched); got == 0 {
		t.Error("Expected candidate histogram samples")
	}
}

func TestRecordCacheLookup(t *testing.T) {
	const cacheType = "test_lookup"

	RecordCacheLookup(cacheType, true)
	RecordCacheLookup(cacheType, false)
	RecordCacheLookup(cacheType, false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues(cacheType)); got != 1 {
		t.Errorf("Expected 1 hit, got %v", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues(cacheType)); got != 2 {
		t.Errorf("Expected 2 misses, got %v", got)
	}
}

func TestRecordBreakerResult(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		rejected bool
		result   string
	}{
		{"success", nil, false, "success"},
		{"failure", errors.New("io error"), false, "failure"},
		{"rejected", errors.New("circuit breaker is open"), true, "rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := "test_breaker_" + tt.name
			RecordBreakerResult(name, tt.err, tt.rejected)
			if got := testutil.ToFloat64(CircuitBreakerRequests.WithLabelValues(name, tt.result)); got != 1 {
				t.Errorf("Expected result %q counted once, got %v", tt.result, got)
			}
		})
	}
}

func TestRecordBreakerTransition(t *testing.T) {
	const name = "test_breaker_transition"

	RecordBreakerTransition(name, "closed", "open", 2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(name)); got != 2 {
		t.Errorf("Expected state gauge 2, got %v", got)
	}
	RecordBreakerTransition(name, "open", "half-open", 1)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues(name)); got != 1 {
		t.Errorf("Expected state gauge 1, got %v", got)
	}
	if got := testutil.ToFloat64(CircuitBreakerTransitions.WithLabelValues(name, "closed", "open")); got != 1 {
		t.Errorf("Expected one closed->open transition, got %v", got)
	}
}

func TestRecordCatalogEvent(t *testing.T) {
	RecordCatalogEvent("test_song", "upsert", "applied", time.Millisecond)
	RecordCatalogEvent("test_song", "upsert", "invalid", time.Millisecond)

	if got := testutil.ToFloat64(CatalogEventsConsumed.WithLabelValues("test_song", "upsert", "applied")); got != 1 {
		t.Errorf("Expected 1 applied event, got %v", got)
	}
}

func TestTrackActiveRequest_Concurrent(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			RecordAPIRequest("GET", "/api/v1/search", "200", time.Millisecond)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("Expected active requests to return to %v, got %v", before, got)
	}
}

// histogramSnapshot extracts count and sum from a Prometheus histogram
func histogramSnapshot(t *testing.T, h prometheus.Observer) (uint64, float64) {
	t.Helper()
	metric, ok := h.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T is not a metric", h)
	}
	var m io_prometheus_client.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
}

func TestRecordSearchPipeline_Histograms(t *testing.T) {
	const entity = "histogram_test_entity"

	RecordSearchPipeline(entity, 20*time.Millisecond, 15, 4)
	RecordSearchPipeline(entity, 30*time.Millisecond, 9, 2)

	count, sum := histogramSnapshot(t, SearchCandidatesFetched.WithLabelValues(entity))
	if count != 2 || sum != 24 {
		t.Errorf("Expected 2 fetched observations summing to 24, got %d/%v", count, sum)
	}

	count, sum = histogramSnapshot(t, SearchResultsReturned.WithLabelValues(entity))
	if count != 2 || sum != 6 {
		t.Errorf("Expected 2 returned observations summing to 6, got %d/%v", count, sum)
	}

	count, sum = histogramSnapshot(t, SearchPipelineDuration.WithLabelValues(entity))
	if count != 2 || sum < 0.049 || sum > 0.051 {
		t.Errorf("Expected 2 duration observations summing to 0.05s, got %d/%v", count, sum)
	}
}
