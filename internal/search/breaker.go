// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package search

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/songbird/internal/logging"
	"github.com/tomtom215/songbird/internal/metrics"
	"github.com/tomtom215/songbird/internal/models"
)

// BreakerConfig holds circuit breaker settings for catalog retrieval.
type BreakerConfig struct {
	MaxRequests      uint32        // Allowed in half-open state
	Interval         time.Duration // Reset interval for counts
	Timeout          time.Duration // Time to stay open
	FailureThreshold uint32        // Consecutive failures before opening
}

// DefaultBreakerConfig returns production defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
	}
}

// breakerProvider short-circuits retrieval for one collection while its
// storage keeps failing, so a dead store degrades that collection
// immediately instead of on every request.
type breakerProvider struct {
	name string
	next Provider
	cb   *gobreaker.CircuitBreaker[[]Candidate]
}

// WithBreaker wraps p in a circuit breaker named after kind.
func WithBreaker(kind models.EntityKind, p Provider, cfg BreakerConfig) Provider {
	name := "catalog_" + string(kind)
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerTransition(name, from.String(), to.String(), int(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Catalog circuit breaker state changed")
		},
		// A caller abandoning the search says nothing about store health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))

	return &breakerProvider{
		name: name,
		next: p,
		cb:   gobreaker.NewCircuitBreaker[[]Candidate](settings),
	}
}

// Fetch implements Provider.
func (b *breakerProvider) Fetch(ctx context.Context, query string, limit, offset int) ([]Candidate, error) {
	out, err := b.cb.Execute(func() ([]Candidate, error) {
		return b.next.Fetch(ctx, query, limit, offset)
	})
	rejected := errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
	metrics.RecordBreakerResult(b.name, err, rejected)
	return out, err
}
