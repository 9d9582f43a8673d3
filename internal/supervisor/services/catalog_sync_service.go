// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package services

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCatalogSyncStopped is returned when the consumer exits while its
// service is still supposed to run.
var ErrCatalogSyncStopped = errors.New("catalog sync stopped unexpectedly")

// CatalogSyncRunner is the consumer lifecycle. *eventprocessor.Consumer
// satisfies it, as does the composed runner in cmd/server that also
// provisions the stream.
type CatalogSyncRunner interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context)
	Done() <-chan struct{}
}

// CatalogSyncService runs the catalog consumer under suture.
//
//  1. Start subscribes and waits for the router to run
//  2. Serve blocks until ctx is canceled or the router exits
//  3. Shutdown drains in-flight events with shutdownTimeout
//
// A router exit without cancellation returns ErrCatalogSyncStopped, so
// suture restarts the consumer with backoff.
type CatalogSyncService struct {
	runner          CatalogSyncRunner
	shutdownTimeout time.Duration
	name            string
}

// NewCatalogSyncService wraps runner. A non-positive shutdownTimeout
// defaults to 10s.
func NewCatalogSyncService(runner CatalogSyncRunner, shutdownTimeout time.Duration) *CatalogSyncService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &CatalogSyncService{
		runner:          runner,
		shutdownTimeout: shutdownTimeout,
		name:            "catalog-sync",
	}
}

// Serve implements suture.Service.
func (s *CatalogSyncService) Serve(ctx context.Context) error {
	if err := s.runner.Start(ctx); err != nil {
		return fmt.Errorf("catalog sync start failed: %w", err)
	}

	var exited bool
	select {
	case <-ctx.Done():
	case <-s.runner.Done():
		exited = true
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.runner.Shutdown(shutdownCtx)

	if exited && ctx.Err() == nil {
		return ErrCatalogSyncStopped
	}
	return ctx.Err()
}

// String identifies the service in supervisor logs.
func (s *CatalogSyncService) String() string {
	return s.name
}
