// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockRunner mimics the consumer lifecycle. crash closes the done channel
// as if the router had exited on its own.
type mockRunner struct {
	startErr error

	mu        sync.Mutex
	done      chan struct{}
	starts    atomic.Int32
	shutdowns atomic.Int32
}

func (m *mockRunner) Start(context.Context) error {
	m.starts.Add(1)
	if m.startErr != nil {
		return m.startErr
	}
	m.mu.Lock()
	m.done = make(chan struct{})
	m.mu.Unlock()
	return nil
}

func (m *mockRunner) Shutdown(context.Context) {
	m.shutdowns.Add(1)
}

func (m *mockRunner) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

func (m *mockRunner) crash() {
	m.mu.Lock()
	defer m.mu.Unlock()
	close(m.done)
}

var _ suture.Service = (*CatalogSyncService)(nil)

func TestCatalogSyncService_StopsOnCancel(t *testing.T) {
	runner := &mockRunner{}
	svc := NewCatalogSyncService(runner, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if runner.starts.Load() != 1 || runner.shutdowns.Load() != 1 {
		t.Errorf("Expected 1 start and 1 shutdown, got %d/%d", runner.starts.Load(), runner.shutdowns.Load())
	}
}

func TestCatalogSyncService_StartFailure(t *testing.T) {
	startErr := errors.New("nats: no servers available for connection")
	runner := &mockRunner{startErr: startErr}

	err := NewCatalogSyncService(runner, time.Second).Serve(context.Background())
	if !errors.Is(err, startErr) {
		t.Errorf("Expected wrapped start error, got %v", err)
	}
	if runner.shutdowns.Load() != 0 {
		t.Error("Expected no Shutdown after failed Start")
	}
}

func TestCatalogSyncService_RouterExit(t *testing.T) {
	runner := &mockRunner{}
	svc := NewCatalogSyncService(runner, time.Second)

	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(context.Background()) }()

	deadline := time.Now().Add(time.Second)
	for runner.Done() == nil && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	runner.crash()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrCatalogSyncStopped) {
			t.Errorf("Expected ErrCatalogSyncStopped, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after router exit")
	}
	if runner.shutdowns.Load() != 1 {
		t.Errorf("Expected cleanup Shutdown, got %d", runner.shutdowns.Load())
	}
}

func TestCatalogSyncService_String(t *testing.T) {
	if got := NewCatalogSyncService(&mockRunner{}, 0).String(); got != "catalog-sync" {
		t.Errorf("Expected catalog-sync, got %q", got)
	}
}
