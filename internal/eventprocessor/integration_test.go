// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package eventprocessor

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/songbird/internal/logging"
	"github.com/tomtom215/songbird/internal/models"
)

// TestIntegration_PublishConsume runs the full sync path:
// Publisher -> embedded JetStream -> Consumer -> CatalogHandler -> store.
func TestIntegration_PublishConsume(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	srv, err := NewEmbeddedServer(&ServerConfig{
		Host:              "127.0.0.1",
		Port:              -1, // random
		StoreDir:          t.TempDir(),
		JetStreamMaxMem:   64 << 20,
		JetStreamMaxStore: 256 << 20,
	})
	if err != nil {
		t.Fatalf("NewEmbeddedServer failed: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	if !srv.IsRunning() {
		t.Fatal("Expected embedded server to be running")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	streamCfg := DefaultStreamConfig("CATALOG_TEST")
	if err := EnsureStreamAt(ctx, srv.ClientURL(), &streamCfg); err != nil {
		t.Fatalf("EnsureStreamAt failed: %v", err)
	}
	// Second call updates in place.
	if err := EnsureStreamAt(ctx, srv.ClientURL(), &streamCfg); err != nil {
		t.Fatalf("EnsureStreamAt (update) failed: %v", err)
	}

	wmLogger := logging.NewWatermillAdapter("catalog_test")

	pub, err := NewPublisher(DefaultPublisherConfig(srv.ClientURL()), wmLogger)
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	t.Cleanup(func() { _ = pub.Close() })

	store := newFakeStore()
	inv := &countingInvalidator{}
	handler := NewCatalogHandler(store, inv, DefaultHandlerConfig())

	subCfg := SubscriberConfig{
		URL:              srv.ClientURL(),
		StreamName:       streamCfg.Name,
		DurableName:      "search-test",
		QueueGroup:       "search-test",
		SubscribersCount: 1,
		AckWaitTimeout:   5 * time.Second,
		MaxDeliver:       3,
		MaxAckPending:    100,
		CloseTimeout:     5 * time.Second,
		MaxReconnects:    -1,
		ReconnectWait:    100 * time.Millisecond,
	}
	consumer := NewConsumer(handler, func() (message.Subscriber, error) {
		return NewSubscriber(&subCfg, wmLogger)
	}, DefaultRouterConfig())

	if err := consumer.Start(ctx); err != nil {
		t.Fatalf("consumer.Start failed: %v", err)
	}
	t.Cleanup(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		consumer.Shutdown(shutdownCtx)
	})
	if !consumer.IsRunning() {
		t.Fatal("Expected consumer to be running")
	}

	song := NewSongUpsert(&models.SongCandidate{ID: 77, Title: "Harvest Moon", Duration: 301}, time.Now())
	if err := pub.PublishEvent(ctx, song); err != nil {
		t.Fatalf("PublishEvent failed: %v", err)
	}
	// Republishing the same event id is dropped by JetStream or the deduper.
	if err := pub.PublishEvent(ctx, song); err != nil {
		t.Fatalf("PublishEvent (duplicate) failed: %v", err)
	}
	if err := pub.PublishEvent(ctx, NewDeleteEvent(models.EntityAlbum, 12, time.Now())); err != nil {
		t.Fatalf("PublishEvent (delete) failed: %v", err)
	}

	deadline := time.Now().Add(15 * time.Second)
	for time.Now().Before(deadline) && len(store.Calls()) < 2 {
		time.Sleep(50 * time.Millisecond)
	}

	calls := store.Calls()
	if len(calls) != 2 {
		t.Fatalf("Expected 2 applied events, got %v", calls)
	}
	if calls[0] != "upsert song" || calls[1] != "delete album" {
		t.Errorf("Expected upsert song then delete album, got %v", calls)
	}
	if inv.Count() != 2 {
		t.Errorf("Expected 2 cache purges, got %d", inv.Count())
	}

	if err := pub.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := pub.PublishEvent(ctx, song); err != ErrPublisherClosed {
		t.Errorf("Expected ErrPublisherClosed, got %v", err)
	}
}
