// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package eventprocessor

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/songbird/internal/models"
)

// failingPublisher fails every publish and counts attempts.
type failingPublisher struct {
	calls atomic.Int32
}

func (f *failingPublisher) Publish(string, ...*message.Message) error {
	f.calls.Add(1)
	return errors.New("nats: no responders available")
}

func (f *failingPublisher) Close() error { return nil }

func TestNewPublishBreaker_Disabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultPublisherConfig("nats://127.0.0.1:4222")
	cfg.BreakerFailureThreshold = 0
	if cb := newPublishBreaker(&cfg); cb != nil {
		t.Error("Expected nil breaker when threshold is zero")
	}
}

func TestPublisher_BreakerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	cfg := DefaultPublisherConfig("nats://127.0.0.1:4222")
	cfg.BreakerFailureThreshold = 3
	cfg.BreakerTimeout = time.Minute

	backend := &failingPublisher{}
	pub := &Publisher{
		publisher:      backend,
		circuitBreaker: newPublishBreaker(&cfg),
		serializer:     NewSerializer(),
	}

	event := NewSongUpsert(&models.SongCandidate{ID: 5, Title: "Moonwalk"}, occurred)
	for i := 0; i < 3; i++ {
		err := pub.PublishEvent(t.Context(), event)
		if err == nil || errors.Is(err, gobreaker.ErrOpenState) {
			t.Fatalf("Expected backend error on attempt %d, got %v", i+1, err)
		}
	}

	if err := pub.PublishEvent(t.Context(), event); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Expected ErrOpenState once the breaker trips, got %v", err)
	}
	if n := backend.calls.Load(); n != 3 {
		t.Errorf("Expected open breaker to skip the backend (3 calls), got %d", n)
	}
}

func TestPublisher_ClosedRejectsPublish(t *testing.T) {
	t.Parallel()

	pub := &Publisher{publisher: &failingPublisher{}, serializer: NewSerializer()}
	if err := pub.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Errorf("Expected second Close to be a no-op, got %v", err)
	}

	event := NewDeleteEvent(models.EntityAlbum, 3, occurred)
	if err := pub.PublishEvent(t.Context(), event); !errors.Is(err, ErrPublisherClosed) {
		t.Errorf("Expected ErrPublisherClosed, got %v", err)
	}
}
