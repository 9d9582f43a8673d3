// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/songbird/internal/cache"
	"github.com/tomtom215/songbird/internal/logging"
	"github.com/tomtom215/songbird/internal/metrics"
	"github.com/tomtom215/songbird/internal/models"
)

// CatalogStore is the write side of the catalog read model.
// *database.DB implements it.
type CatalogStore interface {
	UpsertSong(ctx context.Context, s *models.SongCandidate, version time.Time) error
	UpsertAlbum(ctx context.Context, a *models.AlbumCandidate, version time.Time) error
	UpsertArtist(ctx context.Context, a *models.ArtistCandidate, version time.Time) error
	DeleteSong(ctx context.Context, id int64, version time.Time) error
	DeleteAlbum(ctx context.Context, id int64, version time.Time) error
	DeleteArtist(ctx context.Context, id int64, version time.Time) error
}

// Invalidator drops cached search results after the catalog changes.
// *cache.Cache implements it.
type Invalidator interface {
	Purge()
}

// Event outcomes recorded in metrics.
const (
	OutcomeApplied   = "applied"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
)

const breakerName = "catalog_writes"

// CatalogHandler applies catalog events to the store.
//
// Malformed events are acknowledged and dropped: redelivery cannot fix
// them. Store failures are returned so the message is retried and then
// nacked for redelivery.
type CatalogHandler struct {
	store       CatalogStore
	invalidator Invalidator
	dedup       *cache.Deduper
	breaker     *gobreaker.CircuitBreaker[struct{}]
	serializer  *Serializer
}

// NewCatalogHandler creates a handler. invalidator may be nil.
func NewCatalogHandler(store CatalogStore, invalidator Invalidator, cfg HandlerConfig) *CatalogHandler {
	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerTransition(name, from.String(), to.String(), int(to))
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Catalog write circuit breaker state changed")
		},
	}
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(float64(gobreaker.StateClosed))

	return &CatalogHandler{
		store:       store,
		invalidator: invalidator,
		dedup:       cache.NewDeduper(cfg.DedupCapacity, cfg.DedupTTL),
		breaker:     gobreaker.NewCircuitBreaker[struct{}](settings),
		serializer:  NewSerializer(),
	}
}

// Handle is a Watermill consumer handler.
func (h *CatalogHandler) Handle(msg *message.Message) error {
	event, err := h.serializer.Unmarshal(msg.Payload)
	if err != nil {
		h.drop(msg, nil, err)
		return nil
	}
	if err := h.Apply(msg.Context(), event); err != nil {
		if IsValidationError(err) {
			h.drop(msg, event, err)
			return nil
		}
		return err
	}
	return nil
}

// Apply validates event and writes it to the store. It returns a
// *ValidationError for malformed events. Redelivered event ids are
// skipped.
func (h *CatalogHandler) Apply(ctx context.Context, event *CatalogEvent) error {
	start := time.Now()
	entity, eventType := event.metricLabels()

	if err := event.Validate(); err != nil {
		metrics.RecordCatalogEvent(entity, eventType, OutcomeInvalid, time.Since(start))
		return err
	}

	if h.dedup.IsDuplicate(event.EventID) {
		metrics.RecordCatalogEvent(entity, eventType, OutcomeDuplicate, time.Since(start))
		logging.CtxDebug(ctx).
			Str("event_id", event.EventID).
			Msg("Skipping redelivered catalog event")
		return nil
	}

	_, err := h.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, h.write(ctx, event)
	})
	rejected := errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
	metrics.RecordBreakerResult(breakerName, err, rejected)

	if err != nil {
		// A later delivery must be applied again.
		h.dedup.Forget(event.EventID)
		metrics.RecordCatalogEvent(entity, eventType, OutcomeFailed, time.Since(start))
		return fmt.Errorf("apply %s %s %d: %w", eventType, entity, event.EntityID, err)
	}

	if h.invalidator != nil {
		h.invalidator.Purge()
	}
	metrics.RecordCatalogEvent(entity, eventType, OutcomeApplied, time.Since(start))

	logging.CtxDebug(ctx).
		Str("event_id", event.EventID).
		Str("entity", entity).
		Str("event_type", eventType).
		Int64("entity_id", event.EntityID).
		Msg("Applied catalog event")
	return nil
}

func (h *CatalogHandler) write(ctx context.Context, e *CatalogEvent) error {
	version := e.OccurredAt
	if e.EventType == EventDelete {
		switch e.Entity {
		case models.EntitySong:
			return h.store.DeleteSong(ctx, e.EntityID, version)
		case models.EntityAlbum:
			return h.store.DeleteAlbum(ctx, e.EntityID, version)
		case models.EntityArtist:
			return h.store.DeleteArtist(ctx, e.EntityID, version)
		}
	}

	switch e.Entity {
	case models.EntitySong:
		return h.store.UpsertSong(ctx, e.Song, version)
	case models.EntityAlbum:
		return h.store.UpsertAlbum(ctx, e.Album, version)
	case models.EntityArtist:
		return h.store.UpsertArtist(ctx, e.Artist, version)
	}
	return &ValidationError{Field: "entity", Message: "unsupported"}
}

// drop logs a poison message. event is nil when the payload did not decode.
func (h *CatalogHandler) drop(msg *message.Message, event *CatalogEvent, err error) {
	if event == nil {
		entity, eventType := event.metricLabels()
		metrics.RecordCatalogEvent(entity, eventType, OutcomeInvalid, 0)
	}
	logging.Warn().
		Err(err).
		Str("message_uuid", msg.UUID).
		Msg("Dropping invalid catalog event")
}
