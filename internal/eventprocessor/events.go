// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package eventprocessor

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/songbird/internal/models"
	"github.com/tomtom215/songbird/internal/validation"
)

// SchemaVersion is the current catalog event schema version.
const SchemaVersion = 1

// SubjectPrefix is the first token of every catalog event subject.
const SubjectPrefix = "catalog"

// AllSubjects matches every catalog event subject.
const AllSubjects = SubjectPrefix + ".>"

// EventType is the kind of change a catalog event carries.
type EventType string

const (
	EventUpsert EventType = "upsert"
	EventDelete EventType = "delete"
)

// CatalogEvent is a change to one catalog record, published by the
// content and artist services. Upserts carry the full record in the
// payload field matching Entity; deletes carry only EntityID.
//
// OccurredAt is the upstream change time. It becomes the row version in
// the catalog store, so events may arrive in any order.
type CatalogEvent struct {
	SchemaVersion int               `json:"schema_version,omitempty"`
	EventID       string            `json:"event_id"`
	EventType     EventType         `json:"event_type"`
	Entity        models.EntityKind `json:"entity"`
	EntityID      int64             `json:"entity_id"`
	OccurredAt    time.Time         `json:"occurred_at"`

	Song   *models.SongCandidate   `json:"song,omitempty"`
	Album  *models.AlbumCandidate  `json:"album,omitempty"`
	Artist *models.ArtistCandidate `json:"artist,omitempty"`
}

func newEvent(eventType EventType, entity models.EntityKind, id int64, at time.Time) *CatalogEvent {
	return &CatalogEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		EventType:     eventType,
		Entity:        entity,
		EntityID:      id,
		OccurredAt:    at.UTC(),
	}
}

// NewSongUpsert creates an upsert event for s.
func NewSongUpsert(s *models.SongCandidate, at time.Time) *CatalogEvent {
	e := newEvent(EventUpsert, models.EntitySong, s.ID, at)
	e.Song = s
	return e
}

// NewAlbumUpsert creates an upsert event for a.
func NewAlbumUpsert(a *models.AlbumCandidate, at time.Time) *CatalogEvent {
	e := newEvent(EventUpsert, models.EntityAlbum, a.ID, at)
	e.Album = a
	return e
}

// NewArtistUpsert creates an upsert event for a.
func NewArtistUpsert(a *models.ArtistCandidate, at time.Time) *CatalogEvent {
	e := newEvent(EventUpsert, models.EntityArtist, a.ID, at)
	e.Artist = a
	return e
}

// NewDeleteEvent creates a delete event for one record.
func NewDeleteEvent(entity models.EntityKind, id int64, at time.Time) *CatalogEvent {
	return newEvent(EventDelete, entity, id, at)
}

// Validate checks the envelope, then the payload of upserts.
func (e *CatalogEvent) Validate() error {
	if e.EventID == "" {
		return &ValidationError{Field: "event_id", Message: "required"}
	}
	if e.EventType != EventUpsert && e.EventType != EventDelete {
		return &ValidationError{Field: "event_type", Message: "must be upsert or delete"}
	}
	if !e.Entity.Valid() {
		return &ValidationError{Field: "entity", Message: "must be song, album or artist"}
	}
	if e.EntityID <= 0 {
		return &ValidationError{Field: "entity_id", Message: "must be greater than 0"}
	}
	if e.OccurredAt.IsZero() {
		return &ValidationError{Field: "occurred_at", Message: "required"}
	}
	if e.EventType == EventDelete {
		return nil
	}

	var (
		payload interface{}
		id      int64
	)
	switch e.Entity {
	case models.EntitySong:
		if e.Song != nil {
			payload, id = e.Song, e.Song.ID
		}
	case models.EntityAlbum:
		if e.Album != nil {
			payload, id = e.Album, e.Album.ID
		}
	case models.EntityArtist:
		if e.Artist != nil {
			payload, id = e.Artist, e.Artist.ID
		}
	}

	field := string(e.Entity)
	if payload == nil {
		return &ValidationError{Field: field, Message: "payload required for upsert"}
	}
	if id != e.EntityID {
		return &ValidationError{Field: field + ".id", Message: "does not match entity_id " + strconv.FormatInt(e.EntityID, 10)}
	}
	if verr := validation.ValidateStruct(payload); verr != nil {
		return &ValidationError{Field: field, Message: verr.Error()}
	}
	return nil
}

// Topic returns the NATS subject for this event.
// Format: catalog.<entity>.<event_type>, e.g. catalog.song.upsert
func (e *CatalogEvent) Topic() string {
	return SubjectPrefix + "." + string(e.Entity) + "." + string(e.EventType)
}

// metricLabels returns entity and event type labels, falling back to
// "unknown" for values that did not validate.
func (e *CatalogEvent) metricLabels() (entity, eventType string) {
	entity, eventType = "unknown", "unknown"
	if e == nil {
		return entity, eventType
	}
	if e.Entity.Valid() {
		entity = string(e.Entity)
	}
	if e.EventType == EventUpsert || e.EventType == EventDelete {
		eventType = string(e.EventType)
	}
	return entity, eventType
}
