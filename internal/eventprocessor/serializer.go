// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package eventprocessor

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Serializer handles catalog event encoding for NATS messages.
type Serializer struct{}

// NewSerializer creates a new serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Marshal validates event and converts it to JSON.
func (s *Serializer) Marshal(event *CatalogEvent) ([]byte, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// Unmarshal converts JSON to an event. The result is not validated.
// A payload that is not JSON is reported as a ValidationError since no
// redelivery can fix it.
func (s *Serializer) Unmarshal(data []byte) (*CatalogEvent, error) {
	var event CatalogEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, &ValidationError{Field: "payload", Message: err.Error()}
	}
	return &event, nil
}
