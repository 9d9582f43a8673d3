// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package search

import (
	"github.com/tomtom215/songbird/internal/models"
)

// Candidate is a catalog record retrieved by substring match and not yet
// scored. SearchText returns the field the query is scored against.
type Candidate interface {
	Kind() models.EntityKind
	SearchText() string
}

// Scored pairs a candidate with its similarity score in [0,100].
type Scored struct {
	Candidate Candidate
	Score     int
}

// asCandidates widens a typed row slice to the Candidate interface,
// preserving storage order.
func asCandidates[T Candidate](rows []T) []Candidate {
	out := make([]Candidate, len(rows))
	for i := range rows {
		out[i] = rows[i]
	}
	return out
}
