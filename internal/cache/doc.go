// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

// Package cache provides the in-memory caches used by Songbird.
//
// Cache holds composed search responses keyed by the normalized request so
// a repeated query skips retrieval and ranking. It is an expirable LRU: both
// the number of entries and their age are bounded, and the whole cache is
// purged whenever a catalog sync event changes the store.
//
//	results := cache.New[*models.SearchResponse]("search", 1000, 30*time.Second)
//	key := cache.GenerateKey("search", req)
//	if resp, ok := results.Get(key); ok {
//	    return resp
//	}
//
// Deduper recognizes redelivered catalog events by event ID.
package cache
