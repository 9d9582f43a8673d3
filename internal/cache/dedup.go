// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Deduper remembers recently seen keys so redelivered messages can be
// recognized. Memory is bounded by capacity; keys older than ttl are
// forgotten.
type Deduper struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, struct{}]
}

// NewDeduper creates a Deduper.
func NewDeduper(capacity int, ttl time.Duration) *Deduper {
	if capacity <= 0 {
		capacity = 1
	}
	return &Deduper{lru: expirable.NewLRU[string, struct{}](capacity, nil, ttl)}
}

// IsDuplicate reports whether key was seen within the TTL. If not, the key
// is recorded.
func (d *Deduper) IsDuplicate(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lru.Contains(key) {
		return true
	}
	d.lru.Add(key, struct{}{})
	return false
}

// Forget removes key so a later delivery is processed again. Used when
// handling a message failed after it was recorded.
func (d *Deduper) Forget(key string) {
	d.lru.Remove(key)
}

// Len returns the number of remembered keys.
func (d *Deduper) Len() int {
	return d.lru.Len()
}
