// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tomtom215/songbird/internal/metrics"
)

// Cache is a size-bounded LRU cache whose entries expire after a fixed
// TTL. A nil *Cache is a valid, always-missing cache, which is how a
// disabled cache is represented.
type Cache[V any] struct {
	name   string
	lru    *expirable.LRU[string, V]
	hits   atomic.Int64
	misses atomic.Int64
	evicts atomic.Int64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

// New creates a cache holding at most size entries for ttl each. name
// labels the cache in metrics.
func New[V any](name string, size int, ttl time.Duration) *Cache[V] {
	if size <= 0 {
		size = 1
	}
	c := &Cache[V]{name: name}
	c.lru = expirable.NewLRU[string, V](size, func(string, V) {
		c.evicts.Add(1)
		metrics.CacheEvictions.WithLabelValues(name).Inc()
	}, ttl)
	return c
}

// Get returns the cached value for key.
func (c *Cache[V]) Get(key string) (V, bool) {
	if c == nil {
		var zero V
		return zero, false
	}
	v, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	metrics.RecordCacheLookup(c.name, ok)
	return v, ok
}

// Add stores value under key, evicting the least recently used entry when
// the cache is full.
func (c *Cache[V]) Add(key string, value V) {
	if c == nil {
		return
	}
	c.lru.Add(key, value)
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(c.lru.Len()))
}

// Purge drops every entry. Called when the catalog changes.
func (c *Cache[V]) Purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
	metrics.CacheSize.WithLabelValues(c.name).Set(0)
}

// Len returns the number of live entries.
func (c *Cache[V]) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// Stats returns the current counters.
func (c *Cache[V]) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evicts.Load(),
		Size:      c.lru.Len(),
	}
}

// HitRate returns the hit rate as a percentage.
func (c *Cache[V]) HitRate() float64 {
	s := c.Stats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// GenerateKey creates a cache key from a prefix and the JSON encoding of
// params.
func GenerateKey(prefix string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", prefix, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", prefix, hash[:16])
}
