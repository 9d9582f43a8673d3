// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/songbird/internal/config"
	"github.com/tomtom215/songbird/internal/models"
	"github.com/tomtom215/songbird/internal/search"
)

type stubCatalog struct {
	songs []models.SongCandidate
	err   error
}

func (s *stubCatalog) SearchSongs(context.Context, string, int, int) ([]models.SongCandidate, error) {
	return s.songs, s.err
}

func (s *stubCatalog) SearchAlbums(context.Context, string, int, int) ([]models.AlbumCandidate, error) {
	return nil, s.err
}

func (s *stubCatalog) SearchArtists(context.Context, string, int, int) ([]models.ArtistCandidate, error) {
	return nil, s.err
}

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{
		Strategy:        "partial_ratio",
		Threshold:       70,
		DefaultLimit:    5,
		MaxLimit:        50,
		FetchMultiplier: 3,
		MaxQueryLength:  200,
		Timeout:         time.Second,
	}
}

func TestInitResultCache(t *testing.T) {
	t.Parallel()

	if c := initResultCache(&config.CacheConfig{Enabled: false, Size: 10, TTL: time.Minute}); c != nil {
		t.Error("Expected nil cache when disabled")
	}
	if c := initResultCache(&config.CacheConfig{Enabled: true, Size: 10, TTL: time.Minute}); c == nil {
		t.Error("Expected cache when enabled")
	}
}

func TestInitSearch_UnknownStrategy(t *testing.T) {
	t.Parallel()

	cfg := testSearchConfig()
	cfg.Strategy = "soundex"
	if _, err := initSearch(&cfg, &stubCatalog{}); err == nil {
		t.Error("Expected error for unknown strategy")
	}
}

func TestInitSearch_Strategy(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"partial_ratio", "levenshtein"} {
		cfg := testSearchConfig()
		cfg.Strategy = name
		svc, err := initSearch(&cfg, &stubCatalog{})
		if err != nil {
			t.Fatalf("initSearch(%q) failed: %v", name, err)
		}
		if got := svc.Strategy().Name(); got != name {
			t.Errorf("Expected strategy %q, got %q", name, got)
		}
	}
}

func TestInitSearch_ConfigMapping(t *testing.T) {
	t.Parallel()

	cfg := testSearchConfig()
	cfg.Threshold = 55
	cfg.DefaultLimit = 7
	svc, err := initSearch(&cfg, &stubCatalog{})
	if err != nil {
		t.Fatalf("initSearch failed: %v", err)
	}
	got := svc.Config()
	if got.Threshold != 55 || got.DefaultLimit != 7 || got.MaxLimit != 50 {
		t.Errorf("Expected mapped config, got %+v", got)
	}
}

func TestInitSearch_BreakerDegradesCollections(t *testing.T) {
	t.Parallel()

	cfg := testSearchConfig()
	cfg.Breaker = config.BreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 1,
	}
	store := &stubCatalog{err: errors.New("catalog offline")}
	svc, err := initSearch(&cfg, store)
	if err != nil {
		t.Fatalf("initSearch failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		resp, err := svc.Search(context.Background(), search.Request{Query: "moon"})
		if err != nil {
			t.Fatalf("Expected degraded response, got error %v", err)
		}
		if len(resp.Degraded) != 3 {
			t.Errorf("Expected 3 degraded collections, got %v", resp.Degraded)
		}
	}
}
