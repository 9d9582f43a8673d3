// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package main

import (
	"fmt"

	"github.com/tomtom215/songbird/internal/cache"
	"github.com/tomtom215/songbird/internal/config"
	"github.com/tomtom215/songbird/internal/models"
	"github.com/tomtom215/songbird/internal/search"
)

// initResultCache returns the search result cache, or nil when caching is
// disabled.
func initResultCache(cfg *config.CacheConfig) *cache.Cache[*models.SearchResponse] {
	if !cfg.Enabled {
		return nil
	}
	return cache.New[*models.SearchResponse]("search_results", cfg.Size, cfg.TTL)
}

// initSearch wires catalog providers, the ranking strategy and the
// orchestrator.
func initSearch(cfg *config.SearchConfig, store search.CatalogStore) (*search.Service, error) {
	strategy, err := search.NewStrategy(cfg.Strategy)
	if err != nil {
		return nil, fmt.Errorf("search strategy: %w", err)
	}

	providers := search.NewCatalogProviders(store)
	if cfg.Breaker.Enabled {
		providers = withBreakers(providers, search.BreakerConfig{
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
			FailureThreshold: cfg.Breaker.FailureThreshold,
		})
	}

	return search.NewService(providers, strategy, searchConfigFrom(cfg))
}

func withBreakers(p search.Providers, bc search.BreakerConfig) search.Providers {
	return search.Providers{
		Songs:   search.WithBreaker(models.EntitySong, p.Songs, bc),
		Albums:  search.WithBreaker(models.EntityAlbum, p.Albums, bc),
		Artists: search.WithBreaker(models.EntityArtist, p.Artists, bc),
	}
}

func searchConfigFrom(cfg *config.SearchConfig) search.Config {
	return search.Config{
		Threshold:       cfg.Threshold,
		DefaultLimit:    cfg.DefaultLimit,
		MaxLimit:        cfg.MaxLimit,
		FetchMultiplier: cfg.FetchMultiplier,
		MaxQueryLength:  cfg.MaxQueryLength,
		Timeout:         cfg.Timeout,
	}
}
