// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/songbird/internal/logging"
	"github.com/tomtom215/songbird/internal/metrics"
	"github.com/tomtom215/songbird/internal/models"
)

// Config controls ranking and pagination.
type Config struct {
	// Threshold is the minimum score a candidate needs to be returned.
	// Default: 70
	Threshold int

	// DefaultLimit applies when a request leaves Limit at zero.
	// Default: 5
	DefaultLimit int

	// MaxLimit bounds the per-collection page size.
	// Default: 50
	MaxLimit int

	// FetchMultiplier scales the page size into the provider fetch size so
	// fuzzy filtering does not leave pages under-filled. Minimum 3.
	// Default: 3
	FetchMultiplier int

	// MaxQueryLength bounds the query in characters.
	// Default: 200
	MaxQueryLength int

	// Timeout bounds retrieval for all three collections. A collection whose
	// retrieval exceeds it is degraded like any other retrieval failure.
	// Zero disables the bound.
	// Default: 5s
	Timeout time.Duration
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Threshold:       70,
		DefaultLimit:    5,
		MaxLimit:        50,
		FetchMultiplier: 3,
		MaxQueryLength:  200,
		Timeout:         5 * time.Second,
	}
}

// Request is one search call. Zero Limit selects the default limit and zero
// pages select page 1.
type Request struct {
	Query      string
	Limit      int
	SongPage   int
	AlbumPage  int
	ArtistPage int
}

// Service runs the song, album and artist pipelines for a query and
// composes their pages into one response.
type Service struct {
	providers Providers
	strategy  Strategy
	cfg       Config
}

// NewService creates a search service. A nil strategy selects partial
// ratio ranking.
func NewService(providers Providers, strategy Strategy, cfg Config) (*Service, error) {
	for _, kind := range models.EntityKinds {
		if providers.For(kind) == nil {
			return nil, fmt.Errorf("search: no provider for %s", kind)
		}
	}
	if strategy == nil {
		strategy = PartialRatioStrategy()
	}

	defaults := DefaultConfig()
	if cfg.Threshold < 0 || cfg.Threshold > 100 {
		return nil, fmt.Errorf("search: threshold %d outside [0,100]", cfg.Threshold)
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = defaults.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = defaults.MaxLimit
	}
	if cfg.DefaultLimit > cfg.MaxLimit {
		return nil, fmt.Errorf("search: default limit %d exceeds max limit %d", cfg.DefaultLimit, cfg.MaxLimit)
	}
	if cfg.FetchMultiplier < defaults.FetchMultiplier {
		cfg.FetchMultiplier = defaults.FetchMultiplier
	}
	if cfg.MaxQueryLength <= 0 {
		cfg.MaxQueryLength = defaults.MaxQueryLength
	}

	return &Service{providers: providers, strategy: strategy, cfg: cfg}, nil
}

// Strategy returns the ranking strategy in use.
func (s *Service) Strategy() Strategy {
	return s.strategy
}

// Config returns the effective configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// Normalize applies defaults to req and validates it. Search calls it
// itself; callers use it to derive cache keys from the effective request.
func (s *Service) Normalize(req Request) (Request, error) {
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return req, fmt.Errorf("%w: query must not be empty", ErrInvalidQuery)
	}
	if !utf8.ValidString(req.Query) {
		return req, fmt.Errorf("%w: query is not valid UTF-8", ErrInvalidQuery)
	}
	if n := utf8.RuneCountInString(req.Query); n > s.cfg.MaxQueryLength {
		return req, fmt.Errorf("%w: query is %d characters, maximum is %d", ErrInvalidQuery, n, s.cfg.MaxQueryLength)
	}

	if req.Limit == 0 {
		req.Limit = s.cfg.DefaultLimit
	}
	if req.Limit < 1 || req.Limit > s.cfg.MaxLimit {
		return req, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidLimit, s.cfg.MaxLimit)
	}

	for _, page := range []*int{&req.SongPage, &req.AlbumPage, &req.ArtistPage} {
		if *page == 0 {
			*page = 1
		}
		if *page < 1 {
			return req, fmt.Errorf("%w: page must be at least 1", ErrInvalidPage)
		}
		// Keeps the store offset (page-1)*limit inside int32.
		if *page-1 > math.MaxInt32/req.Limit {
			return req, fmt.Errorf("%w: page %d is out of range", ErrInvalidPage, *page)
		}
	}
	return req, nil
}

// Search runs the three collection pipelines concurrently and joins them.
//
// A retrieval failure in one collection yields {page: 1, results: []} for
// that collection and is logged and counted; the other collections are
// unaffected. Search returns an error only for invalid requests or when
// ctx is canceled.
func (s *Service) Search(ctx context.Context, req Request) (*models.SearchResponse, error) {
	req, err := s.Normalize(req)
	if err != nil {
		metrics.RecordSearchOutcome("invalid")
		return nil, err
	}

	runCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	var (
		resp                         models.SearchResponse
		songErr, albumErr, artistErr error
	)
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		resp.Songs, songErr = runPipeline(gctx, s, models.EntitySong, req.Query, req.Limit, req.SongPage, SerializeSong)
		return nil
	})
	g.Go(func() error {
		resp.Albums, albumErr = runPipeline(gctx, s, models.EntityAlbum, req.Query, req.Limit, req.AlbumPage, SerializeAlbum)
		return nil
	})
	g.Go(func() error {
		resp.Artists, artistErr = runPipeline(gctx, s, models.EntityArtist, req.Query, req.Limit, req.ArtistPage, SerializeArtist)
		return nil
	})
	_ = g.Wait() // pipelines report failures through their own error slots

	if err := ctx.Err(); err != nil {
		metrics.RecordSearchOutcome("canceled")
		return nil, fmt.Errorf("search canceled: %w", err)
	}

	for i, err := range []error{songErr, albumErr, artistErr} {
		if err != nil {
			resp.Degraded = append(resp.Degraded, models.EntityKinds[i])
		}
	}
	if len(resp.Degraded) > 0 {
		metrics.RecordSearchOutcome("degraded")
	} else {
		metrics.RecordSearchOutcome("ok")
	}
	return &resp, nil
}

// runPipeline fetches, ranks and serializes one collection. On retrieval
// failure it returns the degraded page together with the RetrievalError.
func runPipeline[T any](
	ctx context.Context,
	s *Service,
	kind models.EntityKind,
	query string,
	limit, page int,
	serialize func(Candidate) (T, error),
) (models.EntityPage[T], error) {
	start := time.Now()
	offset := (page - 1) * limit

	candidates, err := s.providers.For(kind).Fetch(ctx, query, limit*s.cfg.FetchMultiplier, offset)
	if err != nil {
		rerr := asRetrievalError(kind, err)
		metrics.RecordRetrievalError(string(kind))
		if !errors.Is(err, context.Canceled) {
			logging.CtxWarn(ctx).
				Err(rerr).
				Str("entity", string(kind)).
				Int("offset", offset).
				Msg("Candidate retrieval failed, returning empty page")
		}
		return models.EntityPage[T]{Page: 1, Results: []T{}}, rerr
	}

	ranked := s.strategy.Rank(query, candidates, s.cfg.Threshold, limit)

	results := make([]T, 0, len(ranked))
	for _, sc := range ranked {
		out, err := serialize(sc.Candidate)
		if err != nil {
			metrics.RecordShapeError(string(kind))
			logging.CtxError(ctx).Err(err).Str("entity", string(kind)).Msg("Skipping malformed search record")
			continue
		}
		results = append(results, out)
	}

	metrics.RecordSearchPipeline(string(kind), time.Since(start), len(candidates), len(results))

	return models.EntityPage[T]{
		Page:    offset/limit + 1,
		Results: results,
	}, nil
}
