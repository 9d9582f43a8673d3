// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/songbird/internal/cache"
	"github.com/tomtom215/songbird/internal/config"
	"github.com/tomtom215/songbird/internal/models"
	"github.com/tomtom215/songbird/internal/search"
)

// countingProvider serves a fixed candidate list and counts fetches.
type countingProvider struct {
	candidates []search.Candidate
	err        error
	calls      atomic.Int32
}

func (p *countingProvider) Fetch(_ context.Context, _ string, limit, offset int) ([]search.Candidate, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	if offset >= len(p.candidates) {
		return nil, nil
	}
	end := min(offset+limit, len(p.candidates))
	return p.candidates[offset:end], nil
}

type testCatalog struct {
	songs, albums, artists *countingProvider
}

func newTestCatalog() *testCatalog {
	return &testCatalog{
		songs: &countingProvider{candidates: []search.Candidate{
			models.SongCandidate{ID: 1, Title: "Moonwalk", Duration: 200, AudioURL: "/audio/1.mp3"},
			models.SongCandidate{ID: 2, Title: "Sunrise", Duration: 180, AudioURL: "/audio/2.mp3"},
			models.SongCandidate{ID: 3, Title: "Moon River", Duration: 160, AudioURL: "/audio/3.mp3"},
		}},
		albums: &countingProvider{candidates: []search.Candidate{
			models.AlbumCandidate{ID: 10, Title: "Harvest Moon"},
		}},
		artists: &countingProvider{candidates: []search.Candidate{
			models.ArtistCandidate{ID: 20, ArtistName: "Moonchild"},
		}},
	}
}

func (c *testCatalog) providers() search.Providers {
	return search.Providers{Songs: c.songs, Albums: c.albums, Artists: c.artists}
}

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Timeout: 5 * time.Second},
		Security: config.SecurityConfig{AuthMode: "none", RateLimitDisabled: true},
	}
}

func newTestHandler(t *testing.T, providers search.Providers, resultCache *cache.Cache[*models.SearchResponse]) *Handler {
	t.Helper()
	svc, err := search.NewService(providers, nil, search.DefaultConfig())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return NewHandler(svc, &fakeCatalogStatus{}, resultCache, testConfig())
}

type searchEnvelope struct {
	Status   string                `json:"status"`
	Data     models.SearchResponse `json:"data"`
	Metadata models.Metadata       `json:"metadata"`
	Error    *models.APIError      `json:"error"`
}

func doSearch(t *testing.T, h *Handler, rawQuery string) (*httptest.ResponseRecorder, searchEnvelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?"+rawQuery, nil)
	w := httptest.NewRecorder()
	h.Search(w, req)

	var env searchEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return w, env
}

func TestSearch_Success(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, newTestCatalog().providers(), nil)
	w, env := doSearch(t, h, "q=moon")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if env.Status != "success" {
		t.Errorf("Expected status success, got %s", env.Status)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", ct)
	}

	if env.Data.Songs.Page != 1 || len(env.Data.Songs.Results) != 2 {
		t.Fatalf("Expected 2 songs on page 1, got %+v", env.Data.Songs)
	}
	if env.Data.Songs.Results[0].ID != 1 || env.Data.Songs.Results[1].ID != 3 {
		t.Errorf("Expected songs 1 then 3 (input order on ties), got %+v", env.Data.Songs.Results)
	}
	if env.Data.Albums.Results[0].Title != "Harvest Moon" {
		t.Errorf("Expected Harvest Moon, got %+v", env.Data.Albums.Results)
	}
	if env.Data.Artists.Results[0].Name != "Moonchild" {
		t.Errorf("Expected Moonchild, got %+v", env.Data.Artists.Results)
	}
	if env.Metadata.Cached {
		t.Error("Expected fresh response not to be marked cached")
	}
}

func TestSearch_EmptyCollectionsEncodeAsArrays(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, newTestCatalog().providers(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=zzzzqqq", nil)
	w := httptest.NewRecorder()
	h.Search(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var raw struct {
		Data map[string]struct {
			Page    int             `json:"page"`
			Results json.RawMessage `json:"results"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"songs", "albums", "artists"} {
		if got := string(raw.Data[key].Results); got != "[]" {
			t.Errorf("Expected %s results to be [], got %s", key, got)
		}
	}
}

func TestSearch_Pagination(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, newTestCatalog().providers(), nil)
	w, env := doSearch(t, h, "q=moon&song_page=2&limit=1")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if env.Data.Songs.Page != 2 {
		t.Errorf("Expected song page 2, got %d", env.Data.Songs.Page)
	}
	if len(env.Data.Songs.Results) != 1 || env.Data.Songs.Results[0].ID != 3 {
		t.Errorf("Expected song 3 on page 2, got %+v", env.Data.Songs.Results)
	}
	if env.Data.Albums.Page != 1 {
		t.Errorf("Expected album page to stay 1, got %d", env.Data.Albums.Page)
	}
}

func TestSearch_ValidationErrors(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, newTestCatalog().providers(), nil)

	tests := []struct {
		name  string
		query string
	}{
		{"missing query", ""},
		{"blank query", "q=%20%20"},
		{"non-integer page", "q=moon&song_page=two"},
		{"non-integer limit", "q=moon&limit=1.5"},
		{"negative page", "q=moon&album_page=-1"},
		{"limit too large", "q=moon&limit=51"},
		{"negative limit", "q=moon&limit=-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, env := doSearch(t, h, tt.query)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
			}
			if env.Error == nil || env.Error.Code != ErrCodeValidation {
				t.Errorf("Expected VALIDATION_ERROR, got %+v", env.Error)
			}
		})
	}
}

func TestSearch_QueryTooLong(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, newTestCatalog().providers(), nil)
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	w, env := doSearch(t, h, "q="+string(long))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeValidation {
		t.Errorf("Expected VALIDATION_ERROR, got %+v", env.Error)
	}
}

func TestSearch_InvalidUTF8Query(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog()
	h := newTestHandler(t, catalog.providers(), nil)

	w, env := doSearch(t, h, "q=moon%FF")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
	}
	if env.Error == nil || env.Error.Code != ErrCodeValidation {
		t.Errorf("Expected VALIDATION_ERROR, got %+v", env.Error)
	}
	for name, p := range map[string]*countingProvider{"songs": catalog.songs, "albums": catalog.albums, "artists": catalog.artists} {
		if n := p.calls.Load(); n != 0 {
			t.Errorf("Expected no %s fetches, got %d", name, n)
		}
	}
}

func TestSearch_CachesResponses(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog()
	resultCache := cache.New[*models.SearchResponse]("api_test_search", 16, time.Minute)
	h := newTestHandler(t, catalog.providers(), resultCache)

	_, first := doSearch(t, h, "q=moon")
	// Same effective request: explicit defaults and padded query.
	_, second := doSearch(t, h, "q=%20moon%20&limit=5&song_page=1")

	if first.Metadata.Cached {
		t.Error("Expected first response to be fresh")
	}
	if !second.Metadata.Cached {
		t.Error("Expected second response to be served from cache")
	}
	if n := catalog.songs.calls.Load(); n != 1 {
		t.Errorf("Expected 1 song fetch, got %d", n)
	}
	if len(second.Data.Songs.Results) != len(first.Data.Songs.Results) {
		t.Errorf("Expected cached results to match, got %d vs %d",
			len(second.Data.Songs.Results), len(first.Data.Songs.Results))
	}

	resultCache.Purge()
	_, third := doSearch(t, h, "q=moon")
	if third.Metadata.Cached {
		t.Error("Expected fresh response after purge")
	}
}

func TestSearch_DegradedCollection(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog()
	catalog.albums.err = errors.New("connection refused")
	resultCache := cache.New[*models.SearchResponse]("api_test_degraded", 16, time.Minute)
	h := newTestHandler(t, catalog.providers(), resultCache)

	w, env := doSearch(t, h, "q=moon&album_page=3")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get(degradedHeader); got != "album" {
		t.Errorf("Expected %s: album, got %q", degradedHeader, got)
	}
	if env.Data.Albums.Page != 1 || len(env.Data.Albums.Results) != 0 {
		t.Errorf("Expected degraded albums {page:1, results:[]}, got %+v", env.Data.Albums)
	}
	if len(env.Data.Songs.Results) != 2 {
		t.Errorf("Expected songs unaffected, got %+v", env.Data.Songs)
	}
	if resultCache.Len() != 0 {
		t.Errorf("Expected degraded response not to be cached, got %d entries", resultCache.Len())
	}
}

func TestSearch_Timeout(t *testing.T) {
	t.Parallel()

	blocking := search.ProviderFunc(func(ctx context.Context, _ string, _, _ int) ([]search.Candidate, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	svcCfg := search.DefaultConfig()
	svcCfg.Timeout = 0
	svc, err := search.NewService(search.Providers{Songs: blocking, Albums: blocking, Artists: blocking}, nil, svcCfg)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	cfg := testConfig()
	cfg.Server.Timeout = 20 * time.Millisecond
	h := NewHandler(svc, &fakeCatalogStatus{}, nil, cfg)

	w, env := doSearch(t, h, "q=moon")

	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("Expected status 504, got %d: %s", w.Code, w.Body.String())
	}
	if env.Error == nil || env.Error.Code != ErrCodeTimeout {
		t.Errorf("Expected TIMEOUT, got %+v", env.Error)
	}
}

func TestParseSearchRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/search?q=moon&song_page=2&album_page=3&artist_page=4&limit=10", nil)
	got, err := parseSearchRequest(req)
	if err != nil {
		t.Fatalf("parseSearchRequest failed: %v", err)
	}
	want := models.SearchRequest{Query: "moon", SongPage: 2, AlbumPage: 3, ArtistPage: 4, Limit: 10}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
