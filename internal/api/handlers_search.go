// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/songbird/internal/cache"
	"github.com/tomtom215/songbird/internal/logging"
	"github.com/tomtom215/songbird/internal/models"
	"github.com/tomtom215/songbird/internal/search"
)

// degradedHeader lists collections returned empty because retrieval failed.
const degradedHeader = "X-Search-Degraded"

// Search handles fuzzy search across songs, albums and artists.
//
// Each collection is ranked and paginated independently. A collection
// whose retrieval fails comes back as {page: 1, results: []} and is named
// in the X-Search-Degraded header; the other collections are unaffected.
//
// @Summary Fuzzy catalog search
// @Description Searches songs by title, albums by title and artists by name with fuzzy matching. Results scoring below the similarity threshold are dropped; the rest are ordered by score, ties kept in catalog order.
// @Tags Search
// @Accept json
// @Produce json
// @Param q query string true "Search query (max 200 characters)"
// @Param song_page query int false "Song results page (default: 1)"
// @Param album_page query int false "Album results page (default: 1)"
// @Param artist_page query int false "Artist results page (default: 1)"
// @Param limit query int false "Results per collection page (1-50, default: 5)"
// @Success 200 {object} models.APIResponse{data=models.SearchResponse} "Search results"
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 504 {object} models.APIResponse "Search timed out"
// @Security BearerAuth
// @Router /api/v1/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, err := parseSearchRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	effective, err := h.search.Normalize(search.Request{
		Query:      req.Query,
		Limit:      req.Limit,
		SongPage:   req.SongPage,
		AlbumPage:  req.AlbumPage,
		ArtistPage: req.ArtistPage,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	cacheKey := cache.GenerateKey("search", effective)
	if h.cache != nil {
		if cached, ok := h.cache.Get(cacheKey); ok {
			respondSearch(w, cached, 0, true)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	resp, err := h.search.Search(ctx, effective)
	if err != nil {
		switch {
		case search.IsRequestError(err):
			respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		case errors.Is(err, context.DeadlineExceeded):
			logging.CtxWarn(r.Context()).
				Str("query", sanitizeLogValue(effective.Query)).
				Dur("elapsed", time.Since(start)).
				Msg("Search timed out")
			respondError(w, http.StatusGatewayTimeout, ErrCodeTimeout, "Search did not complete in time", nil)
		case errors.Is(err, context.Canceled):
			// Client went away; nobody is left to read a response.
			logging.CtxDebug(r.Context()).Msg("Search canceled by client")
		default:
			respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Search failed", err)
		}
		return
	}

	if len(resp.Degraded) > 0 {
		names := make([]string, len(resp.Degraded))
		for i, kind := range resp.Degraded {
			names[i] = string(kind)
		}
		w.Header().Set(degradedHeader, strings.Join(names, ","))
	} else if h.cache != nil {
		h.cache.Add(cacheKey, resp)
	}

	respondSearch(w, resp, time.Since(start).Milliseconds(), false)
}

func respondSearch(w http.ResponseWriter, resp *models.SearchResponse, queryTimeMS int64, cached bool) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: queryTimeMS,
			Cached:      cached,
		},
	})
}

func parseSearchRequest(r *http.Request) (models.SearchRequest, error) {
	req := models.SearchRequest{Query: r.URL.Query().Get("q")}

	params := []struct {
		key string
		dst *int
	}{
		{"song_page", &req.SongPage},
		{"album_page", &req.AlbumPage},
		{"artist_page", &req.ArtistPage},
		{"limit", &req.Limit},
	}
	for _, p := range params {
		n, err := getIntParam(r, p.key)
		if err != nil {
			return req, err
		}
		*p.dst = n
	}
	return req, nil
}
