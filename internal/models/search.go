// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package models

// SongResult is the client-facing shape of a matched song.
type SongResult struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	AudioURL string `json:"audio_url"`
}

// AlbumResult is the client-facing shape of a matched album.
type AlbumResult struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	CoverURL *string `json:"cover_url"`
}

// ArtistResult is the client-facing shape of a matched artist.
type ArtistResult struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ProfilePic *string `json:"profile_pic"`
}

// EntityPage is one collection's slice of a search response.
// Results is never nil so it always encodes as a JSON array.
type EntityPage[T any] struct {
	Page    int `json:"page"`
	Results []T `json:"results"`
}

// SearchResponse is the composite result of one search call. Each
// collection is paginated independently.
type SearchResponse struct {
	Songs   EntityPage[SongResult]   `json:"songs"`
	Albums  EntityPage[AlbumResult]  `json:"albums"`
	Artists EntityPage[ArtistResult] `json:"artists"`

	// Degraded lists collections whose retrieval failed and were returned
	// empty. Not part of the wire format.
	Degraded []EntityKind `json:"-"`
}

// SearchRequest holds the HTTP query parameters of a search call. Zero
// values select defaults; configured upper bounds are enforced by the
// search service.
type SearchRequest struct {
	Query      string `json:"q" validate:"required,notblank"`
	SongPage   int    `json:"song_page" validate:"gte=0"`
	AlbumPage  int    `json:"album_page" validate:"gte=0"`
	ArtistPage int    `json:"artist_page" validate:"gte=0"`
	Limit      int    `json:"limit" validate:"gte=0"`
}
