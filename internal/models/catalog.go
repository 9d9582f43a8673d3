// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package models

// EntityKind identifies one of the three searchable catalog collections.
type EntityKind string

const (
	EntitySong   EntityKind = "song"
	EntityAlbum  EntityKind = "album"
	EntityArtist EntityKind = "artist"
)

// EntityKinds lists the searchable collections in response order.
var EntityKinds = []EntityKind{EntitySong, EntityAlbum, EntityArtist}

// Valid reports whether k names a known collection.
func (k EntityKind) Valid() bool {
	switch k {
	case EntitySong, EntityAlbum, EntityArtist:
		return true
	}
	return false
}

// SongCandidate is a song row as read from the catalog store.
// AlbumID is nil for singles that are not attached to an album.
type SongCandidate struct {
	ID       int64  `json:"id" validate:"required,gt=0"`
	Title    string `json:"title" validate:"required,notblank,max=500"`
	Duration int    `json:"duration" validate:"gte=0"`
	AudioURL string `json:"audio_url" validate:"omitempty,max=2048"`
	AlbumID  *int64 `json:"album_id,omitempty" validate:"omitempty,gt=0"`
}

// Kind implements search.Candidate.
func (s SongCandidate) Kind() EntityKind { return EntitySong }

// SearchText implements search.Candidate.
func (s SongCandidate) SearchText() string { return s.Title }

// AlbumCandidate is an album row as read from the catalog store.
type AlbumCandidate struct {
	ID       int64   `json:"id" validate:"required,gt=0"`
	Title    string  `json:"title" validate:"required,notblank,max=500"`
	CoverURL *string `json:"cover_url,omitempty" validate:"omitempty,max=2048"`
	ArtistID *int64  `json:"artist_id,omitempty" validate:"omitempty,gt=0"`
}

// Kind implements search.Candidate.
func (a AlbumCandidate) Kind() EntityKind { return EntityAlbum }

// SearchText implements search.Candidate.
func (a AlbumCandidate) SearchText() string { return a.Title }

// ArtistCandidate is an artist row as read from the catalog store.
// Bio and UserID are carried for completeness but never serialized to
// search clients.
type ArtistCandidate struct {
	ID         int64   `json:"id" validate:"required,gt=0"`
	ArtistName string  `json:"artist_name" validate:"required,notblank,max=500"`
	ProfilePic *string `json:"profile_pic,omitempty" validate:"omitempty,max=2048"`
	Bio        *string `json:"bio,omitempty"`
	UserID     *int64  `json:"user_id,omitempty"`
}

// Kind implements search.Candidate.
func (a ArtistCandidate) Kind() EntityKind { return EntityArtist }

// SearchText implements search.Candidate.
func (a ArtistCandidate) SearchText() string { return a.ArtistName }

// CatalogCounts reports the number of rows per catalog table.
type CatalogCounts struct {
	Songs   int64 `json:"songs"`
	Albums  int64 `json:"albums"`
	Artists int64 `json:"artists"`
}

// CatalogSnapshot is the on-disk seed format loaded at startup.
type CatalogSnapshot struct {
	Artists []ArtistCandidate `json:"artists"`
	Albums  []AlbumCandidate  `json:"albums"`
	Songs   []SongCandidate   `json:"songs"`
}
