// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package search

import (
	"fmt"

	"github.com/tomtom215/songbird/internal/models"
)

// SerializeSong maps a ranked song to its client shape. album_id is not
// exposed.
func SerializeSong(c Candidate) (models.SongResult, error) {
	var s models.SongCandidate
	switch v := c.(type) {
	case models.SongCandidate:
		s = v
	case *models.SongCandidate:
		if v == nil {
			return models.SongResult{}, shapeError(models.EntitySong, c)
		}
		s = *v
	default:
		return models.SongResult{}, shapeError(models.EntitySong, c)
	}
	return models.SongResult{
		ID:       s.ID,
		Title:    s.Title,
		Duration: s.Duration,
		AudioURL: s.AudioURL,
	}, nil
}

// SerializeAlbum maps a ranked album to its client shape.
func SerializeAlbum(c Candidate) (models.AlbumResult, error) {
	var a models.AlbumCandidate
	switch v := c.(type) {
	case models.AlbumCandidate:
		a = v
	case *models.AlbumCandidate:
		if v == nil {
			return models.AlbumResult{}, shapeError(models.EntityAlbum, c)
		}
		a = *v
	default:
		return models.AlbumResult{}, shapeError(models.EntityAlbum, c)
	}
	return models.AlbumResult{
		ID:       a.ID,
		Title:    a.Title,
		CoverURL: a.CoverURL,
	}, nil
}

// SerializeArtist maps a ranked artist to its client shape. The artist's
// display name is published as "name"; bio and user_id are not exposed.
func SerializeArtist(c Candidate) (models.ArtistResult, error) {
	var a models.ArtistCandidate
	switch v := c.(type) {
	case models.ArtistCandidate:
		a = v
	case *models.ArtistCandidate:
		if v == nil {
			return models.ArtistResult{}, shapeError(models.EntityArtist, c)
		}
		a = *v
	default:
		return models.ArtistResult{}, shapeError(models.EntityArtist, c)
	}
	return models.ArtistResult{
		ID:         a.ID,
		Name:       a.ArtistName,
		ProfilePic: a.ProfilePic,
	}, nil
}

func shapeError(expected models.EntityKind, c Candidate) *ShapeError {
	got := "nil"
	if c != nil {
		got = fmt.Sprintf("%T", c)
	}
	return &ShapeError{Expected: expected, Got: got}
}
