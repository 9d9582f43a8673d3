// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package database

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/songbird/internal/logging"
	"github.com/tomtom215/songbird/internal/models"
	"github.com/tomtom215/songbird/internal/validation"
)

// SeedResult summarizes a seed run.
type SeedResult struct {
	Applied models.CatalogCounts
	Skipped int
}

// SeedFromFile loads a JSON catalog snapshot and writes its valid records.
// Records that fail validation are logged and skipped. The file's
// modification time is the write version, so reseeding on restart never
// overwrites changes that sync events applied later.
func (db *DB) SeedFromFile(ctx context.Context, path string) (SeedResult, error) {
	var result SeedResult

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return result, fmt.Errorf("open seed file: %w", err)
	}
	defer closeWithLog(f, "seed file")

	info, err := f.Stat()
	if err != nil {
		return result, fmt.Errorf("stat seed file: %w", err)
	}

	var snap models.CatalogSnapshot
	if err := json.NewDecoder(f).DecodeContext(ctx, &snap); err != nil {
		return result, fmt.Errorf("decode seed file %s: %w", path, err)
	}

	valid := filterValid(&snap, &result.Skipped)
	if err := db.ApplySnapshot(ctx, valid, info.ModTime()); err != nil {
		return result, fmt.Errorf("apply seed file %s: %w", path, err)
	}

	result.Applied = models.CatalogCounts{
		Songs:   int64(len(valid.Songs)),
		Albums:  int64(len(valid.Albums)),
		Artists: int64(len(valid.Artists)),
	}

	logging.Info().
		Str("path", path).
		Int64("songs", result.Applied.Songs).
		Int64("albums", result.Applied.Albums).
		Int64("artists", result.Applied.Artists).
		Int("skipped", result.Skipped).
		Msg("Catalog seed applied")

	return result, nil
}

// filterValid returns the records of snap that pass validation and adds
// the number dropped to skipped.
func filterValid(snap *models.CatalogSnapshot, skipped *int) *models.CatalogSnapshot {
	out := &models.CatalogSnapshot{
		Artists: keepValid(models.EntityArtist, snap.Artists, func(a *models.ArtistCandidate) int64 { return a.ID }, skipped),
		Albums:  keepValid(models.EntityAlbum, snap.Albums, func(a *models.AlbumCandidate) int64 { return a.ID }, skipped),
		Songs:   keepValid(models.EntitySong, snap.Songs, func(s *models.SongCandidate) int64 { return s.ID }, skipped),
	}
	return out
}

func keepValid[T any](kind models.EntityKind, records []T, id func(*T) int64, skipped *int) []T {
	out := make([]T, 0, len(records))
	for i := range records {
		if verr := validation.ValidateStruct(&records[i]); verr != nil {
			*skipped++
			logging.Warn().
				Str("entity", string(kind)).
				Int64("id", id(&records[i])).
				Str("reason", verr.Error()).
				Msg("Skipping invalid seed record")
			continue
		}
		out = append(out, records[i])
	}
	return out
}
