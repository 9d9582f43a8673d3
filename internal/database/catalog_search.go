// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/tomtom215/songbird/internal/metrics"
	"github.com/tomtom215/songbird/internal/models"
)

const (
	searchSongsQuery = `SELECT id, title, duration, audio_url, album_id
		FROM songs
		WHERE title ILIKE ? ESCAPE '\' AND NOT deleted
		ORDER BY id
		LIMIT ? OFFSET ?`

	searchAlbumsQuery = `SELECT id, title, cover_url, artist_id
		FROM albums
		WHERE title ILIKE ? ESCAPE '\' AND NOT deleted
		ORDER BY id
		LIMIT ? OFFSET ?`

	searchArtistsQuery = `SELECT id, artist_name, profile_pic, bio, user_id
		FROM artists
		WHERE artist_name ILIKE ? ESCAPE '\' AND NOT deleted
		ORDER BY id
		LIMIT ? OFFSET ?`
)

// SearchSongs returns songs whose title contains query, case-insensitively,
// in ascending id order.
func (db *DB) SearchSongs(ctx context.Context, query string, limit, offset int) ([]models.SongCandidate, error) {
	return searchTable(ctx, db, "songs", searchSongsQuery, query, limit, offset, scanSong)
}

// SearchAlbums returns albums whose title contains query, case-insensitively,
// in ascending id order.
func (db *DB) SearchAlbums(ctx context.Context, query string, limit, offset int) ([]models.AlbumCandidate, error) {
	return searchTable(ctx, db, "albums", searchAlbumsQuery, query, limit, offset, scanAlbum)
}

// SearchArtists returns artists whose name contains query, case-insensitively,
// in ascending id order.
func (db *DB) SearchArtists(ctx context.Context, query string, limit, offset int) ([]models.ArtistCandidate, error) {
	return searchTable(ctx, db, "artists", searchArtistsQuery, query, limit, offset, scanArtist)
}

func searchTable[T any](
	ctx context.Context,
	db *DB,
	table, stmt, query string,
	limit, offset int,
	scan scanFunc[T],
) ([]T, error) {
	if limit <= 0 {
		return []T{}, nil
	}
	if offset < 0 {
		return nil, fmt.Errorf("negative offset %d", offset)
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := queryAndScan(ctx, db.conn, stmt, []interface{}{containsPattern(query), limit, offset}, scan)
	metrics.RecordDBQuery("search", table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", table, err)
	}
	return rows, nil
}

// containsPattern builds an ILIKE pattern matching query anywhere in the
// column, with LIKE metacharacters in query matched literally.
func containsPattern(query string) string {
	return "%" + escapeLike(norm.NFC.String(query)) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// scanFunc scans a single row into a result type.
type scanFunc[T any] func(*sql.Rows) (T, error)

// queryAndScan executes a query and scans all rows. The result is never nil.
func queryAndScan[T any](ctx context.Context, conn *sql.DB, query string, args []interface{}, scan scanFunc[T]) ([]T, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanSong(rows *sql.Rows) (models.SongCandidate, error) {
	var (
		s       models.SongCandidate
		albumID sql.NullInt64
	)
	if err := rows.Scan(&s.ID, &s.Title, &s.Duration, &s.AudioURL, &albumID); err != nil {
		return s, err
	}
	s.AlbumID = int64Ptr(albumID)
	return s, nil
}

func scanAlbum(rows *sql.Rows) (models.AlbumCandidate, error) {
	var (
		a        models.AlbumCandidate
		coverURL sql.NullString
		artistID sql.NullInt64
	)
	if err := rows.Scan(&a.ID, &a.Title, &coverURL, &artistID); err != nil {
		return a, err
	}
	a.CoverURL = stringPtr(coverURL)
	a.ArtistID = int64Ptr(artistID)
	return a, nil
}

func scanArtist(rows *sql.Rows) (models.ArtistCandidate, error) {
	var (
		a          models.ArtistCandidate
		profilePic sql.NullString
		bio        sql.NullString
		userID     sql.NullInt64
	)
	if err := rows.Scan(&a.ID, &a.ArtistName, &profilePic, &bio, &userID); err != nil {
		return a, err
	}
	a.ProfilePic = stringPtr(profilePic)
	a.Bio = stringPtr(bio)
	a.UserID = int64Ptr(userID)
	return a, nil
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}
