// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/tomtom215/songbird/internal/logging"
	"github.com/tomtom215/songbird/internal/metrics"
	"github.com/tomtom215/songbird/internal/models"
)

// Writes carry a version (the time the change happened upstream). A write
// only lands if it is newer than the stored row, so redelivered or
// reordered sync events cannot roll a record back. Deletes leave a
// tombstone (deleted = TRUE) carrying the delete's version, so an older
// upsert arriving after the delete stays deleted. On equal versions a
// delete wins.
const (
	upsertGuard = `
		WHERE updated_at < EXCLUDED.updated_at
			OR (updated_at = EXCLUDED.updated_at AND NOT deleted)`

	upsertSongStmt = `INSERT INTO songs (id, title, duration, audio_url, album_id, updated_at, deleted)
		VALUES (?, ?, ?, ?, ?, ?, FALSE)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			duration = EXCLUDED.duration,
			audio_url = EXCLUDED.audio_url,
			album_id = EXCLUDED.album_id,
			updated_at = EXCLUDED.updated_at,
			deleted = FALSE` + upsertGuard

	upsertAlbumStmt = `INSERT INTO albums (id, title, cover_url, artist_id, updated_at, deleted)
		VALUES (?, ?, ?, ?, ?, FALSE)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			cover_url = EXCLUDED.cover_url,
			artist_id = EXCLUDED.artist_id,
			updated_at = EXCLUDED.updated_at,
			deleted = FALSE` + upsertGuard

	upsertArtistStmt = `INSERT INTO artists (id, artist_name, profile_pic, bio, user_id, updated_at, deleted)
		VALUES (?, ?, ?, ?, ?, ?, FALSE)
		ON CONFLICT (id) DO UPDATE SET
			artist_name = EXCLUDED.artist_name,
			profile_pic = EXCLUDED.profile_pic,
			bio = EXCLUDED.bio,
			user_id = EXCLUDED.user_id,
			updated_at = EXCLUDED.updated_at,
			deleted = FALSE` + upsertGuard

	tombstoneGuard = `
		ON CONFLICT (id) DO UPDATE SET
			deleted = TRUE,
			updated_at = EXCLUDED.updated_at
		WHERE updated_at <= EXCLUDED.updated_at`

	deleteSongStmt = `INSERT INTO songs (id, title, updated_at, deleted)
		VALUES (?, '', ?, TRUE)` + tombstoneGuard

	deleteAlbumStmt = `INSERT INTO albums (id, title, updated_at, deleted)
		VALUES (?, '', ?, TRUE)` + tombstoneGuard

	deleteArtistStmt = `INSERT INTO artists (id, artist_name, updated_at, deleted)
		VALUES (?, '', ?, TRUE)` + tombstoneGuard
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// UpsertSong inserts or replaces a song unless a newer version is stored.
func (db *DB) UpsertSong(ctx context.Context, s *models.SongCandidate, version time.Time) error {
	return db.write(ctx, "upsert", "songs", func(ctx context.Context) error {
		return upsertSong(ctx, db.conn, s, version)
	})
}

// UpsertAlbum inserts or replaces an album unless a newer version is stored.
func (db *DB) UpsertAlbum(ctx context.Context, a *models.AlbumCandidate, version time.Time) error {
	return db.write(ctx, "upsert", "albums", func(ctx context.Context) error {
		return upsertAlbum(ctx, db.conn, a, version)
	})
}

// UpsertArtist inserts or replaces an artist unless a newer version is stored.
func (db *DB) UpsertArtist(ctx context.Context, a *models.ArtistCandidate, version time.Time) error {
	return db.write(ctx, "upsert", "artists", func(ctx context.Context) error {
		return upsertArtist(ctx, db.conn, a, version)
	})
}

// DeleteSong marks a song deleted unless a newer version is stored.
// Deleting a missing row records a tombstone and is not an error.
func (db *DB) DeleteSong(ctx context.Context, id int64, version time.Time) error {
	return db.deleteRow(ctx, "songs", deleteSongStmt, id, version)
}

// DeleteAlbum marks an album deleted unless a newer version is stored.
func (db *DB) DeleteAlbum(ctx context.Context, id int64, version time.Time) error {
	return db.deleteRow(ctx, "albums", deleteAlbumStmt, id, version)
}

// DeleteArtist marks an artist deleted unless a newer version is stored.
func (db *DB) DeleteArtist(ctx context.Context, id int64, version time.Time) error {
	return db.deleteRow(ctx, "artists", deleteArtistStmt, id, version)
}

func (db *DB) deleteRow(ctx context.Context, table, stmt string, id int64, version time.Time) error {
	return db.write(ctx, "delete", table, func(ctx context.Context) error {
		_, err := db.conn.ExecContext(ctx, stmt, id, version.UTC())
		return err
	})
}

// CatalogCounts returns the number of live rows in each catalog table.
func (db *DB) CatalogCounts(ctx context.Context) (models.CatalogCounts, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var counts models.CatalogCounts
	start := time.Now()
	err := db.conn.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM songs WHERE NOT deleted),
		(SELECT COUNT(*) FROM albums WHERE NOT deleted),
		(SELECT COUNT(*) FROM artists WHERE NOT deleted)`).Scan(&counts.Songs, &counts.Albums, &counts.Artists)
	metrics.RecordDBQuery("count", "catalog", time.Since(start), err)
	if err != nil {
		return counts, fmt.Errorf("count catalog: %w", err)
	}
	return counts, nil
}

// ApplySnapshot writes every record of snap in one transaction.
func (db *DB) ApplySnapshot(ctx context.Context, snap *models.CatalogSnapshot, version time.Time) error {
	return db.write(ctx, "snapshot", "catalog", func(ctx context.Context) error {
		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		defer func() {
			_ = tx.Rollback() // no-op after commit
		}()

		for i := range snap.Artists {
			if err := upsertArtist(ctx, tx, &snap.Artists[i], version); err != nil {
				return fmt.Errorf("artist %d: %w", snap.Artists[i].ID, err)
			}
		}
		for i := range snap.Albums {
			if err := upsertAlbum(ctx, tx, &snap.Albums[i], version); err != nil {
				return fmt.Errorf("album %d: %w", snap.Albums[i].ID, err)
			}
		}
		for i := range snap.Songs {
			if err := upsertSong(ctx, tx, &snap.Songs[i], version); err != nil {
				return fmt.Errorf("song %d: %w", snap.Songs[i].ID, err)
			}
		}
		return tx.Commit()
	})
}

func upsertSong(ctx context.Context, ex execer, s *models.SongCandidate, version time.Time) error {
	_, err := ex.ExecContext(ctx, upsertSongStmt,
		s.ID, norm.NFC.String(s.Title), s.Duration, s.AudioURL, nullInt64(s.AlbumID), version.UTC())
	return err
}

func upsertAlbum(ctx context.Context, ex execer, a *models.AlbumCandidate, version time.Time) error {
	_, err := ex.ExecContext(ctx, upsertAlbumStmt,
		a.ID, norm.NFC.String(a.Title), nullString(a.CoverURL), nullInt64(a.ArtistID), version.UTC())
	return err
}

func upsertArtist(ctx context.Context, ex execer, a *models.ArtistCandidate, version time.Time) error {
	_, err := ex.ExecContext(ctx, upsertArtistStmt,
		a.ID, norm.NFC.String(a.ArtistName), nullString(a.ProfilePic), nullString(a.Bio), nullInt64(a.UserID), version.UTC())
	return err
}

// write runs fn with a bounded context, retrying DuckDB transaction
// conflicts with a linear backoff.
func (db *DB) write(ctx context.Context, operation, table string, fn func(context.Context) error) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var err error
	for attempt := 0; attempt <= db.maxWriteRetries; attempt++ {
		if attempt > 0 {
			logging.CtxDebug(ctx).
				Str("table", table).
				Int("attempt", attempt).
				Err(err).
				Msg("Retrying catalog write after transaction conflict")
			select {
			case <-time.After(db.retryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		start := time.Now()
		err = fn(ctx)
		metrics.RecordDBQuery(operation, table, time.Since(start), err)
		if err == nil || !isTransactionConflict(err) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", operation, table, err)
	}
	return nil
}
