// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package database

import (
	"context"
	"fmt"
)

// The catalog is a read model fed by sync events that can arrive in any
// order, so there are no foreign keys between the tables. updated_at holds
// the version of the last applied change and deleted marks a tombstone.
// Lookups go by primary key or by ILIKE scan, so no secondary indexes are
// created.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS artists (
		id BIGINT PRIMARY KEY,
		artist_name VARCHAR NOT NULL,
		profile_pic VARCHAR,
		bio VARCHAR,
		user_id BIGINT,
		updated_at TIMESTAMP NOT NULL,
		deleted BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS albums (
		id BIGINT PRIMARY KEY,
		title VARCHAR NOT NULL,
		cover_url VARCHAR,
		artist_id BIGINT,
		updated_at TIMESTAMP NOT NULL,
		deleted BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS songs (
		id BIGINT PRIMARY KEY,
		title VARCHAR NOT NULL,
		duration INTEGER NOT NULL DEFAULT 0,
		audio_url VARCHAR NOT NULL DEFAULT '',
		album_id BIGINT,
		updated_at TIMESTAMP NOT NULL,
		deleted BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	// Databases created before tombstones lack the column.
	`ALTER TABLE artists ADD COLUMN IF NOT EXISTS deleted BOOLEAN DEFAULT FALSE`,
	`ALTER TABLE albums ADD COLUMN IF NOT EXISTS deleted BOOLEAN DEFAULT FALSE`,
	`ALTER TABLE songs ADD COLUMN IF NOT EXISTS deleted BOOLEAN DEFAULT FALSE`,
}

func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
