// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

/*
Package database provides the DuckDB catalog store behind Songbird's
search providers.

The store is a read model: the content and artist services own the
catalog, and Songbird keeps a copy fed by a JSON seed snapshot at startup
and by catalog sync events afterwards.

Tables:

	artists(id, artist_name, profile_pic, bio, user_id, updated_at)
	albums(id, title, cover_url, artist_id, updated_at)
	songs(id, title, duration, audio_url, album_id, updated_at)

Candidate retrieval (SearchSongs, SearchAlbums, SearchArtists) is a
case-insensitive substring match using ILIKE with an explicit escape
character, so %, _ and \ in a query match literally. Rows come back in
ascending id order, which keeps LIMIT/OFFSET pagination stable. Queries and
stored names are NFC-normalized so composed and decomposed accents match.

Writes take a version timestamp. A write whose version is older than the
stored row is ignored, which makes event redelivery and reordering safe.
DuckDB transaction conflicts are retried.

Usage:

	db, err := database.New(&cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

	songs, err := db.SearchSongs(ctx, "moon", 15, 0)
*/
package database
