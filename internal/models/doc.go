// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

/*
Package models defines data structures for the Songbird search service.

Model Categories:

1. Catalog records (read from the DuckDB catalog store and carried by
catalog sync events):
  - SongCandidate: id, title, duration, audio_url, album_id
  - AlbumCandidate: id, title, cover_url
  - ArtistCandidate: id, artist_name, profile_pic, bio, user_id

2. Search results (client-facing, fixed field names):
  - SongResult, AlbumResult, ArtistResult
  - EntityPage: page number plus ordered results for one collection
  - SearchResponse: composite of the three pages

3. API envelope:
  - APIResponse, Metadata, APIError
  - HealthStatus

Catalog records double as search candidates: each implements Kind and
SearchText so the ranking pipeline can score them without knowing the
concrete type.
*/
package models
