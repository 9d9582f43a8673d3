// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

// @title Songbird Search API
// @version 1.0
// @description Fuzzy search over the music catalog: songs by title, albums by title and artists by name.
// @description
// @description ## Ranking
// @description
// @description Each collection is scored against the query (0-100). Candidates below the
// @description similarity threshold (default 70) are dropped; the rest are ordered by score,
// @description with ties kept in catalog order. Songs, albums and artists are paginated
// @description independently via `song_page`, `album_page` and `artist_page`.
// @description
// @description ## Authentication
// @description
// @description Search endpoints require `Authorization: Bearer <token>` (or the `token` cookie)
// @description unless the server runs with `AUTH_MODE=none`. Health endpoints are open.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {"code": "VALIDATION_ERROR", "message": "limit must be between 1 and 50"},
// @description   "metadata": {"timestamp": "2026-03-02T12:00:00Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/songbird/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8004
// @BasePath /
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT as "Bearer <token>".
//
// @tag.name Search
// @tag.description Fuzzy catalog search
//
// @tag.name Health
// @tag.description Liveness and readiness probes
package main
