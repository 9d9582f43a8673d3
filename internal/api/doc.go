// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

/*
Package api provides the HTTP layer of the search service.

Endpoints:

  - GET /api/v1/search: fuzzy search over songs, albums and artists
  - GET /search: same handler, kept for existing clients
  - GET /health: liveness probe, always {"status":"ok"}
  - GET /api/v1/health/ready: readiness with catalog store status
  - GET /metrics: Prometheus exposition
  - GET /swagger/*: OpenAPI UI

Responses use the models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {"songs": {"page": 1, "results": []}, "albums": {...}, "artists": {...}},
	  "metadata": {"timestamp": "...", "query_time_ms": 4}
	}

Errors carry a code from errors.go. Invalid parameters are 400
VALIDATION_ERROR, a search exceeding server.timeout is 504 TIMEOUT.

Search responses without degraded collections are cached under the
normalized request; the catalog consumer purges the cache whenever it
applies a change.
*/
package api
