// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

/*
Package main is the entry point of the Songbird search service.

Songbird answers one question for the music streaming apps: "what in the
catalog looks like what the user typed?" It keeps a read model of songs,
albums and artists in DuckDB, fed by a seed snapshot and by catalog change
events from NATS JetStream, and ranks fuzzy matches per collection.

# Application Architecture

	RootSupervisor ("songbird")
	├── MessagingSupervisor ("messaging-layer")
	│   └── Catalog sync consumer (if NATS_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog with JSON or console output
 3. Catalog store: DuckDB, optionally seeded from SEED_PATH
 4. Result cache: expirable LRU keyed by the normalized request
 5. Search: breaker-wrapped providers, ranking strategy, orchestrator
 6. Authentication: JWT, Basic Auth or none
 7. Catalog sync: embedded JetStream (optional) and Watermill consumer
 8. Supervisor tree and HTTP server

# Configuration

Priority: environment variables > config file > defaults.

	# Server
	HTTP_PORT=8004
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Catalog
	DUCKDB_PATH=/data/songbird.duckdb
	SEED_PATH=/data/catalog.json # optional snapshot loaded at startup

	# Search
	SEARCH_STRATEGY=partial_ratio
	SEARCH_THRESHOLD=70

	# Authentication
	AUTH_MODE=jwt                # jwt, basic or none
	JWT_SECRET=<32+ chars>

	# Catalog sync
	NATS_ENABLED=true
	NATS_URL=nats://127.0.0.1:4222
	NATS_EMBEDDED=false

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server (draining in-flight searches) and the catalog consumer (draining
in-flight events), then the embedded NATS server and the database are
closed.
*/
package main
