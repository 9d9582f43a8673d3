// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

// Package eventprocessor keeps the catalog read model in sync with the
// platform's content and artist services over NATS JetStream.
//
// # Flow
//
//	content / artist services
//	          │ PublishEvent (Nats-Msg-Id = event_id)
//	          ▼
//	  JetStream stream CATALOG_EVENTS  (subjects catalog.>)
//	          │ durable queue subscription (Watermill)
//	          ▼
//	  Consumer ── Recoverer ── Retry ── CatalogHandler
//	                                      │ dedup by event_id
//	                                      │ gobreaker
//	                                      ▼
//	                              catalog store (DuckDB)
//	                                      │
//	                                      ▼
//	                              search result cache purge
//
// # Subjects
//
// Events are published on catalog.<entity>.<event_type>, for example
// catalog.song.upsert or catalog.artist.delete.
//
// # Delivery
//
// Events carry occurred_at, which the store uses as a row version, so
// redelivered and reordered events converge on the newest state. Events
// that fail to decode or validate are acked and dropped. Store failures
// are retried in process and then nacked; JetStream redelivers them up to
// nats.max_deliver times.
//
// # Embedded Server
//
// With nats.embedded_server set, NewEmbeddedServer runs JetStream in
// process on the host and port of nats.url.
package eventprocessor
