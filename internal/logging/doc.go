// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

// Package logging provides the zerolog-based structured logger used across
// Songbird.
//
// # Overview
//
// One global zerolog logger is configured at startup from the logging
// section of the configuration. JSON output is the production default;
// console output is available for development.
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("port", 8004).Msg("HTTP server listening")
//	logging.Err(err).Str("path", seedPath).Msg("Catalog seed failed")
//
// # Context-Aware Logging
//
// The request ID middleware stores a request ID in the request context. The
// Ctx helpers add it to every event so a degraded search can be traced back
// to the HTTP request that triggered it:
//
//	logging.CtxWarn(ctx).Str("entity", "album").Msg("Candidate retrieval failed")
//
// # Adapters
//
// Two third-party libraries log through their own interfaces:
//
//   - NewSlogLogger bridges slog for the suture supervisor (sutureslog)
//   - NewWatermillAdapter implements watermill.LoggerAdapter for the NATS
//     catalog consumer and publisher
//
// Both write into the same zerolog stream.
//
// # Environment Variables
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Testing
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	ctx := logging.ContextWithLogger(context.Background(), logger)
package logging
