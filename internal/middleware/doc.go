// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

// Package middleware provides the HTTP middleware shared by the API router.
//
// All middleware uses the chi signature func(http.Handler) http.Handler:
//
//   - RequestID: request and correlation IDs for log tracing
//   - AccessLog: per-request log line with slow request warnings
//   - PrometheusMetrics: request count and latency keyed by route pattern
//   - Compression: gzip for clients that accept it
//
// The router installs them in this order, ahead of CORS, rate limiting and
// authentication:
//
//	r.Use(middleware.RequestID)
//	r.Use(middleware.AccessLog(cfg.Server.SlowRequest))
//	r.Use(middleware.PrometheusMetrics)
//	r.Use(middleware.Compression)
package middleware
