// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/songbird/internal/logging"
)

// AccessLog logs one line per request at debug level, or at warn level
// when the request took longer than slow. A zero slow disables the
// warning.
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			event := logging.CtxDebug(r.Context())
			msg := "HTTP request"
			if slow > 0 && elapsed > slow {
				event = logging.CtxWarn(r.Context()).Dur("threshold", slow)
				msg = "Slow request detected"
			}
			event.
				Str("method", r.Method).
				Str("route", routePattern(r)).
				Int("status", rec.status).
				Dur("duration", elapsed).
				Msg(msg)
		})
	}
}
