// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/songbird/internal/logging"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		upstream string
		keep     bool
	}{
		{"generates when missing", "", false},
		{"keeps well-formed upstream id", "edge-7f3a.91:2", true},
		{"replaces id with spaces", "bad id", false},
		{"replaces id with newline", "abc\nforged=1", false},
		{"replaces overlong id", strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ctxID, corrID string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = logging.RequestIDFromContext(r.Context())
				corrID = logging.CorrelationIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/search?query=moon", nil)
			if tt.upstream != "" {
				req.Header.Set(RequestIDHeader, tt.upstream)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got != ctxID {
				t.Errorf("Expected header %q to match context %q", got, ctxID)
			}
			if corrID == "" {
				t.Error("Expected correlation ID in context")
			}
			if tt.keep {
				if got != tt.upstream {
					t.Errorf("Expected upstream id %q, got %q", tt.upstream, got)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("Expected generated UUID, got %q", got)
			}
		})
	}
}
