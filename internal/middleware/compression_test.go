// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func largeBody(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte(strings.Repeat(`{"id":1,"title":"Moonlight Sonata"}`, 100)))
}

func TestCompression_GzipAccepted(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rec := httptest.NewRecorder()

	Compression(http.HandlerFunc(largeBody)).ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("Expected gzip encoding, got %q", rec.Header().Get("Content-Encoding"))
	}
	if rec.Header().Get("Vary") != "Accept-Encoding" {
		t.Errorf("Expected Vary header, got %q", rec.Header().Get("Vary"))
	}

	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("Failed to open gzip body: %v", err)
	}
	defer zr.Close()
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("Failed to read gzip body: %v", err)
	}
	if !strings.HasPrefix(string(body), `{"id":1`) {
		t.Errorf("Unexpected decompressed body prefix: %.20s", body)
	}
}

func TestCompression_Skipped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		accept string
	}{
		{"no accept-encoding", http.MethodGet, ""},
		{"identity only", http.MethodGet, "identity"},
		{"head request", http.MethodHead, "gzip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, "/api/v1/search", nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Encoding", tt.accept)
			}
			rec := httptest.NewRecorder()
			Compression(http.HandlerFunc(largeBody)).ServeHTTP(rec, req)

			if enc := rec.Header().Get("Content-Encoding"); enc != "" {
				t.Errorf("Expected no encoding, got %q", enc)
			}
		})
	}
}
