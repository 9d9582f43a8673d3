// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/songbird/internal/config"
)

func TestChiMiddlewareConfigFrom(t *testing.T) {
	t.Parallel()

	cfg := ChiMiddlewareConfigFrom(&config.SecurityConfig{
		CORSOrigins:     []string{"https://app.example.com"},
		RateLimitReqs:   42,
		RateLimitWindow: 10 * time.Second,
	})
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("Expected configured CORS origin, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRequests != 42 || cfg.RateLimitWindow != 10*time.Second {
		t.Errorf("Expected 42 per 10s, got %d per %v", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	defaults := ChiMiddlewareConfigFrom(nil)
	if defaults.RateLimitRequests != 100 || len(defaults.CORSAllowedOrigins) != 0 {
		t.Errorf("Expected defaults, got %+v", defaults)
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"https://app.example.com"},
		CORSAllowedMethods: []string{http.MethodGet},
	})
	handler := m.CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		origin string
		want   string
	}{
		{"https://app.example.com", "https://app.example.com"},
		{"https://evil.example.com", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
		req.Header.Set("Origin", tt.origin)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("Origin %s: expected Access-Control-Allow-Origin %q, got %q", tt.origin, tt.want, got)
		}
	}
}

func TestRateLimitDisabled(t *testing.T) {
	t.Parallel()

	m := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitRequests: 1, RateLimitWindow: time.Minute, RateLimitDisabled: true})
	handler := m.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected request %d to pass with limiting disabled, got %d", i, w.Code)
		}
	}
}

func TestTrustedRealIP(t *testing.T) {
	t.Parallel()

	var seen string
	handler := TrustedRealIP([]string{"10.0.0.0/8", "192.0.2.1", "not-an-ip"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.RemoteAddr
		}))

	tests := []struct {
		name       string
		remoteAddr string
		want       string
	}{
		{"trusted cidr", "10.1.2.3:4000", "198.51.100.9"},
		{"trusted single ip", "192.0.2.1:4000", "198.51.100.9"},
		{"untrusted peer", "203.0.113.5:4000", "203.0.113.5:4000"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remoteAddr
		req.Header.Set("X-Forwarded-For", "198.51.100.9")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if seen != tt.want {
			t.Errorf("%s: expected RemoteAddr %q, got %q", tt.name, tt.want, seen)
		}
	}
}

func TestTrustedRealIP_NoProxies(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := TrustedRealIP(nil)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.5:4000"
	req.Header.Set("X-Forwarded-For", "198.51.100.9")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if req.RemoteAddr != "203.0.113.5:4000" {
		t.Errorf("Expected RemoteAddr untouched, got %s", req.RemoteAddr)
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"moon", "moon"},
		{"moon\nFAKE LOG LINE", "moon\\x0aFAKE LOG LINE"},
		{"tab\there", "tab\\x09here"},
		{"café", "café"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
