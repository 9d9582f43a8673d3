// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf)))

	logger.Warn("service restarted",
		"service", "catalog_consumer",
		"attempt", 3,
		"backoff", 2*time.Second,
		"err", errors.New("stream not found"),
	)

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["level"] != "warn" {
		t.Errorf("Expected warn level, got %v", m["level"])
	}
	if m["message"] != "service restarted" {
		t.Errorf("Unexpected message %v", m["message"])
	}
	if m["service"] != "catalog_consumer" {
		t.Errorf("Expected service field, got %v", m)
	}
	if m["attempt"] != float64(3) {
		t.Errorf("Expected attempt 3, got %v", m["attempt"])
	}
	if m["err"] != "stream not found" {
		t.Errorf("Expected err field, got %v", m["err"])
	}
}

func TestSlogHandler_GroupsAndAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewSlogHandlerWithLogger(NewTestLogger(&buf)).
		WithGroup("supervisor").
		WithAttrs([]slog.Attr{slog.String("tree", "songbird")})
	logger := slog.New(h)

	logger.Info("event", slog.Group("service", slog.String("name", "http")))

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["supervisor.tree"] != "songbird" {
		t.Errorf("Expected grouped pre-configured attr, got %v", m)
	}
	if m["supervisor.service.name"] != "http" {
		t.Errorf("Expected nested group key, got %v", m)
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandlerWithLogger(zerolog.New(nil).Level(zerolog.WarnLevel))
	ctx := context.Background()

	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("Expected info to be disabled for a warn logger")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("Expected error to be enabled for a warn logger")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
