// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/songbird/internal/config"
	"github.com/tomtom215/songbird/internal/models"
)

// testDBSemaphore serializes DuckDB usage across tests. Concurrent CGO
// connections from many parallel tests can stall under CI resource
// pressure, so the slot is held for the whole test.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates an in-memory catalog that is closed when the test
// ends.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db, err := New(&config.DatabaseConfig{
		Path:      MemoryPath,
		MaxMemory: "256MB",
		Threads:   1,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

func strPtr(s string) *string { return &s }

func i64Ptr(i int64) *int64 { return &i }

var v1 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// seedMoonCatalog writes a small catalog used by the search tests.
func seedMoonCatalog(t *testing.T, db *DB) {
	t.Helper()

	snap := &models.CatalogSnapshot{
		Artists: []models.ArtistCandidate{
			{ID: 1, ArtistName: "Moonchild", ProfilePic: strPtr("https://cdn.example/a1.jpg"), Bio: strPtr("jazz trio"), UserID: i64Ptr(501)},
			{ID: 2, ArtistName: "Sunset Rollercoaster"},
			{ID: 3, ArtistName: "Keith Moon"},
		},
		Albums: []models.AlbumCandidate{
			{ID: 10, Title: "Harvest Moon", CoverURL: strPtr("https://cdn.example/c10.jpg"), ArtistID: i64Ptr(1)},
			{ID: 11, Title: "Blue"},
		},
		Songs: []models.SongCandidate{
			{ID: 100, Title: "Moonlight Sonata", Duration: 900, AudioURL: "https://cdn.example/s100.mp3"},
			{ID: 101, Title: "Mood Ring", Duration: 200, AudioURL: "https://cdn.example/s101.mp3", AlbumID: i64Ptr(10)},
			{ID: 102, Title: "Fly Me to the Moon", Duration: 147},
			{ID: 103, Title: "100% Pure Love", Duration: 231},
			{ID: 104, Title: "snake_case blues", Duration: 180},
			{ID: 105, Title: "Caf\u00e9 del Mar", Duration: 360},
			{ID: 106, Title: "MOONDANCE", Duration: 271},
		},
	}
	if err := db.ApplySnapshot(context.Background(), snap, v1); err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}
}

func TestNew_FileDatabase(t *testing.T) {
	testDBSemaphore <- struct{}{}
	defer func() { <-testDBSemaphore }()

	path := filepath.Join(t.TempDir(), "nested", "catalog.duckdb")
	db, err := New(&config.DatabaseConfig{Path: path, MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := db.UpsertArtist(context.Background(), &models.ArtistCandidate{ID: 1, ArtistName: "Moonchild"}, v1); err != nil {
		t.Fatalf("UpsertArtist failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected database file at %s: %v", path, err)
	}

	// Reopen and confirm the row survived the checkpoint on close.
	db, err = New(&config.DatabaseConfig{Path: path, MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer db.Close()

	counts, err := db.CatalogCounts(context.Background())
	if err != nil {
		t.Fatalf("CatalogCounts failed: %v", err)
	}
	if counts.Artists != 1 {
		t.Errorf("Expected 1 artist after reopen, got %d", counts.Artists)
	}
}

func TestPingAndClose(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
	if db.Path() != MemoryPath {
		t.Errorf("Expected path %q, got %q", MemoryPath, db.Path())
	}
}

func TestEnsureContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := ensureContext(context.Background())
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Error("Expected a deadline on a bare context")
	}

	parent, parentCancel := context.WithTimeout(context.Background(), time.Second)
	defer parentCancel()
	ctx2, cancel2 := ensureContext(parent)
	defer cancel2()
	if ctx2 != parent {
		t.Error("Expected a context with a deadline to be returned unchanged")
	}
}
