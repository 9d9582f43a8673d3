// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestEntityKind_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind EntityKind
		want bool
	}{
		{EntitySong, true},
		{EntityAlbum, true},
		{EntityArtist, true},
		{"playlist", false},
		{"", false},
		{"Song", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			if got := tt.kind.Valid(); got != tt.want {
				t.Errorf("Expected Valid() = %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCandidates_SearchText(t *testing.T) {
	t.Parallel()

	song := SongCandidate{ID: 1, Title: "Moonwalk"}
	album := AlbumCandidate{ID: 2, Title: "Harvest Moon"}
	artist := ArtistCandidate{ID: 3, ArtistName: "Moonchild"}

	if song.Kind() != EntitySong || song.SearchText() != "Moonwalk" {
		t.Errorf("Expected song/Moonwalk, got %s/%s", song.Kind(), song.SearchText())
	}
	if album.Kind() != EntityAlbum || album.SearchText() != "Harvest Moon" {
		t.Errorf("Expected album/Harvest Moon, got %s/%s", album.Kind(), album.SearchText())
	}
	if artist.Kind() != EntityArtist || artist.SearchText() != "Moonchild" {
		t.Errorf("Expected artist/Moonchild, got %s/%s", artist.Kind(), artist.SearchText())
	}
}

func TestSearchResponse_WireFormat(t *testing.T) {
	t.Parallel()

	resp := SearchResponse{
		Songs:    EntityPage[SongResult]{Page: 1, Results: []SongResult{}},
		Albums:   EntityPage[AlbumResult]{Page: 2, Results: []AlbumResult{{ID: 4, Title: "Harvest Moon"}}},
		Artists:  EntityPage[ArtistResult]{Page: 1, Results: []ArtistResult{}},
		Degraded: []EntityKind{EntityArtist},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got := string(data)

	for _, want := range []string{
		`"songs":{"page":1,"results":[]}`,
		`"albums":{"page":2,"results":[{"id":4,"title":"Harvest Moon","cover_url":null}]}`,
		`"artists":{"page":1,"results":[]}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %s in %s", want, got)
		}
	}
	if strings.Contains(got, "degraded") || strings.Contains(got, "Degraded") {
		t.Errorf("Expected degraded collections to stay off the wire, got %s", got)
	}
}

func TestCatalogSnapshot_Decode(t *testing.T) {
	t.Parallel()

	raw := `{
		"artists": [{"id": 1, "artist_name": "Moonchild", "bio": "Neo-soul trio", "user_id": 9}],
		"albums": [{"id": 2, "title": "Little Ghost", "artist_id": 1}],
		"songs": [{"id": 3, "title": "Too Much to Ask", "duration": 214, "audio_url": "https://cdn.example/3.mp3", "album_id": 2}]
	}`

	var snap CatalogSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(snap.Artists) != 1 || len(snap.Albums) != 1 || len(snap.Songs) != 1 {
		t.Fatalf("Expected one record per collection, got %+v", snap)
	}
	if snap.Artists[0].UserID == nil || *snap.Artists[0].UserID != 9 {
		t.Errorf("Expected artist user_id 9, got %v", snap.Artists[0].UserID)
	}
	if snap.Songs[0].AlbumID == nil || *snap.Songs[0].AlbumID != 2 {
		t.Errorf("Expected song album_id 2, got %v", snap.Songs[0].AlbumID)
	}
}
