// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package search

import (
	"testing"
)

func TestNewStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", StrategyPartialRatio, false},
		{"partial_ratio", StrategyPartialRatio, false},
		{"  Levenshtein ", StrategyLevenshtein, false},
		{"phonetic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			s, err := NewStrategy(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.Name() != tt.want {
				t.Errorf("Expected strategy %s, got %s", tt.want, s.Name())
			}
		})
	}
}

func TestStrategies_RankDiffer(t *testing.T) {
	t.Parallel()

	candidates := songs("Yesterday", "The Beatles")

	pr := PartialRatioStrategy().Rank("beatls", candidates, 70, 5)
	if len(pr) != 1 || pr[0].Candidate.SearchText() != "The Beatles" {
		t.Errorf("Expected partial ratio to keep only The Beatles, got %v", titlesOf(pr))
	}

	lev := LevenshteinStrategy().Rank("beatls", candidates, 70, 5)
	if len(lev) != 0 {
		t.Errorf("Expected levenshtein to reject short query against long title, got %v", titlesOf(lev))
	}
}

func TestNewScoringStrategy(t *testing.T) {
	t.Parallel()

	s := NewScoringStrategy("constant", func(_, _ string) int { return 75 })
	if s.Name() != "constant" {
		t.Errorf("Expected name constant, got %s", s.Name())
	}
	got := s.Rank("x", songs("a", "b", "c"), 70, 2)
	if len(got) != 2 {
		t.Errorf("Expected 2 results, got %d", len(got))
	}
}
