// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package search

import (
	"fmt"
	"strings"
)

// Strategy names accepted by NewStrategy and the search.strategy setting.
const (
	StrategyPartialRatio = "partial_ratio"
	StrategyLevenshtein  = "levenshtein"
)

// Strategy ranks one collection's candidates for a query. The orchestrator
// depends only on this interface, so alternative ranking algorithms can be
// substituted without touching it.
type Strategy interface {
	// Name identifies the strategy in logs, metrics and cache keys.
	Name() string

	// Rank returns at most limit candidates scoring at least threshold,
	// ordered by descending score with input order breaking ties.
	Rank(query string, candidates []Candidate, threshold, limit int) []Scored
}

// scoringStrategy ranks with FilterAndRank over a fixed ScoreFunc.
type scoringStrategy struct {
	name  string
	score ScoreFunc
}

func (s scoringStrategy) Name() string { return s.name }

func (s scoringStrategy) Rank(query string, candidates []Candidate, threshold, limit int) []Scored {
	return FilterAndRank(query, candidates, s.score, threshold, limit)
}

// NewScoringStrategy builds a Strategy from any ScoreFunc.
func NewScoringStrategy(name string, score ScoreFunc) Strategy {
	return scoringStrategy{name: name, score: score}
}

// PartialRatioStrategy is the default strategy.
func PartialRatioStrategy() Strategy {
	return NewScoringStrategy(StrategyPartialRatio, PartialRatio)
}

// LevenshteinStrategy ranks by whole-string edit distance with a
// containment boost. It is stricter than partial ratio for short queries
// against long titles.
func LevenshteinStrategy() Strategy {
	return NewScoringStrategy(StrategyLevenshtein, LevenshteinSimilarity)
}

// NewStrategy resolves a strategy by name. An empty name selects the default.
func NewStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyPartialRatio:
		return PartialRatioStrategy(), nil
	case StrategyLevenshtein:
		return LevenshteinStrategy(), nil
	default:
		return nil, fmt.Errorf("unknown search strategy %q (expected %s or %s)",
			name, StrategyPartialRatio, StrategyLevenshtein)
	}
}
