// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package search

import (
	"cmp"
	"slices"
	"strings"
)

// FilterAndRank scores candidates against query, drops those below
// threshold, and returns at most limit survivors ordered by descending
// score.
//
// The sort is stable: candidates with equal scores keep the order the
// provider returned them in. Candidates with empty search text are skipped
// without being scored. Nil candidates are skipped.
func FilterAndRank(query string, candidates []Candidate, score ScoreFunc, threshold, limit int) []Scored {
	if limit <= 0 || len(candidates) == 0 {
		return []Scored{}
	}

	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		text, ok := searchText(c)
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		s := score(query, text)
		if s < threshold {
			continue
		}
		scored = append(scored, Scored{Candidate: c, Score: s})
	}

	slices.SortStableFunc(scored, func(a, b Scored) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// searchText reads c's search text, reporting false for nil candidates and
// for typed nil pointers whose value-receiver accessor would panic.
func searchText(c Candidate) (text string, ok bool) {
	if c == nil {
		return "", false
	}
	defer func() {
		if recover() != nil {
			text, ok = "", false
		}
	}()
	return c.SearchText(), true
}
