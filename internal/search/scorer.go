// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package search

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/unicode/norm"
)

// ScoreFunc computes a similarity score in [0,100] between a query and a
// candidate's search text. Implementations must be pure and must return 0
// when either input is empty.
type ScoreFunc func(query, text string) int

// normalize lower-cases s and composes it to NFC so that precomposed and
// decomposed accents compare equal.
func normalize(s string) []rune {
	return []rune(norm.NFC.String(strings.ToLower(s)))
}

// PartialRatio scores the best alignment of the shorter string against any
// window of the longer one.
//
// Each window is scored by Indel similarity, 200*LCS/(len(a)+len(b)), and
// the result is floored so that an integer threshold admits exactly the
// alignments whose real-valued score reaches it. Windows include the
// partial prefixes and suffixes of the longer string, so a needle that
// overhangs either edge still aligns. Inputs of equal length are aligned in
// both directions.
//
// Empty input on either side scores 0. Strings equal after lower-casing
// score 100.
func PartialRatio(query, text string) int {
	a, b := normalize(query), normalize(text)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	best := partialRatioShortNeedle(a, b)
	if best < 100 && len(a) == len(b) {
		best = max(best, partialRatioShortNeedle(b, a))
	}
	return best
}

// partialRatioShortNeedle slides needle over every window of haystack.
// len(needle) must not exceed len(haystack).
func partialRatioShortNeedle(needle, haystack []rune) int {
	m, n := len(needle), len(haystack)

	inNeedle := make(map[rune]struct{}, m)
	for _, r := range needle {
		inNeedle[r] = struct{}{}
	}

	prev := make([]int, m+1)
	cur := make([]int, m+1)
	best := 0

	score := func(window []rune) bool {
		lcs := lcsLength(needle, window, prev, cur)
		if s := 200 * lcs / (m + len(window)); s > best {
			best = s
		}
		return best == 100
	}

	// A window whose trailing rune (or leading rune, for suffixes) is absent
	// from the needle scores no better than the window without it.
	for i := 1; i < m; i++ {
		if _, ok := inNeedle[haystack[i-1]]; !ok {
			continue
		}
		if score(haystack[:i]) {
			return best
		}
	}
	for i := 0; i <= n-m; i++ {
		if _, ok := inNeedle[haystack[i+m-1]]; !ok {
			continue
		}
		if score(haystack[i : i+m]) {
			return best
		}
	}
	for i := n - m + 1; i < n; i++ {
		if _, ok := inNeedle[haystack[i]]; !ok {
			continue
		}
		if score(haystack[i:]) {
			return best
		}
	}
	return best
}

// lcsLength returns the length of the longest common subsequence of a and
// b. prev and cur are scratch rows of at least len(b)+1 entries.
func lcsLength(a, b []rune, prev, cur []int) int {
	for j := 0; j <= len(b); j++ {
		prev[j] = 0
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = 0
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// LevenshteinSimilarity scores whole-string edit distance normalized by the
// longer input. A query contained in the text scores 100.
func LevenshteinSimilarity(query, text string) int {
	q := norm.NFC.String(strings.ToLower(query))
	t := norm.NFC.String(strings.ToLower(text))
	if q == "" || t == "" {
		return 0
	}
	if strings.Contains(t, q) {
		return 100
	}

	longest := max(utf8.RuneCountInString(q), utf8.RuneCountInString(t))
	dist := fuzzy.LevenshteinDistance(q, t)
	if dist >= longest {
		return 0
	}
	return 100 * (longest - dist) / longest
}
