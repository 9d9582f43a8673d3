// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

/*
Package search implements the multi-entity fuzzy search engine.

A search call runs three independent pipelines, one each for songs, albums
and artists:

	Provider.Fetch -> Strategy.Rank -> Serialize -> EntityPage

Providers return a superset of candidates by case-insensitive substring
match, over-fetching by FetchMultiplier so fuzzy filtering does not leave
pages under-filled. The ranking strategy scores each candidate's search
text, drops those under the threshold, stable-sorts the rest by descending
score and truncates to the page size. Candidates with equal scores keep
provider order.

# Scoring

PartialRatio is the default scorer. It aligns the shorter input against
every window of the longer one and scores the best window by Indel
similarity. Inputs are lower-cased and NFC-normalized before comparison.
Empty input scores 0, and strings equal after normalization score 100.

LevenshteinSimilarity is available as an alternative strategy through
NewStrategy("levenshtein").

# Failure Isolation

Each pipeline fails independently. A provider error becomes
{page: 1, results: []} for that collection, is logged and counted, and is
reported in SearchResponse.Degraded. Search returns an error only for
ErrInvalidQuery, ErrInvalidLimit, ErrInvalidPage or cancellation of the
caller's context.

# Usage

	providers := search.NewCatalogProviders(db)
	providers.Albums = search.WithBreaker(models.EntityAlbum, providers.Albums, search.DefaultBreakerConfig())
	svc, err := search.NewService(providers, nil, search.DefaultConfig())
	if err != nil {
	    return err
	}
	resp, err := svc.Search(ctx, search.Request{Query: "moon", Limit: 5})
*/
package search
