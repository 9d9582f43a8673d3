// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package search

import (
	"context"

	"github.com/tomtom215/songbird/internal/models"
)

// Provider fetches candidates whose search text contains query
// (case-insensitive), skipping offset matches and returning at most limit
// in stable storage order. Providers are read-only.
type Provider interface {
	Fetch(ctx context.Context, query string, limit, offset int) ([]Candidate, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, query string, limit, offset int) ([]Candidate, error)

// Fetch implements Provider.
func (f ProviderFunc) Fetch(ctx context.Context, query string, limit, offset int) ([]Candidate, error) {
	return f(ctx, query, limit, offset)
}

// Providers holds one Provider per collection.
type Providers struct {
	Songs   Provider
	Albums  Provider
	Artists Provider
}

// For returns the provider for kind, or nil for an unknown kind.
func (p Providers) For(kind models.EntityKind) Provider {
	switch kind {
	case models.EntitySong:
		return p.Songs
	case models.EntityAlbum:
		return p.Albums
	case models.EntityArtist:
		return p.Artists
	}
	return nil
}

// CatalogStore is the storage collaborator backing the providers.
// *database.DB satisfies it.
type CatalogStore interface {
	SearchSongs(ctx context.Context, query string, limit, offset int) ([]models.SongCandidate, error)
	SearchAlbums(ctx context.Context, query string, limit, offset int) ([]models.AlbumCandidate, error)
	SearchArtists(ctx context.Context, query string, limit, offset int) ([]models.ArtistCandidate, error)
}

// NewCatalogProviders builds the three providers over a catalog store.
func NewCatalogProviders(store CatalogStore) Providers {
	return Providers{
		Songs: ProviderFunc(func(ctx context.Context, query string, limit, offset int) ([]Candidate, error) {
			rows, err := store.SearchSongs(ctx, query, limit, offset)
			if err != nil {
				return nil, err
			}
			return asCandidates(rows), nil
		}),
		Albums: ProviderFunc(func(ctx context.Context, query string, limit, offset int) ([]Candidate, error) {
			rows, err := store.SearchAlbums(ctx, query, limit, offset)
			if err != nil {
				return nil, err
			}
			return asCandidates(rows), nil
		}),
		Artists: ProviderFunc(func(ctx context.Context, query string, limit, offset int) ([]Candidate, error) {
			rows, err := store.SearchArtists(ctx, query, limit, offset)
			if err != nil {
				return nil, err
			}
			return asCandidates(rows), nil
		}),
	}
}
