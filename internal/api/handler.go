// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package api

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/songbird/internal/cache"
	"github.com/tomtom215/songbird/internal/config"
	"github.com/tomtom215/songbird/internal/models"
	"github.com/tomtom215/songbird/internal/search"
)

// Version is reported by the readiness endpoint. Overridden at build time.
var Version = "dev"

const defaultRequestTimeout = 30 * time.Second

// CatalogStatus is the part of the catalog store the readiness check uses.
type CatalogStatus interface {
	Ping(ctx context.Context) error
	CatalogCounts(ctx context.Context) (models.CatalogCounts, error)
}

// SyncStatus reports whether catalog synchronization is running.
type SyncStatus interface {
	IsRunning() bool
}

// Handler serves the HTTP endpoints.
type Handler struct {
	search    *search.Service
	db        CatalogStatus
	cache     *cache.Cache[*models.SearchResponse]
	config    *config.Config
	startTime time.Time

	mu          sync.RWMutex
	catalogSync SyncStatus
}

// NewHandler creates a handler. resultCache may be nil to disable result
// caching.
func NewHandler(svc *search.Service, db CatalogStatus, resultCache *cache.Cache[*models.SearchResponse], cfg *config.Config) *Handler {
	return &Handler{
		search:    svc,
		db:        db,
		cache:     resultCache,
		config:    cfg,
		startTime: time.Now(),
	}
}

// SetCatalogSync registers the catalog consumer for readiness reporting.
func (h *Handler) SetCatalogSync(s SyncStatus) {
	h.mu.Lock()
	h.catalogSync = s
	h.mu.Unlock()
}

func (h *Handler) catalogSyncRunning() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.catalogSync != nil && h.catalogSync.IsRunning()
}

func (h *Handler) catalogSyncEnabled() bool {
	return h.config != nil && h.config.NATS.Enabled
}

func (h *Handler) requestTimeout() time.Duration {
	if h.config != nil && h.config.Server.Timeout > 0 {
		return h.config.Server.Timeout
	}
	return defaultRequestTimeout
}
