// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/songbird/internal/logging"
	"github.com/tomtom215/songbird/internal/models"
)

const readinessTimeout = 2 * time.Second

// Health is the liveness probe. It only reports that the process serves
// HTTP.
//
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Process is alive"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthReady is the readiness probe. It returns 503 while the catalog
// store is unreachable. A stopped catalog consumer marks the service
// degraded but still ready, since searches keep working on the current
// catalog.
//
// @Summary Readiness probe
// @Description Checks catalog store connectivity and reports catalog size, ranking strategy, catalog sync state and uptime
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Service ready"
// @Failure 503 {object} models.APIResponse{data=models.HealthStatus} "Catalog store unavailable"
// @Router /api/v1/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	health := models.HealthStatus{
		Status:      "healthy",
		Version:     Version,
		Strategy:    h.search.Strategy().Name(),
		CatalogSync: h.catalogSyncRunning(),
		Uptime:      time.Since(h.startTime).Seconds(),
	}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			logging.CtxWarn(r.Context()).Err(err).Msg("Readiness check: catalog store ping failed")
		} else {
			health.DatabaseConnected = true
		}
	}

	if health.DatabaseConnected {
		counts, err := h.db.CatalogCounts(ctx)
		if err != nil {
			logging.CtxWarn(r.Context()).Err(err).Msg("Readiness check: catalog counts failed")
		}
		health.Catalog = counts
	}

	status := http.StatusOK
	switch {
	case !health.DatabaseConnected:
		health.Status = "unavailable"
		status = http.StatusServiceUnavailable
	case h.catalogSyncEnabled() && !health.CatalogSync:
		health.Status = "degraded"
	}

	resp := &models.APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now()},
	}
	if status != http.StatusOK {
		resp.Status = "error"
		resp.Error = &models.APIError{
			Code:    ErrCodeServiceUnavailable,
			Message: "Catalog store unavailable",
		}
	}
	respondJSON(w, status, resp)
}
