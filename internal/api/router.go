// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/songbird/internal/auth"
	"github.com/tomtom215/songbird/internal/config"
	"github.com/tomtom215/songbird/internal/middleware"
)

// Router wires handlers to routes.
type Router struct {
	handler *Handler
	auth    *auth.Middleware
	chi     *ChiMiddleware
	config  *config.Config
}

// NewRouter creates a router. authMiddleware must not be nil; use
// auth.ModeNone to disable authentication.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, cfg *config.Config) *Router {
	return &Router{
		handler: handler,
		auth:    authMiddleware,
		chi:     NewChiMiddleware(ChiMiddlewareConfigFrom(&cfg.Security)),
		config:  cfg,
	}
}

// Setup builds the chi handler tree.
//
// Global middleware, outer to inner:
//  1. RequestID: request and correlation IDs for logging
//  2. TrustedRealIP: client IP from trusted proxies only
//  3. Recoverer: panics become 500s
//  4. CORS
//  5. AccessLog: one line per request, warn above server.slow_request
//  6. PrometheusMetrics
//
// Search routes add per-IP rate limiting, security headers and
// authentication. Health, metrics and swagger routes are unauthenticated.
// JSON routes are gzipped by Compression; promhttp compresses /metrics
// itself.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(TrustedRealIP(rt.config.Security.TrustedProxies))
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.chi.CORS())
	r.Use(middleware.AccessLog(rt.config.Server.SlowRequest))
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	h := rt.handler

	r.Group(func(r chi.Router) {
		r.Use(rt.chi.RateLimitCustom(RateLimitHealth))
		r.Use(middleware.Compression)
		r.Get("/health", h.Health)
		r.Get("/api/v1/health/ready", h.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Group(func(r chi.Router) {
		r.Use(rt.chi.RateLimit())
		r.Use(middleware.Compression)
		r.Use(APISecurityHeaders())
		r.Use(rt.auth.Authenticate)

		r.Get("/api/v1/search", h.Search)
		// Path used by existing mobile clients.
		r.Get("/search", h.Search)
	})

	return r
}
