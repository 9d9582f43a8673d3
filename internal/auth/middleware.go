// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/songbird/internal/config"
	"github.com/tomtom215/songbird/internal/logging"
	"github.com/tomtom215/songbird/internal/models"
)

// Mode selects how requests are authenticated.
type Mode string

const (
	ModeNone  Mode = "none"
	ModeJWT   Mode = "jwt"
	ModeBasic Mode = "basic"
)

// TokenCookie is the cookie checked when no Authorization header is sent.
const TokenCookie = "token"

type contextKey string

const claimsContextKey contextKey = "claims"

// ContextWithClaims stores claims in ctx.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext returns the authenticated caller's claims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// Middleware authenticates API requests.
type Middleware struct {
	mode  Mode
	jwt   *JWTManager
	basic *BasicAuthManager
}

// NewMiddleware creates the middleware for mode. The manager for the
// selected mode must be non-nil.
func NewMiddleware(mode Mode, jwtManager *JWTManager, basicManager *BasicAuthManager) (*Middleware, error) {
	switch mode {
	case ModeNone:
	case ModeJWT:
		if jwtManager == nil {
			return nil, fmt.Errorf("jwt auth mode requires a JWT manager")
		}
	case ModeBasic:
		if basicManager == nil {
			return nil, fmt.Errorf("basic auth mode requires credentials")
		}
	default:
		return nil, fmt.Errorf("unknown auth mode %q", mode)
	}
	return &Middleware{mode: mode, jwt: jwtManager, basic: basicManager}, nil
}

// NewMiddlewareFromConfig builds the managers the configured mode needs.
func NewMiddlewareFromConfig(cfg *config.SecurityConfig) (*Middleware, error) {
	mode := Mode(cfg.AuthMode)
	var (
		jwtManager   *JWTManager
		basicManager *BasicAuthManager
		err          error
	)
	switch mode {
	case ModeJWT:
		if jwtManager, err = NewJWTManager(cfg); err != nil {
			return nil, err
		}
	case ModeBasic:
		if basicManager, err = NewBasicAuthManager(cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return nil, fmt.Errorf("basic auth: %w", err)
		}
	}
	return NewMiddleware(mode, jwtManager, basicManager)
}

// Mode returns the configured mode.
func (m *Middleware) Mode() Mode {
	return m.mode
}

// Authenticate rejects unauthenticated requests with 401 and stores the
// caller's claims in the request context otherwise.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			claims *Claims
			err    error
		)
		switch m.mode {
		case ModeNone:
			next.ServeHTTP(w, r)
			return
		case ModeBasic:
			claims, err = m.authenticateBasic(r)
			if err != nil {
				w.Header().Set("WWW-Authenticate", Challenge)
			}
		default:
			claims, err = m.authenticateJWT(r)
		}

		if err != nil {
			logging.CtxWarn(r.Context()).
				Err(err).
				Str("auth_mode", string(m.mode)).
				Str("path", r.URL.Path).
				Msg("Authentication failed")
			writeUnauthorized(w, err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

func (m *Middleware) authenticateJWT(r *http.Request) (*Claims, error) {
	token, err := extractToken(r)
	if err != nil {
		return nil, err
	}
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func (m *Middleware) authenticateBasic(r *http.Request) (*Claims, error) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, fmt.Errorf("authentication required")
	}
	if !m.basic.Validate(username, password) {
		return nil, fmt.Errorf("invalid credentials")
	}
	return &Claims{Username: username, Role: "admin"}, nil
}

// extractToken reads a Bearer token, falling back to the token cookie.
func extractToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		cookie, err := r.Cookie(TokenCookie)
		if err != nil || cookie.Value == "" {
			return "", fmt.Errorf("missing token")
		}
		return cookie.Value, nil
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("invalid authorization header")
	}
	return strings.TrimSpace(token), nil
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    "UNAUTHORIZED",
			Message: "Unauthorized: " + message,
		},
	})
}
