// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

// Package auth authenticates search API callers.
//
// Three modes are selected with AUTH_MODE:
//   - jwt (default): HS256 tokens issued by the platform's auth service,
//     read from "Authorization: Bearer <token>" or the token cookie.
//     Claims carry user_id and role.
//   - basic: one operator account (ADMIN_USERNAME / ADMIN_PASSWORD),
//     verified against a bcrypt hash.
//   - none: no authentication; rejected in production.
//
// Failures return 401 with the standard error envelope and code
// UNAUTHORIZED. Handlers read the caller with ClaimsFromContext.
package auth
