// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for the admin password hash.
const bcryptCost = 12

// BasicAuthManager verifies HTTP Basic credentials against one configured
// account.
type BasicAuthManager struct {
	username     string
	passwordHash []byte
}

// NewBasicAuthManager hashes password once so requests only pay for the
// comparison.
func NewBasicAuthManager(username, password string) (*BasicAuthManager, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &BasicAuthManager{username: username, passwordHash: hash}, nil
}

// Validate reports whether the credentials match. Both comparisons always
// run so response time does not reveal a valid username.
func (m *BasicAuthManager) Validate(username, password string) bool {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(m.username)) == 1
	passwordMatch := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)) == nil
	return usernameMatch && passwordMatch
}

// Username returns the configured account name.
func (m *BasicAuthManager) Username() string {
	return m.username
}

// Challenge is the WWW-Authenticate value sent with 401 responses.
const Challenge = `Basic realm="Songbird", charset="UTF-8"`
