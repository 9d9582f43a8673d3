// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package eventprocessor

import "errors"

// ErrInvalidConfig is returned when configuration is invalid.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("publisher is closed")

// ValidationError describes the first invalid field of a catalog event.
// Events failing validation are never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid event: " + e.Field + ": " + e.Message
}

// IsValidationError reports whether err marks a malformed event.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
