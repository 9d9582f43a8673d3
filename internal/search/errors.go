// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

package search

import (
	"errors"
	"fmt"

	"github.com/tomtom215/songbird/internal/models"
)

// Caller-visible request errors. These are the only failures Search returns
// besides cancellation of the caller's context.
var (
	ErrInvalidQuery = errors.New("invalid search query")
	ErrInvalidLimit = errors.New("invalid search limit")
	ErrInvalidPage  = errors.New("invalid search page")
)

// RetrievalError reports that candidates for one collection could not be
// fetched. Search converts it to an empty page for that collection only.
type RetrievalError struct {
	Entity models.EntityKind
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve %s candidates: %v", e.Entity, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// ShapeError reports a candidate whose concrete type does not belong to the
// collection it is being serialized for.
type ShapeError struct {
	Expected models.EntityKind
	Got      string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("malformed %s record: got %s", e.Expected, e.Got)
}

// IsRequestError reports whether err was caused by invalid search input.
func IsRequestError(err error) bool {
	return errors.Is(err, ErrInvalidQuery) ||
		errors.Is(err, ErrInvalidLimit) ||
		errors.Is(err, ErrInvalidPage)
}

// asRetrievalError wraps err for kind unless it already carries one.
func asRetrievalError(kind models.EntityKind, err error) *RetrievalError {
	var rerr *RetrievalError
	if errors.As(err, &rerr) {
		return rerr
	}
	return &RetrievalError{Entity: kind, Err: err}
}
