// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package database

import (
	"errors"
	"io"

	"github.com/robleto/reawarding/internal/logging"
)

var (
	// ErrAuthRequired is returned when a write requires an authenticated
	// user and none was supplied.
	ErrAuthRequired = errors.New("authenticated user required")

	// ErrMovieNotFound is returned when a movie ID does not exist.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrNominationsNotFound is returned when no curated nominations exist
	// for a (user, year) pair.
	ErrNominationsNotFound = errors.New("nominations not found")

	// ErrInvalidNominations is returned when a nominations save violates
	// the nominee constraints (too many nominees, or a winner outside the
	// nominee list).
	ErrInvalidNominations = errors.New("invalid nominations")
)

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}

// closeWithLog closes a resource and logs any error
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}
