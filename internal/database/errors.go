// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/hunian/internal/logging"
)

var (
	// ErrCircuitOpen is returned without touching DuckDB while the breaker is open
	// or the half-open probe budget is exhausted.
	ErrCircuitOpen = errors.New("database circuit breaker open")

	// ErrClosed is returned by operations on a closed DB.
	ErrClosed = errors.New("database connection is nil")
)

// closeWithLog closes a resource and logs any error
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
