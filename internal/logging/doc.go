// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

// Package logging provides the process-wide zerolog logger for Hunian.
//
// All packages log through this package instead of the standard library
// log package. JSON output is the default; console output is available for
// local development.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", addr).Msg("listening")
//	logging.Ctx(ctx).Warn().Err(err).Msg("strategy failed")
//
// # Request Context
//
// HTTP middleware stores a request ID and a short correlation ID in the
// request context. Ctx(ctx) returns a logger carrying both fields so that
// every line emitted while serving one recommendation request can be
// grouped together.
//
// # Supervisor Integration
//
// NewSlogLogger returns an slog.Logger backed by the same zerolog output,
// which sutureslog needs for supervisor events.
//
// Always terminate event chains with Msg or Send; an unterminated chain is
// never written.
package logging
