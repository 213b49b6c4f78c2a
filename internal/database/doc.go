// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

/*
Package database provides DuckDB-backed storage for the recommendation read model.

The DB type implements recommend.DataProvider. Every read is guarded by a
circuit breaker (sony/gobreaker) and bounded by the configured per-query
timeout, and each call records latency and error metrics.

# Tables

  - properties: listings; only status = 'approved' rows are ever returned
    by recommendation reads
  - user_interactions: view, click, inquiry and search events
  - favorites: one row per (user, property)
  - filter_usage: the criteria of each saved search filter
  - filter_sequences: consecutive filter pairs run within a session

The tables are owned upstream. The write helpers (UpsertProperty,
RecordInteraction, AddFavorite, SaveFilterUsage, RecordFilterTransition)
and SeedDemoData exist for local runs, the CLI and tests.

# Usage

	db, err := database.New(&cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

	engine, err := recommend.NewEngine(recCfg, db, logger)

# Circuit Breaker

The breaker opens after BreakerFailureThreshold consecutive failures and
lets BreakerHalfOpenRequests probes through after BreakerOpenTimeout.
While open, reads fail immediately with ErrCircuitOpen. Cancelled contexts
and missing rows do not count as failures.

# Testing

Tests use ":memory:" databases (MemoryPath) and serialize DuckDB access
with a package-level semaphore.
*/
package database
