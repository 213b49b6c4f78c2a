// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/hunian/internal/config"
	"github.com/tomtom215/hunian/internal/logging"
	"github.com/tomtom215/hunian/internal/metrics"
)

const breakerName = "duckdb"

// newBreaker builds the breaker guarding every recommendation read.
// It trips after BreakerFailureThreshold consecutive failures and probes
// again after BreakerOpenTimeout.
func newBreaker(cfg *config.DatabaseConfig) *gobreaker.CircuitBreaker[any] {
	threshold := cfg.BreakerFailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	halfOpen := cfg.BreakerHalfOpenRequests
	if halfOpen == 0 {
		halfOpen = 1
	}

	metrics.SetCircuitBreakerState(metrics.BreakerClosed)

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: halfOpen,
		Timeout:     cfg.BreakerOpenTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= threshold
			if trip {
				logging.Warn().
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening database circuit")
			}
			return trip
		},

		// Abandoned requests and missing rows say nothing about DuckDB health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, sql.ErrNoRows)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.SetCircuitBreakerState(stateToMetric(to))
		},
	})
}

func stateToMetric(state gobreaker.State) int {
	switch state {
	case gobreaker.StateOpen:
		return metrics.BreakerOpen
	case gobreaker.StateHalfOpen:
		return metrics.BreakerHalfOpen
	default:
		return metrics.BreakerClosed
	}
}

// BreakerState reports the current breaker state ("closed", "half-open", "open").
func (db *DB) BreakerState() string {
	return db.breaker.State().String()
}

// run executes fn under the breaker and the per-query timeout, recording
// latency and error metrics under operation and table.
func run[T any](ctx context.Context, db *DB, operation, table string, fn func(ctx context.Context, conn *sql.DB) (T, error)) (T, error) {
	var zero T
	if db.conn == nil {
		return zero, ErrClosed
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	result, err := db.breaker.Execute(func() (any, error) {
		return fn(ctx, db.conn)
	})
	metrics.RecordDBQuery(operation, table, time.Since(start), err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%s: %w", operation, ErrCircuitOpen)
		}
		return zero, fmt.Errorf("%s: %w", operation, err)
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%s: unexpected result type %T", operation, result)
	}
	return typed, nil
}
