// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and are
exposed by the API router at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation Metrics:
  - hunian_strategy_outcomes_total: Strategy attempts (counter)
    Labels: strategy, outcome (hit, empty, error, skipped)
  - hunian_strategy_duration_seconds: Time spent inside one strategy (histogram)
    Labels: strategy
  - hunian_recommendations_served_total: Requests answered, by winning strategy (counter)
    Labels: strategy
  - hunian_recommendation_candidates: Items returned per response (histogram)

HTTP Metrics:
  - hunian_api_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status
  - hunian_api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - hunian_api_active_requests: In-flight requests (gauge)

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type
  - duckdb_circuit_breaker_state: 0 closed, 1 half-open, 2 open (gauge)

System Metrics:
  - hunian_app_info: Version and Go runtime (gauge)

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", "favorites", time.Since(start), err)

	metrics.RecordStrategyOutcome("trending", metrics.OutcomeHit, elapsed)

# Thread Safety

All functions are safe for concurrent use; the Prometheus client handles
synchronization internally.
*/
package metrics
