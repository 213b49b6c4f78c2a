// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

/*
Package middleware provides HTTP middleware components shared by the API router.

Key Components:

  - RequestID: UUID-based request tracking, propagated into the logging context
  - PrometheusMetrics: HTTP request/response instrumentation keyed by route pattern

Both are standard func(http.Handler) http.Handler middlewares and compose with
the chi router:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

PrometheusMetrics labels requests by the chi route pattern (for example
"/api/v1/recommendations") rather than the raw path, which keeps label
cardinality bounded. Requests that match no route are labelled "unmatched".
*/
package middleware
