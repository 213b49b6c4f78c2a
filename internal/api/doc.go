// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

/*
Package api provides the HTTP surface of the recommendation service.

Routes:

	POST /api/v1/recommendations   ranked related properties
	POST /                         alias of the above
	GET  /health/live              liveness, always 200
	GET  /health/ready             readiness, pings the store
	GET  /metrics                  Prometheus exposition

Request body (every field optional, an empty body equals {}):

	{"currentFilterId": "...", "sessionId": "...", "userId": "...", "k": 5}

The response carries the list and the strategy that produced it:

	{"recommendations": [...], "strategy": "interaction"}

Errors are always {"error": "..."}:

	400  malformed JSON or an invalid field
	413  body larger than server.max_body_bytes
	429  per-IP rate limit exceeded
	500  the terminal strategy failed
	504  the request deadline expired

Every OPTIONS request is answered with 204, an empty body and permissive CORS
headers, whether or not it is a real preflight.

Usage:

	handler := api.NewHandler(engine, db, &cfg.Server, version)
	mw := api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security))
	srv := &http.Server{Handler: api.NewRouter(handler, mw).Setup()}
*/
package api
