// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package api

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/hunian/internal/logging"
	"github.com/tomtom215/hunian/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a new router. A nil chiMiddleware uses the defaults.
func NewRouter(handler *Handler, chiMiddleware *ChiMiddleware) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMiddleware,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(middleware.RequestID)             // X-Request-ID header and logging context
	r.Use(chimiddleware.RealIP)             // Extract real IP from X-Forwarded-For
	r.Use(recoverJSON)                      // Panics become {"error": ...} 500s
	r.Use(middleware.PrometheusMetrics)     // HTTP latency per route pattern
	r.Use(router.chiMiddleware.CORS())      // CORS headers for browser callers
	r.Use(router.chiMiddleware.Preflight()) // Every OPTIONS ends here with 204

	// ========================
	// Health and Metrics
	// ========================
	r.Get("/health/live", router.handler.HealthLive)
	r.Get("/health/ready", router.handler.HealthReady)
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Recommendations
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Post("/api/v1/recommendations", router.handler.Recommendations)
		r.Post("/", router.handler.Recommendations)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	return r
}

// recoverJSON is chi's Recoverer with the JSON error body every other
// failure uses.
func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			//nolint:errorlint // http.ErrAbortHandler is compared by identity, as net/http does
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			logging.Ctx(r.Context()).Error().
				Str("panic", fmt.Sprint(rvr)).
				Str("stack", string(debug.Stack())).
				Str("path", sanitizeLogValue(r.URL.Path)).
				Msg("Recovered from handler panic")

			if r.Header.Get("Connection") != "Upgrade" {
				respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
