// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package api

import (
	"context"
	"time"

	"github.com/tomtom215/hunian/internal/config"
	"github.com/tomtom215/hunian/internal/recommend"
)

// Recommender produces a ranked list for one request. *recommend.Engine
// implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// StoreHealth is the part of the store the readiness probe needs.
// *database.DB implements it.
type StoreHealth interface {
	Ping(ctx context.Context) error
	BreakerState() string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_recommend.go: the recommendation endpoint
//   - handlers_health.go: liveness and readiness probes
//   - handlers_helpers.go: JSON encoding, decoding and error mapping
type Handler struct {
	recommender    Recommender
	store          StoreHealth
	requestTimeout time.Duration
	maxBodyBytes   int64
	version        string
	startTime      time.Time
}

// NewHandler creates a new API handler. store may be nil, in which case the
// readiness probe only reports liveness.
func NewHandler(recommender Recommender, store StoreHealth, cfg *config.ServerConfig, version string) *Handler {
	h := &Handler{
		recommender:    recommender,
		store:          store,
		requestTimeout: 10 * time.Second,
		maxBodyBytes:   64 << 10,
		version:        version,
		startTime:      time.Now(),
	}
	if cfg != nil {
		if cfg.RequestTimeout > 0 {
			h.requestTimeout = cfg.RequestTimeout
		}
		if cfg.MaxBodyBytes > 0 {
			h.maxBodyBytes = cfg.MaxBodyBytes
		}
	}
	return h
}
