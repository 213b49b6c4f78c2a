// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

// Package recommend implements the related-property recommendation engine.
//
// # Architecture
//
// A request is answered by a cascade of candidate strategies tried in
// priority order:
//
//   - interaction: collaborative filtering over users whose touched
//     properties overlap the requester's (needs a user id)
//   - filter_sequence: properties matching the searches people most often
//     ran after the requester's current filter (needs a filter id)
//   - trending: properties favorited most in the trailing window, falling
//     back to the newest listings (always applies, terminal)
//
// The first strategy that yields a non-empty list wins and its name is
// returned as the response strategy tag.
//
// # Seen Set
//
// Before any strategy runs, the Aggregator collects the requester's seen
// set: property ids from their newest interactions plus all favorites. No
// returned candidate is ever a member of the seen set, and every returned
// property is approved. The engine enforces both after each strategy.
//
// # Error Boundaries
//
// Each strategy runs inside its own boundary. Errors and panics from a
// non-terminal strategy are logged and counted, and the cascade moves on.
// Only a failure of the terminal strategy is returned to the caller.
// Context cancellation always aborts the request.
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, store, logger)
//	engine.RegisterStrategies(algorithms.Cascade(store, cfg)...)
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    UserID:          "u-42",
//	    CurrentFilterID: "f-7",
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. It keeps no per-request state
// between calls; strategies are registered once at startup.
//
// Algorithms live in the algorithms subpackage.
package recommend
