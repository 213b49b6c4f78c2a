// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

// Package algorithms implements the candidate strategies of the recommendation cascade.
//
// Each strategy implements recommend.Strategy and reads the store through
// recommend.DataProvider. Strategies hold no mutable state; all aggregation
// happens in per-request maps.
//
// # Strategies
//
// Collaborative ("interaction"):
//   - Finds users who touched at least MinOverlap of the requester's seen
//     properties, keeps the MaxNeighbors most similar, and scores the
//     properties they touched by overlap (favorites weighted higher).
//
// FilterSequence ("filter_sequence"):
//   - Counts which filters people ran right after the current one and
//     returns properties matching the most frequent follow-ups.
//
// Trending ("trending"):
//   - Ranks properties by favorites in the trailing window. Falls back to the
//     newest listings on a cold catalog.
//
// # Determinism
//
// Every ranking has a total order (see the individual strategies), so two
// identical requests against an unchanged store return identical results.
//
// # Usage
//
//	engine.RegisterStrategies(algorithms.Cascade(store, cfg)...)
package algorithms
