// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps the validator library in a thread-safe singleton that
// reports field names by their JSON tag and translates failures into short,
// human-readable messages suitable for the API's {"error": "..."} body.
//
// # Custom Tags
//
//   - entityid: an opaque identifier (user, session or filter id). Printable
//     ASCII without whitespace. Empty values should be paired with omitempty.
//
// # Usage
//
//	type RecommendationRequest struct {
//	    UserID string `json:"userId" validate:"omitempty,max=128,entityid"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, http.StatusBadRequest, verr.Error())
//	    return
//	}
package validation
