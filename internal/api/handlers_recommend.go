// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/hunian/internal/logging"
	"github.com/tomtom215/hunian/internal/recommend"
	"github.com/tomtom215/hunian/internal/validation"
)

// Recommendations handles POST /api/v1/recommendations and its root alias.
//
// The body names the visitor and what they are looking at. The response is
// the first non-empty list of the strategy cascade, tagged with the strategy
// that produced it.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var body RecommendationRequest
	if err := decodeJSONBody(w, r, h.maxBodyBytes, &body); err != nil {
		status, message := statusForError(r.Context(), err)
		respondError(w, r, status, message, err)
		return
	}
	if verr := validation.ValidateStruct(&body); verr != nil {
		respondError(w, r, http.StatusBadRequest, verr.Error(), verr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	logger := logging.Ctx(ctx)
	logger.Debug().
		Str("user_id", body.UserID).
		Str("session_id", body.SessionID).
		Str("current_filter_id", body.CurrentFilterID).
		Int("k", body.K).
		Msg("Recommendation request")

	resp, err := h.recommender.Recommend(ctx, recommend.Request{
		UserID:          body.UserID,
		SessionID:       body.SessionID,
		CurrentFilterID: body.CurrentFilterID,
		K:               body.K,
		RequestID:       logging.RequestIDFromContext(ctx),
	})
	if err != nil {
		status, message := statusForError(ctx, err)
		if status == StatusClientClosedRequest {
			logger.Debug().Err(err).Msg("Client went away before recommendations were ready")
			return
		}
		respondError(w, r, status, message, err)
		return
	}

	respondJSON(w, http.StatusOK, toRecommendationsResponse(resp))
}
