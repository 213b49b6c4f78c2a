// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package api

import "github.com/tomtom215/hunian/internal/recommend"

// RecommendationRequest is the body of POST /api/v1/recommendations.
// Every field is optional; an empty body is the same as {}.
type RecommendationRequest struct {
	CurrentFilterID string `json:"currentFilterId,omitempty" validate:"omitempty,max=128,entityid"`
	SessionID       string `json:"sessionId,omitempty" validate:"omitempty,max=128,entityid"`
	UserID          string `json:"userId,omitempty" validate:"omitempty,max=128,entityid"`

	// K overrides the configured list length, clamped to the configured maximum.
	K int `json:"k,omitempty" validate:"gte=0"`
}

// Recommendation is one entry of the response list.
type Recommendation struct {
	PropertyID   string  `json:"propertyId"`
	Title        string  `json:"title"`
	City         string  `json:"city"`
	District     string  `json:"district"`
	Price        float64 `json:"price"`
	PropertyType string  `json:"propertyType"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	Image        *string `json:"image"`
	ListingType  string  `json:"listingType"`
	Score        float64 `json:"score"`
	Reason       string  `json:"reason"`
	Icon         string  `json:"icon"`
}

// RecommendationsResponse is the 200 body.
type RecommendationsResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
	Strategy        string           `json:"strategy"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status        string  `json:"status"`
	Database      string  `json:"database,omitempty"`
	Breaker       string  `json:"breaker,omitempty"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version,omitempty"`
}

func toRecommendationsResponse(resp *recommend.Response) RecommendationsResponse {
	out := RecommendationsResponse{
		Recommendations: make([]Recommendation, 0, len(resp.Recommendations)),
		Strategy:        resp.Strategy,
	}
	for i := range resp.Recommendations {
		c := &resp.Recommendations[i]
		p := &c.Property
		rec := Recommendation{
			PropertyID:   p.ID,
			Title:        p.Title,
			City:         p.City,
			District:     p.District,
			Price:        p.Price,
			PropertyType: p.PropertyType,
			Bedrooms:     p.Bedrooms,
			Bathrooms:    p.Bathrooms,
			ListingType:  p.ListingType,
			Score:        c.Score,
			Reason:       c.Reason,
			Icon:         c.Icon,
		}
		if img, ok := p.PrimaryImage(); ok {
			rec.Image = &img
		}
		out.Recommendations = append(out.Recommendations, rec)
	}
	return out
}
