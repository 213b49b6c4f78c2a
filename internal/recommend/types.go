// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package recommend

import (
	"context"
	"time"
)

// InteractionType classifies a recorded touchpoint between a user and the catalog.
type InteractionType string

const (
	// InteractionView is a property detail page view.
	InteractionView InteractionType = "view"
	// InteractionClick is a click on a property card.
	InteractionClick InteractionType = "click"
	// InteractionInquiry is a contact request sent to the lister.
	InteractionInquiry InteractionType = "inquiry"
	// InteractionSearch is a search that surfaced the property.
	InteractionSearch InteractionType = "search"
)

// SeenInteractionTypes are the interaction types that make up a seen set.
var SeenInteractionTypes = []InteractionType{
	InteractionView, InteractionClick, InteractionInquiry, InteractionSearch,
}

// NeighborInteractionTypes are the interaction types used to find similar
// users. Searches are left out as too noisy.
var NeighborInteractionTypes = []InteractionType{
	InteractionView, InteractionClick, InteractionInquiry,
}

// Valid reports whether t is a known interaction type.
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionView, InteractionClick, InteractionInquiry, InteractionSearch:
		return true
	default:
		return false
	}
}

// Strategy names, returned as the response strategy tag.
const (
	StrategyInteraction    = "interaction"
	StrategyFilterSequence = "filter_sequence"
	StrategyTrending       = "trending"
)

// Candidate icons.
const (
	IconUsers  = "users"
	IconSearch = "search"
	IconHot    = "hot"
	IconNew    = "new"
)

// StatusApproved is the only property status eligible for recommendation.
const StatusApproved = "approved"

// Interaction is one entry of the append-only interaction log.
type Interaction struct {
	UserID string          `json:"user_id"`
	Type   InteractionType `json:"interaction_type"`

	// PropertyID is empty for search rows that did not target a property.
	PropertyID string `json:"property_id,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// Favorite is a user's saved property.
type Favorite struct {
	UserID     string    `json:"user_id"`
	PropertyID string    `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// FilterUsage is a normalized snapshot of a search a user executed.
// Absent criteria are nil or empty.
type FilterUsage struct {
	ID          string   `json:"id"`
	Location    string   `json:"location,omitempty"`
	ListingType string   `json:"listing_type,omitempty"`
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	PriceMin    *float64 `json:"price_min,omitempty"`
	PriceMax    *float64 `json:"price_max,omitempty"`
}

// Query converts the filter's criteria into a property query.
func (f FilterUsage) Query() PropertyQuery {
	return PropertyQuery{
		Location:    f.Location,
		ListingType: f.ListingType,
		MinBedrooms: f.Bedrooms,
		PriceMin:    f.PriceMin,
		PriceMax:    f.PriceMax,
	}
}

// FilterTransition counts how often a filter was run right after another.
type FilterTransition struct {
	FilterID string `json:"filter_id"`
	Count    int    `json:"count"`
}

// PropertyQuery selects approved properties. Every non-empty criterion must match.
type PropertyQuery struct {
	// Location matches as a case-insensitive substring of the city.
	Location string

	// ListingType matches exactly ("sale" or "rent").
	ListingType string

	MinBedrooms *int
	PriceMin    *float64
	PriceMax    *float64
}

// Property is a catalog listing.
type Property struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	City         string    `json:"city"`
	District     string    `json:"district"`
	Price        float64   `json:"price"`
	PropertyType string    `json:"property_type"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Images       []string  `json:"images"`
	ListingType  string    `json:"listing_type"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Approved reports whether the property may be recommended.
func (p *Property) Approved() bool {
	return p.Status == StatusApproved
}

// PrimaryImage returns the first image, if any.
func (p *Property) PrimaryImage() (string, bool) {
	if len(p.Images) == 0 || p.Images[0] == "" {
		return "", false
	}
	return p.Images[0], true
}

// TrendingProperty is an approved property with its favorite count inside the
// trending window.
type TrendingProperty struct {
	Property  Property
	Favorites int
}

// Candidate is a scored recommendation. Candidates exist only for the
// duration of one request.
type Candidate struct {
	Property Property `json:"property"`

	// Score is strategy specific: accumulated overlap for interaction,
	// transition count for filter_sequence, favorite count for trending.
	Score float64 `json:"score"`

	Reason string `json:"reason"`
	Icon   string `json:"icon"`

	// Source is the name of the strategy that produced the candidate.
	Source string `json:"source"`
}

// SeenSet holds the property ids a user already engaged with.
type SeenSet map[string]struct{}

// Has reports whether id is in the set. A nil set contains nothing.
func (s SeenSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id; empty ids are ignored.
func (s SeenSet) Add(id string) {
	if id != "" {
		s[id] = struct{}{}
	}
}

// Len returns the number of ids in the set.
func (s SeenSet) Len() int {
	return len(s)
}

// Request is one recommendation request. All identifiers are optional.
type Request struct {
	UserID          string `json:"userId,omitempty"`
	SessionID       string `json:"sessionId,omitempty"`
	CurrentFilterID string `json:"currentFilterId,omitempty"`

	// K is the number of recommendations wanted. Zero means the configured default.
	K int `json:"k,omitempty"`

	// RequestID is used for log correlation only.
	RequestID string `json:"-"`

	// Seen is populated by the engine before strategies run.
	Seen SeenSet `json:"-"`

	// Now anchors time windows. Zero means the engine clock.
	Now time.Time `json:"-"`
}

// Response is the outcome of the strategy cascade.
type Response struct {
	Recommendations []Candidate `json:"recommendations"`
	Strategy        string      `json:"strategy"`
	RequestID       string      `json:"request_id,omitempty"`
}

// DataProvider is the read-only view of the store used by the engine and
// its strategies. Every method returning properties returns approved ones only.
type DataProvider interface {
	// GetUserInteractions returns the user's newest interactions of the
	// given types, newest first.
	GetUserInteractions(ctx context.Context, userID string, types []InteractionType, limit int) ([]Interaction, error)

	// GetUserFavorites returns all of the user's favorites.
	GetUserFavorites(ctx context.Context, userID string) ([]Favorite, error)

	// GetNeighborInteractions returns the newest interactions of the given
	// types from every user except excludeUserID, newest first.
	GetNeighborInteractions(ctx context.Context, excludeUserID string, types []InteractionType, limit int) ([]Interaction, error)

	// GetNeighborFavorites returns the favorites of every user except excludeUserID.
	GetNeighborFavorites(ctx context.Context, excludeUserID string) ([]Favorite, error)

	// GetNextFilters counts the filters run right after filterID, ordered by
	// count descending then filter id.
	GetNextFilters(ctx context.Context, filterID string, limit int) ([]FilterTransition, error)

	// GetFilterUsages returns the stored criteria of the given filters keyed by id.
	// Unknown ids are absent from the map.
	GetFilterUsages(ctx context.Context, ids []string) (map[string]FilterUsage, error)

	// SearchProperties returns approved properties matching q, newest first.
	SearchProperties(ctx context.Context, q PropertyQuery, limit int) ([]Property, error)

	// GetApprovedProperties returns the approved properties among ids keyed by id.
	GetApprovedProperties(ctx context.Context, ids []string) (map[string]Property, error)

	// GetTrendingProperties counts favorites created since the given time per
	// approved property, excluding properties favorited by excludeFavoritesOf.
	// Ordered by count descending, newest property, then id.
	GetTrendingProperties(ctx context.Context, since time.Time, excludeFavoritesOf string, limit int) ([]TrendingProperty, error)

	// GetNewestProperties returns the newest approved properties.
	GetNewestProperties(ctx context.Context, limit int) ([]Property, error)
}
