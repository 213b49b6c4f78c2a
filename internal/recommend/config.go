// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package recommend

import (
	"fmt"
	"time"
)

// Default caps. They bound the rows scanned per request.
const (
	DefaultK                   = 8
	DefaultMaxK                = 50
	DefaultSeenInteractions    = 100
	DefaultNeighborWindow      = 500
	DefaultMinOverlap          = 2
	DefaultMaxNeighbors        = 20
	DefaultFavoriteWeight      = 2.0
	DefaultMaxFollowUpFilters  = 5
	DefaultPropertiesPerFilter = 3
	DefaultTrendingWindow      = 30 * 24 * time.Hour
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains request-level limits.
	Limits LimitsConfig `json:"limits"`

	// Collaborative contains parameters for the interaction strategy.
	Collaborative CollaborativeConfig `json:"collaborative"`

	// FilterSequence contains parameters for the filter_sequence strategy.
	FilterSequence FilterSequenceConfig `json:"filter_sequence"`

	// Trending contains parameters for the trending strategy.
	Trending TrendingConfig `json:"trending"`
}

// LimitsConfig contains request-level limits.
type LimitsConfig struct {
	// DefaultK is used when a request does not ask for a specific count.
	DefaultK int `json:"default_k"`

	// MaxK caps any requested count.
	MaxK int `json:"max_k"`

	// SeenInteractions is how many of the requester's newest interactions
	// feed the seen set. Favorites are always included in full.
	SeenInteractions int `json:"seen_interactions"`
}

// CollaborativeConfig contains parameters for user-overlap collaborative filtering.
type CollaborativeConfig struct {
	// InteractionWindow is how many of the newest interactions of other
	// users are scanned.
	InteractionWindow int `json:"interaction_window"`

	// MinOverlap is the least number of shared properties for a user to
	// count as a neighbor.
	MinOverlap int `json:"min_overlap"`

	// MaxNeighbors keeps only the most similar users.
	MaxNeighbors int `json:"max_neighbors"`

	// FavoriteWeight multiplies a neighbor's overlap for favorited properties.
	FavoriteWeight float64 `json:"favorite_weight"`
}

// FilterSequenceConfig contains parameters for filter transition mining.
type FilterSequenceConfig struct {
	// MaxFollowUpFilters is how many of the most frequent next filters are used.
	MaxFollowUpFilters int `json:"max_follow_up_filters"`

	// PropertiesPerFilter caps the properties fetched for each next filter.
	PropertiesPerFilter int `json:"properties_per_filter"`
}

// TrendingConfig contains parameters for the popularity fallback.
type TrendingConfig struct {
	// Window is the trailing period over which favorites are counted.
	Window time.Duration `json:"window"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultK:         DefaultK,
			MaxK:             DefaultMaxK,
			SeenInteractions: DefaultSeenInteractions,
		},
		Collaborative: CollaborativeConfig{
			InteractionWindow: DefaultNeighborWindow,
			MinOverlap:        DefaultMinOverlap,
			MaxNeighbors:      DefaultMaxNeighbors,
			FavoriteWeight:    DefaultFavoriteWeight,
		},
		FilterSequence: FilterSequenceConfig{
			MaxFollowUpFilters:  DefaultMaxFollowUpFilters,
			PropertiesPerFilter: DefaultPropertiesPerFilter,
		},
		Trending: TrendingConfig{
			Window: DefaultTrendingWindow,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultK <= 0 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Limits.SeenInteractions <= 0 {
		return fmt.Errorf("limits.seen_interactions must be positive, got %d", c.Limits.SeenInteractions)
	}
	if c.Collaborative.InteractionWindow <= 0 {
		return fmt.Errorf("collaborative.interaction_window must be positive, got %d", c.Collaborative.InteractionWindow)
	}
	if c.Collaborative.MinOverlap <= 0 {
		return fmt.Errorf("collaborative.min_overlap must be positive, got %d", c.Collaborative.MinOverlap)
	}
	if c.Collaborative.MaxNeighbors <= 0 {
		return fmt.Errorf("collaborative.max_neighbors must be positive, got %d", c.Collaborative.MaxNeighbors)
	}
	if c.Collaborative.FavoriteWeight <= 0 {
		return fmt.Errorf("collaborative.favorite_weight must be positive, got %f", c.Collaborative.FavoriteWeight)
	}
	if c.FilterSequence.MaxFollowUpFilters <= 0 {
		return fmt.Errorf("filter_sequence.max_follow_up_filters must be positive, got %d", c.FilterSequence.MaxFollowUpFilters)
	}
	if c.FilterSequence.PropertiesPerFilter <= 0 {
		return fmt.Errorf("filter_sequence.properties_per_filter must be positive, got %d", c.FilterSequence.PropertiesPerFilter)
	}
	if c.Trending.Window <= 0 {
		return fmt.Errorf("trending.window must be positive, got %v", c.Trending.Window)
	}
	return nil
}

// ClampK applies the default and the maximum to a requested count.
func (c *Config) ClampK(k int) int {
	if k <= 0 {
		return c.Limits.DefaultK
	}
	if k > c.Limits.MaxK {
		return c.Limits.MaxK
	}
	return k
}
