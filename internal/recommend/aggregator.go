// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Aggregator builds a user's seen set.
type Aggregator struct {
	dp     DataProvider
	limit  int
	logger zerolog.Logger
}

// NewAggregator creates an aggregator reading at most limit interactions per user.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAggregator(dp DataProvider, limit int, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		dp:     dp,
		limit:  limit,
		logger: logger,
	}
}

// SeenSet returns the union of the user's newest interactions and all of
// their favorites. Failures are logged and yield an empty set so the request
// can continue unpersonalized.
func (a *Aggregator) SeenSet(ctx context.Context, userID string) SeenSet {
	seen := SeenSet{}
	if userID == "" {
		return seen
	}

	interactions, favorites, err := a.fetch(ctx, userID)
	if err != nil {
		a.logger.Warn().
			Err(err).
			Str("user_id", userID).
			Msg("seen set unavailable, continuing without personalization")
		return seen
	}

	if len(interactions) > a.limit {
		interactions = interactions[:a.limit]
	}
	for i := range interactions {
		seen.Add(interactions[i].PropertyID)
	}
	for i := range favorites {
		seen.Add(favorites[i].PropertyID)
	}
	return seen
}

func (a *Aggregator) fetch(ctx context.Context, userID string) ([]Interaction, []Favorite, error) {
	var (
		interactions []Interaction
		favorites    []Favorite
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		interactions, err = a.dp.GetUserInteractions(gctx, userID, SeenInteractionTypes, a.limit)
		if err != nil {
			return fmt.Errorf("user interactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		favorites, err = a.dp.GetUserFavorites(gctx, userID)
		if err != nil {
			return fmt.Errorf("user favorites: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return interactions, favorites, nil
}
