// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package algorithms

import (
	"context"
	"fmt"

	"github.com/tomtom215/hunian/internal/recommend"
)

// ReasonNewlyListed is attached to newest-listing fallback candidates.
const ReasonNewlyListed = "newly listed property"

// TrendingReason formats the reason for a trending candidate.
func TrendingReason(favorites int) string {
	return fmt.Sprintf("trending — favorited by %d users recently", favorites)
}

// Trending ranks properties by how many favorites they received in the
// trailing window. It is the terminal strategy and always applies.
//
// Properties the requester already saw or favorited are excluded. When
// nothing remains (a cold catalog), the newest approved listings are
// returned instead, scored by descending rank.
type Trending struct {
	BaseStrategy

	dp     recommend.DataProvider
	config recommend.TrendingConfig
}

// NewTrending creates the trending strategy.
func NewTrending(dp recommend.DataProvider, cfg recommend.TrendingConfig) *Trending {
	if cfg.Window <= 0 {
		cfg.Window = recommend.DefaultTrendingWindow
	}

	return &Trending{
		BaseStrategy: NewBaseStrategy(recommend.StrategyTrending),
		dp:           dp,
		config:       cfg,
	}
}

// Applies always returns true.
func (t *Trending) Applies(*recommend.Request) bool {
	return true
}

// Candidates returns trending properties, or the newest listings.
func (t *Trending) Candidates(ctx context.Context, req *recommend.Request) ([]recommend.Candidate, error) {
	// Over-fetch by the seen set so exclusions cannot starve the result.
	k := wantK(req)
	limit := k + req.Seen.Len()
	since := req.Now.Add(-t.config.Window)

	trending, err := t.dp.GetTrendingProperties(ctx, since, req.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("trending properties: %w", err)
	}

	candidates := make([]recommend.Candidate, 0, k)
	for i := range trending {
		prop := trending[i].Property
		if req.Seen.Has(prop.ID) || !prop.Approved() {
			continue
		}
		candidates = append(candidates, recommend.Candidate{
			Property: prop,
			Score:    float64(trending[i].Favorites),
			Reason:   TrendingReason(trending[i].Favorites),
			Icon:     recommend.IconHot,
			Source:   t.Name(),
		})
		if len(candidates) == k {
			return candidates, nil
		}
	}
	if len(candidates) > 0 {
		return candidates, nil
	}

	return t.newest(ctx, req, k, limit)
}

func (t *Trending) newest(ctx context.Context, req *recommend.Request, k, limit int) ([]recommend.Candidate, error) {
	newest, err := t.dp.GetNewestProperties(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("newest properties: %w", err)
	}

	candidates := make([]recommend.Candidate, 0, k)
	for i := range newest {
		if req.Seen.Has(newest[i].ID) || !newest[i].Approved() {
			continue
		}
		candidates = append(candidates, recommend.Candidate{
			Property: newest[i],
			Score:    float64(k - len(candidates)),
			Reason:   ReasonNewlyListed,
			Icon:     recommend.IconNew,
			Source:   t.Name(),
		})
		if len(candidates) == k {
			break
		}
	}
	return candidates, nil
}
