// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package algorithms

import (
	"context"

	"github.com/tomtom215/hunian/internal/recommend"
)

// BaseStrategy provides the name shared by all strategies.
type BaseStrategy struct {
	name string
}

// NewBaseStrategy creates a new base strategy with the given name.
func NewBaseStrategy(name string) BaseStrategy {
	return BaseStrategy{name: name}
}

// Name returns the strategy tag.
func (b *BaseStrategy) Name() string {
	return b.name
}

// Cascade returns the production strategy order: interaction,
// filter_sequence, then the terminal trending fallback.
func Cascade(dp recommend.DataProvider, cfg *recommend.Config) []recommend.Strategy {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	return []recommend.Strategy{
		NewCollaborative(dp, cfg.Collaborative),
		NewFilterSequence(dp, cfg.FilterSequence),
		NewTrending(dp, cfg.Trending),
	}
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// capInteractions enforces a row cap on provider results.
func capInteractions(rows []recommend.Interaction, limit int) []recommend.Interaction {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// wantK is the requested count, or the default when the request has none.
func wantK(req *recommend.Request) int {
	if req.K > 0 {
		return req.K
	}
	return recommend.DefaultK
}
