// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package recommend

import (
	"context"
	"sync/atomic"
	"time"
)

// fakeProvider implements DataProvider for engine tests. Only the seen-set
// reads carry data; strategies in these tests are plain functions.
type fakeProvider struct {
	interactions map[string][]Interaction
	favorites    map[string][]Favorite

	interactionsErr error
	favoritesErr    error

	// block makes seen-set reads wait for context cancellation.
	block bool

	interactionCalls atomic.Int32
	lastLimit        atomic.Int32
}

func (f *fakeProvider) GetUserInteractions(ctx context.Context, userID string, _ []InteractionType, limit int) ([]Interaction, error) {
	f.interactionCalls.Add(1)
	f.lastLimit.Store(int32(limit))
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.interactionsErr != nil {
		return nil, f.interactionsErr
	}
	return f.interactions[userID], nil
}

func (f *fakeProvider) GetUserFavorites(ctx context.Context, userID string) ([]Favorite, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.favoritesErr != nil {
		return nil, f.favoritesErr
	}
	return f.favorites[userID], nil
}

func (f *fakeProvider) GetNeighborInteractions(context.Context, string, []InteractionType, int) ([]Interaction, error) {
	return nil, nil
}

func (f *fakeProvider) GetNeighborFavorites(context.Context, string) ([]Favorite, error) {
	return nil, nil
}

func (f *fakeProvider) GetNextFilters(context.Context, string, int) ([]FilterTransition, error) {
	return nil, nil
}

func (f *fakeProvider) GetFilterUsages(context.Context, []string) (map[string]FilterUsage, error) {
	return map[string]FilterUsage{}, nil
}

func (f *fakeProvider) SearchProperties(context.Context, PropertyQuery, int) ([]Property, error) {
	return nil, nil
}

func (f *fakeProvider) GetApprovedProperties(context.Context, []string) (map[string]Property, error) {
	return map[string]Property{}, nil
}

func (f *fakeProvider) GetTrendingProperties(context.Context, time.Time, string, int) ([]TrendingProperty, error) {
	return nil, nil
}

func (f *fakeProvider) GetNewestProperties(context.Context, int) ([]Property, error) {
	return nil, nil
}

func approved(id string) Property {
	return Property{ID: id, Title: "Property " + id, Status: StatusApproved}
}

func candidate(id string, score float64) Candidate {
	return Candidate{Property: approved(id), Score: score}
}
