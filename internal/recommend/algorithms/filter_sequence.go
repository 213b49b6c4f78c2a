// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package algorithms

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/hunian/internal/recommend"
)

const (
	// ReasonPopularSearchPrefix starts every filter_sequence reason.
	ReasonPopularSearchPrefix = "based on popular search: "

	// defaultFilterSummary describes a filter without criteria.
	defaultFilterSummary = "similar criteria"
)

// FilterSequence recommends properties matching the searches people most
// often ran right after the current one.
//
// Filter transitions form a first-order Markov chain over saved searches:
//
//	P(next = g | current = f) ∝ count(f → g)
//
// The MaxFollowUpFilters most frequent next filters are replayed as property
// queries (at most PropertiesPerFilter results each) and merged in rank
// order. A property's score is the transition count of the filter that
// first produced it.
type FilterSequence struct {
	BaseStrategy

	dp     recommend.DataProvider
	config recommend.FilterSequenceConfig
}

// NewFilterSequence creates the filter_sequence strategy.
func NewFilterSequence(dp recommend.DataProvider, cfg recommend.FilterSequenceConfig) *FilterSequence {
	if cfg.MaxFollowUpFilters <= 0 {
		cfg.MaxFollowUpFilters = recommend.DefaultMaxFollowUpFilters
	}
	if cfg.PropertiesPerFilter <= 0 {
		cfg.PropertiesPerFilter = recommend.DefaultPropertiesPerFilter
	}

	return &FilterSequence{
		BaseStrategy: NewBaseStrategy(recommend.StrategyFilterSequence),
		dp:           dp,
		config:       cfg,
	}
}

// Applies requires a current filter id.
func (f *FilterSequence) Applies(req *recommend.Request) bool {
	return req.CurrentFilterID != ""
}

// Candidates returns properties matching the popular follow-up filters.
func (f *FilterSequence) Candidates(ctx context.Context, req *recommend.Request) ([]recommend.Candidate, error) {
	transitions, err := f.dp.GetNextFilters(ctx, req.CurrentFilterID, f.config.MaxFollowUpFilters)
	if err != nil {
		return nil, fmt.Errorf("next filters: %w", err)
	}
	if len(transitions) > f.config.MaxFollowUpFilters {
		transitions = transitions[:f.config.MaxFollowUpFilters]
	}
	if len(transitions) == 0 {
		return nil, nil
	}

	ids := make([]string, len(transitions))
	for i, t := range transitions {
		ids[i] = t.FilterID
	}
	usages, err := f.dp.GetFilterUsages(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("filter usages: %w", err)
	}

	results, err := f.search(ctx, transitions, usages)
	if err != nil {
		return nil, err
	}
	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	k := wantK(req)
	candidates := make([]recommend.Candidate, 0, k)
	emitted := make(map[string]struct{})
	for i, t := range transitions {
		if len(candidates) >= k {
			break
		}
		reason := ReasonPopularSearchPrefix + DescribeFilter(usages[t.FilterID])
		for j := range results[i] {
			prop := results[i][j]
			if _, dup := emitted[prop.ID]; dup || req.Seen.Has(prop.ID) || !prop.Approved() {
				continue
			}
			emitted[prop.ID] = struct{}{}
			candidates = append(candidates, recommend.Candidate{
				Property: prop,
				Score:    float64(t.Count),
				Reason:   reason,
				Icon:     recommend.IconSearch,
				Source:   f.Name(),
			})
			if len(candidates) >= k {
				break
			}
		}
	}
	return candidates, nil
}

// search runs one bounded property query per known follow-up filter concurrently.
// results[i] belongs to transitions[i].
func (f *FilterSequence) search(ctx context.Context, transitions []recommend.FilterTransition, usages map[string]recommend.FilterUsage) ([][]recommend.Property, error) {
	results := make([][]recommend.Property, len(transitions))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range transitions {
		usage, ok := usages[t.FilterID]
		if !ok {
			continue
		}
		g.Go(func() error {
			props, err := f.dp.SearchProperties(gctx, usage.Query(), f.config.PropertiesPerFilter)
			if err != nil {
				return fmt.Errorf("search for filter %s: %w", t.FilterID, err)
			}
			if len(props) > f.config.PropertiesPerFilter {
				props = props[:f.config.PropertiesPerFilter]
			}
			results[i] = props
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DescribeFilter renders a filter's criteria for humans, for example
// "Jakarta, 2 bedrooms, for rent".
//
//nolint:gocritic // hugeParam: FilterUsage is small
func DescribeFilter(u recommend.FilterUsage) string {
	parts := make([]string, 0, 3)
	if loc := strings.TrimSpace(u.Location); loc != "" {
		parts = append(parts, loc)
	}
	if u.Bedrooms != nil && *u.Bedrooms > 0 {
		parts = append(parts, strconv.Itoa(*u.Bedrooms)+" bedrooms")
	}
	switch lt := strings.TrimSpace(u.ListingType); strings.ToLower(lt) {
	case "":
	case "sale":
		parts = append(parts, "for sale")
	case "rent":
		parts = append(parts, "for rent")
	default:
		parts = append(parts, lt)
	}

	if len(parts) == 0 {
		return defaultFilterSummary
	}
	return strings.Join(parts, ", ")
}
