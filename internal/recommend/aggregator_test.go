// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package recommend

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestAggregator_SeenSet(t *testing.T) {
	dp := &fakeProvider{
		interactions: map[string][]Interaction{
			"u1": {
				{UserID: "u1", Type: InteractionView, PropertyID: "p1"},
				{UserID: "u1", Type: InteractionSearch, PropertyID: ""},
				{UserID: "u1", Type: InteractionInquiry, PropertyID: "p2"},
				{UserID: "u1", Type: InteractionClick, PropertyID: "p1"},
			},
		},
		favorites: map[string][]Favorite{
			"u1": {{UserID: "u1", PropertyID: "p3"}, {UserID: "u1", PropertyID: "p2"}},
		},
	}
	agg := NewAggregator(dp, 100, zerolog.Nop())

	seen := agg.SeenSet(context.Background(), "u1")

	if seen.Len() != 3 {
		t.Fatalf("seen set size = %d, want 3 (%v)", seen.Len(), seen)
	}
	for _, id := range []string{"p1", "p2", "p3"} {
		if !seen.Has(id) {
			t.Errorf("seen set missing %s", id)
		}
	}
	if seen.Has("") {
		t.Error("seen set should not contain empty id")
	}
	if got := dp.lastLimit.Load(); got != 100 {
		t.Errorf("interaction limit = %d, want 100", got)
	}
}

func TestAggregator_NoUser(t *testing.T) {
	dp := &fakeProvider{}
	seen := NewAggregator(dp, 100, zerolog.Nop()).SeenSet(context.Background(), "")

	if seen == nil || seen.Len() != 0 {
		t.Errorf("expected empty non-nil set, got %v", seen)
	}
	if dp.interactionCalls.Load() != 0 {
		t.Error("store should not be read without a user id")
	}
}

func TestAggregator_CapsInteractions(t *testing.T) {
	rows := []Interaction{
		{PropertyID: "p1"}, {PropertyID: "p2"}, {PropertyID: "p3"},
	}
	dp := &fakeProvider{interactions: map[string][]Interaction{"u1": rows}}

	seen := NewAggregator(dp, 2, zerolog.Nop()).SeenSet(context.Background(), "u1")

	if seen.Len() != 2 || seen.Has("p3") {
		t.Errorf("seen = %v, want only the two newest interactions", seen)
	}
}

func TestAggregator_FailureYieldsEmptySet(t *testing.T) {
	tests := []struct {
		name string
		dp   *fakeProvider
	}{
		{
			name: "interactions fail",
			dp: &fakeProvider{
				interactionsErr: errors.New("connection reset"),
				favorites:       map[string][]Favorite{"u1": {{PropertyID: "p1"}}},
			},
		},
		{
			name: "favorites fail",
			dp: &fakeProvider{
				interactions: map[string][]Interaction{"u1": {{PropertyID: "p1"}}},
				favoritesErr: errors.New("timeout"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			agg := NewAggregator(tt.dp, 100, zerolog.New(&buf))

			seen := agg.SeenSet(context.Background(), "u1")

			if seen.Len() != 0 {
				t.Errorf("seen = %v, want empty on failure", seen)
			}
			if !strings.Contains(buf.String(), "seen set unavailable") {
				t.Errorf("expected failure to be logged, got %q", buf.String())
			}
		})
	}
}
