// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package algorithms

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/hunian/internal/recommend"
)

// testNow anchors every fixture.
var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

// memStore is an in-memory recommend.DataProvider with the same ordering
// rules as the DuckDB store.
type memStore struct {
	properties   []recommend.Property
	interactions []recommend.Interaction
	favorites    []recommend.Favorite
	filters      map[string]recommend.FilterUsage
	sequences    [][2]string // previous, current

	errs map[string]error

	mu    sync.Mutex
	calls map[string]int
	limit map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		filters: make(map[string]recommend.FilterUsage),
		errs:    make(map[string]error),
		calls:   make(map[string]int),
		limit:   make(map[string]int),
	}
}

func (m *memStore) record(method string, limit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
	m.limit[method] = limit
	return m.errs[method]
}

func (m *memStore) callCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *memStore) lastLimit(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.limit[method]
}

// addProperty adds an approved property created ageHours before testNow.
func (m *memStore) addProperty(id, city string, bedrooms int, ageHours int) {
	m.properties = append(m.properties, recommend.Property{
		ID:           id,
		Title:        "Listing " + id,
		City:         city,
		District:     "Central",
		Price:        1_000_000,
		PropertyType: "apartment",
		Bedrooms:     bedrooms,
		Bathrooms:    1,
		Images:       []string{"https://img.example/" + id + ".jpg"},
		ListingType:  "sale",
		Status:       recommend.StatusApproved,
		CreatedAt:    testNow.Add(-time.Duration(ageHours) * time.Hour),
	})
}

// update edits a stored property in place.
func (m *memStore) update(id string, fn func(*recommend.Property)) {
	for i := range m.properties {
		if m.properties[i].ID == id {
			fn(&m.properties[i])
		}
	}
}

func (m *memStore) touch(userID string, typ recommend.InteractionType, propertyID string, ageMinutes int) {
	m.interactions = append(m.interactions, recommend.Interaction{
		UserID:     userID,
		Type:       typ,
		PropertyID: propertyID,
		Timestamp:  testNow.Add(-time.Duration(ageMinutes) * time.Minute),
	})
}

func (m *memStore) favorite(userID, propertyID string, age time.Duration) {
	m.favorites = append(m.favorites, recommend.Favorite{
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  testNow.Add(-age),
	})
}

func (m *memStore) sequence(prev, cur string, times int) {
	for range times {
		m.sequences = append(m.sequences, [2]string{prev, cur})
	}
}

func (m *memStore) property(id string) (recommend.Property, bool) {
	for _, p := range m.properties {
		if p.ID == id {
			return p, true
		}
	}
	return recommend.Property{}, false
}

func newestFirst(rows []recommend.Interaction) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.After(rows[j].Timestamp)
	})
}

func (m *memStore) GetUserInteractions(_ context.Context, userID string, types []recommend.InteractionType, limit int) ([]recommend.Interaction, error) {
	if err := m.record("GetUserInteractions", limit); err != nil {
		return nil, err
	}
	var out []recommend.Interaction
	for _, in := range m.interactions {
		if in.UserID == userID && slices.Contains(types, in.Type) {
			out = append(out, in)
		}
	}
	newestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) GetUserFavorites(_ context.Context, userID string) ([]recommend.Favorite, error) {
	if err := m.record("GetUserFavorites", 0); err != nil {
		return nil, err
	}
	var out []recommend.Favorite
	for _, f := range m.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memStore) GetNeighborInteractions(_ context.Context, excludeUserID string, types []recommend.InteractionType, limit int) ([]recommend.Interaction, error) {
	if err := m.record("GetNeighborInteractions", limit); err != nil {
		return nil, err
	}
	var out []recommend.Interaction
	for _, in := range m.interactions {
		if in.UserID != excludeUserID && slices.Contains(types, in.Type) {
			out = append(out, in)
		}
	}
	newestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) GetNeighborFavorites(_ context.Context, excludeUserID string) ([]recommend.Favorite, error) {
	if err := m.record("GetNeighborFavorites", 0); err != nil {
		return nil, err
	}
	var out []recommend.Favorite
	for _, f := range m.favorites {
		if f.UserID != excludeUserID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memStore) GetNextFilters(_ context.Context, filterID string, limit int) ([]recommend.FilterTransition, error) {
	if err := m.record("GetNextFilters", limit); err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, s := range m.sequences {
		if s[0] == filterID {
			counts[s[1]]++
		}
	}
	out := make([]recommend.FilterTransition, 0, len(counts))
	for id, n := range counts {
		out = append(out, recommend.FilterTransition{FilterID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].FilterID < out[j].FilterID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) GetFilterUsages(_ context.Context, ids []string) (map[string]recommend.FilterUsage, error) {
	if err := m.record("GetFilterUsages", len(ids)); err != nil {
		return nil, err
	}
	out := make(map[string]recommend.FilterUsage, len(ids))
	for _, id := range ids {
		if f, ok := m.filters[id]; ok {
			out[id] = f
		}
	}
	return out, nil
}

func (m *memStore) approvedByNewest() []recommend.Property {
	var out []recommend.Property
	for _, p := range m.properties {
		if p.Approved() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *memStore) SearchProperties(_ context.Context, q recommend.PropertyQuery, limit int) ([]recommend.Property, error) {
	if err := m.record("SearchProperties", limit); err != nil {
		return nil, err
	}
	var out []recommend.Property
	for _, p := range m.approvedByNewest() {
		if q.Location != "" && !strings.Contains(strings.ToLower(p.City), strings.ToLower(q.Location)) {
			continue
		}
		if q.ListingType != "" && p.ListingType != q.ListingType {
			continue
		}
		if q.MinBedrooms != nil && p.Bedrooms < *q.MinBedrooms {
			continue
		}
		if q.PriceMin != nil && p.Price < *q.PriceMin {
			continue
		}
		if q.PriceMax != nil && p.Price > *q.PriceMax {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) GetApprovedProperties(_ context.Context, ids []string) (map[string]recommend.Property, error) {
	if err := m.record("GetApprovedProperties", len(ids)); err != nil {
		return nil, err
	}
	out := make(map[string]recommend.Property, len(ids))
	for _, id := range ids {
		if p, ok := m.property(id); ok && p.Approved() {
			out[id] = p
		}
	}
	return out, nil
}

func (m *memStore) GetTrendingProperties(_ context.Context, since time.Time, excludeFavoritesOf string, limit int) ([]recommend.TrendingProperty, error) {
	if err := m.record("GetTrendingProperties", limit); err != nil {
		return nil, err
	}
	excluded := make(map[string]bool)
	if excludeFavoritesOf != "" {
		for _, f := range m.favorites {
			if f.UserID == excludeFavoritesOf {
				excluded[f.PropertyID] = true
			}
		}
	}
	counts := make(map[string]int)
	for _, f := range m.favorites {
		if !f.CreatedAt.Before(since) && !excluded[f.PropertyID] {
			counts[f.PropertyID]++
		}
	}
	var out []recommend.TrendingProperty
	for _, p := range m.approvedByNewest() {
		if n := counts[p.ID]; n > 0 {
			out = append(out, recommend.TrendingProperty{Property: p, Favorites: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Favorites > out[j].Favorites
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) GetNewestProperties(_ context.Context, limit int) ([]recommend.Property, error) {
	if err := m.record("GetNewestProperties", limit); err != nil {
		return nil, err
	}
	out := m.approvedByNewest()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func seenOf(ids ...string) recommend.SeenSet {
	s := recommend.SeenSet{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func candidateIDs(cs []recommend.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Property.ID
	}
	return out
}
