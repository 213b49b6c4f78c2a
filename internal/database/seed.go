// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/hunian/internal/logging"
	"github.com/tomtom215/hunian/internal/recommend"
)

// SeedSummary counts the rows written by SeedDemoData.
type SeedSummary struct {
	Properties   int `json:"properties"`
	Interactions int `json:"interactions"`
	Favorites    int `json:"favorites"`
	Filters      int `json:"filters"`
	Transitions  int `json:"transitions"`
}

type demoListing struct {
	id, title, city, district, propertyType, listingType, status string
	price                                                        float64
	bedrooms, bathrooms                                          int
	ageDays                                                      int
}

var demoListings = []demoListing{
	{"demo-p01", "Rumah Minimalis Kemang", "Jakarta Selatan", "Kemang", "house", "sale", "approved", 4_200_000_000, 3, 2, 40},
	{"demo-p02", "Apartemen Sudirman Park", "Jakarta Pusat", "Tanah Abang", "apartment", "rent", "approved", 12_000_000, 2, 1, 35},
	{"demo-p03", "Townhouse Cilandak", "Jakarta Selatan", "Cilandak", "townhouse", "sale", "approved", 3_100_000_000, 3, 3, 30},
	{"demo-p04", "Studio Kuningan City", "Jakarta Selatan", "Setiabudi", "apartment", "rent", "approved", 6_500_000, 1, 1, 28},
	{"demo-p05", "Rumah Keluarga Dago", "Bandung", "Coblong", "house", "sale", "approved", 2_750_000_000, 4, 3, 25},
	{"demo-p06", "Villa Lembang View", "Bandung Barat", "Lembang", "villa", "rent", "approved", 15_000_000, 3, 2, 21},
	{"demo-p07", "Apartemen Gubeng", "Surabaya", "Gubeng", "apartment", "rent", "approved", 7_000_000, 2, 1, 18},
	{"demo-p08", "Rumah Citraland", "Surabaya", "Sambikerep", "house", "sale", "approved", 3_900_000_000, 4, 3, 14},
	{"demo-p09", "Villa Canggu Sunset", "Badung", "Canggu", "villa", "rent", "approved", 45_000_000, 3, 3, 10},
	{"demo-p10", "Rumah Tebet Asri", "Jakarta Selatan", "Tebet", "house", "sale", "approved", 2_300_000_000, 2, 1, 7},
	{"demo-p11", "Apartemen Menteng", "Jakarta Pusat", "Menteng", "apartment", "sale", "approved", 5_600_000_000, 3, 2, 4},
	{"demo-p12", "Rumah Baru Bintaro", "Tangerang Selatan", "Pondok Aren", "house", "sale", "approved", 1_850_000_000, 3, 2, 2},
	{"demo-p13", "Ruko Kelapa Gading", "Jakarta Utara", "Kelapa Gading", "shophouse", "sale", "pending", 6_100_000_000, 0, 2, 1},
	{"demo-p14", "Rumah Pondok Indah", "Jakarta Selatan", "Pondok Indah", "house", "sale", "rejected", 12_500_000_000, 5, 4, 60},
}

type demoTouch struct {
	user     string
	kind     recommend.InteractionType
	property string
	ageHours int
}

var demoTouches = []demoTouch{
	{"demo-ayu", recommend.InteractionView, "demo-p01", 70},
	{"demo-ayu", recommend.InteractionView, "demo-p03", 60},
	{"demo-ayu", recommend.InteractionClick, "demo-p10", 50},
	{"demo-ayu", recommend.InteractionSearch, "", 49},

	{"demo-budi", recommend.InteractionView, "demo-p01", 40},
	{"demo-budi", recommend.InteractionView, "demo-p03", 38},
	{"demo-budi", recommend.InteractionInquiry, "demo-p11", 30},
	{"demo-budi", recommend.InteractionView, "demo-p12", 20},

	{"demo-citra", recommend.InteractionView, "demo-p03", 26},
	{"demo-citra", recommend.InteractionClick, "demo-p10", 24},
	{"demo-citra", recommend.InteractionView, "demo-p12", 12},
	{"demo-citra", recommend.InteractionView, "demo-p13", 11},

	{"demo-dewi", recommend.InteractionView, "demo-p05", 90},
	{"demo-dewi", recommend.InteractionView, "demo-p06", 80},
	{"demo-dewi", recommend.InteractionClick, "demo-p09", 8},

	{"demo-eko", recommend.InteractionView, "demo-p07", 5},
	{"demo-eko", recommend.InteractionSearch, "", 4},
}

type demoFavorite struct {
	user, property string
	ageDays        int
}

var demoFavorites = []demoFavorite{
	{"demo-ayu", "demo-p01", 3},
	{"demo-budi", "demo-p11", 2},
	{"demo-budi", "demo-p09", 6},
	{"demo-citra", "demo-p09", 1},
	{"demo-citra", "demo-p12", 1},
	{"demo-dewi", "demo-p09", 5},
	{"demo-dewi", "demo-p05", 45},
	{"demo-eko", "demo-p08", 9},
	{"demo-eko", "demo-p13", 1},
}

var demoFilters = []recommend.FilterUsage{
	{ID: "demo-f-jaksel", Location: "Jakarta Selatan", ListingType: "sale"},
	{ID: "demo-f-jaksel-3br", Location: "Jakarta Selatan", ListingType: "sale", Bedrooms: intPtr(3)},
	{ID: "demo-f-jakarta-rent", Location: "jakarta", ListingType: "rent"},
	{ID: "demo-f-bandung", Location: "Bandung"},
	{ID: "demo-f-budget", PriceMax: floatPtr(3_000_000_000), ListingType: "sale"},
	{ID: "demo-f-any"},
}

var demoTransitions = [][2]string{
	{"demo-f-jaksel", "demo-f-jaksel-3br"},
	{"demo-f-jaksel", "demo-f-jaksel-3br"},
	{"demo-f-jaksel", "demo-f-jaksel-3br"},
	{"demo-f-jaksel", "demo-f-budget"},
	{"demo-f-jaksel", "demo-f-budget"},
	{"demo-f-jaksel", "demo-f-jakarta-rent"},
	{"demo-f-bandung", "demo-f-any"},
	{"demo-f-budget", "demo-f-bandung"},
}

// SeedDemoData writes a small deterministic catalog with users, favorites
// and filter history. Row ids are fixed so seeding twice is a no-op apart
// from refreshing listings.
func (db *DB) SeedDemoData(ctx context.Context, now time.Time) (SeedSummary, error) {
	var summary SeedSummary
	now = now.UTC()

	for i := range demoListings {
		l := &demoListings[i]
		p := &recommend.Property{
			ID:           l.id,
			Title:        l.title,
			City:         l.city,
			District:     l.district,
			Price:        l.price,
			PropertyType: l.propertyType,
			Bedrooms:     l.bedrooms,
			Bathrooms:    l.bathrooms,
			Images:       []string{fmt.Sprintf("https://img.hunian.example/%s/cover.jpg", l.id)},
			ListingType:  l.listingType,
			Status:       l.status,
			CreatedAt:    now.Add(-time.Duration(l.ageDays) * 24 * time.Hour),
		}
		if err := db.UpsertProperty(ctx, p); err != nil {
			return summary, fmt.Errorf("seed properties: %w", err)
		}
		summary.Properties++
	}

	for i, t := range demoTouches {
		in := recommend.Interaction{
			UserID:     t.user,
			Type:       t.kind,
			PropertyID: t.property,
			Timestamp:  now.Add(-time.Duration(t.ageHours) * time.Hour),
		}
		if err := db.insertInteraction(ctx, fmt.Sprintf("demo-i-%03d", i+1), in); err != nil {
			return summary, fmt.Errorf("seed interactions: %w", err)
		}
		summary.Interactions++
	}

	for _, f := range demoFavorites {
		fav := recommend.Favorite{
			UserID:     f.user,
			PropertyID: f.property,
			CreatedAt:  now.Add(-time.Duration(f.ageDays) * 24 * time.Hour),
		}
		if err := db.AddFavorite(ctx, fav); err != nil {
			return summary, fmt.Errorf("seed favorites: %w", err)
		}
		summary.Favorites++
	}

	for _, f := range demoFilters {
		if err := db.SaveFilterUsage(ctx, f, now.Add(-72*time.Hour)); err != nil {
			return summary, fmt.Errorf("seed filters: %w", err)
		}
		summary.Filters++
	}

	for i, tr := range demoTransitions {
		at := now.Add(-time.Duration(len(demoTransitions)-i) * time.Hour)
		if err := db.insertFilterTransition(ctx, fmt.Sprintf("demo-s-%03d", i+1), tr[0], tr[1], at); err != nil {
			return summary, fmt.Errorf("seed filter sequences: %w", err)
		}
		summary.Transitions++
	}

	logging.Info().
		Int("properties", summary.Properties).
		Int("interactions", summary.Interactions).
		Int("favorites", summary.Favorites).
		Int("filters", summary.Filters).
		Int("transitions", summary.Transitions).
		Msg("Demo data seeded")

	return summary, nil
}

func intPtr(n int) *int {
	return &n
}

func floatPtr(f float64) *float64 {
	return &f
}
