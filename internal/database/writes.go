// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/hunian/internal/recommend"
)

// The write helpers below exist for demo seeding, the CLI and tests. In
// production the catalog and activity services own these tables.

// exec runs a single statement under the breaker.
func (db *DB) exec(ctx context.Context, operation, table, stmt string, args ...any) error {
	_, err := run(ctx, db, operation, table, func(ctx context.Context, conn *sql.DB) (struct{}, error) {
		_, err := conn.ExecContext(ctx, stmt, args...)
		return struct{}{}, err
	})
	return err
}

// UpsertProperty inserts a listing or overwrites every column of an
// existing one, status included.
func (db *DB) UpsertProperty(ctx context.Context, p *recommend.Property) error {
	if p.ID == "" {
		return fmt.Errorf("property id is required")
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	encoded, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("failed to encode images for %s: %w", p.ID, err)
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return db.exec(ctx, "upsert_property", "properties",
		`INSERT INTO properties
			(id, title, city, district, price, property_type, bedrooms, bathrooms, images, listing_type, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			city = EXCLUDED.city,
			district = EXCLUDED.district,
			price = EXCLUDED.price,
			property_type = EXCLUDED.property_type,
			bedrooms = EXCLUDED.bedrooms,
			bathrooms = EXCLUDED.bathrooms,
			images = EXCLUDED.images,
			listing_type = EXCLUDED.listing_type,
			status = EXCLUDED.status,
			created_at = EXCLUDED.created_at`,
		p.ID, p.Title, p.City, p.District, p.Price, p.PropertyType,
		p.Bedrooms, p.Bathrooms, string(encoded), p.ListingType, p.Status, createdAt)
}

// RecordInteraction appends an interaction row with a generated id.
func (db *DB) RecordInteraction(ctx context.Context, in recommend.Interaction) error {
	return db.insertInteraction(ctx, uuid.New().String(), in)
}

func (db *DB) insertInteraction(ctx context.Context, id string, in recommend.Interaction) error {
	if in.UserID == "" {
		return fmt.Errorf("interaction user id is required")
	}
	if !in.Type.Valid() {
		return fmt.Errorf("invalid interaction type %q", in.Type)
	}
	return db.exec(ctx, "insert_interaction", "user_interactions",
		`INSERT OR IGNORE INTO user_interactions (id, user_id, interaction_type, property_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, in.UserID, string(in.Type), nullableString(in.PropertyID), in.Timestamp)
}

// AddFavorite records a favorite. Repeats are ignored.
func (db *DB) AddFavorite(ctx context.Context, f recommend.Favorite) error {
	if f.UserID == "" || f.PropertyID == "" {
		return fmt.Errorf("favorite needs both user and property id")
	}
	return db.exec(ctx, "add_favorite", "favorites",
		`INSERT OR IGNORE INTO favorites (user_id, property_id, created_at) VALUES (?, ?, ?)`,
		f.UserID, f.PropertyID, f.CreatedAt)
}

// SaveFilterUsage inserts or replaces the criteria of a saved filter.
func (db *DB) SaveFilterUsage(ctx context.Context, f recommend.FilterUsage, createdAt time.Time) error {
	if f.ID == "" {
		return fmt.Errorf("filter id is required")
	}
	return db.exec(ctx, "save_filter_usage", "filter_usage",
		`INSERT OR REPLACE INTO filter_usage (id, location, listing_type, bedrooms, price_min, price_max, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.ID, nullableString(f.Location), nullableString(f.ListingType),
		nullableInt(f.Bedrooms), nullableFloat(f.PriceMin), nullableFloat(f.PriceMax), createdAt)
}

// RecordFilterTransition appends a previous -> current filter edge.
func (db *DB) RecordFilterTransition(ctx context.Context, previousID, currentID string, at time.Time) error {
	return db.insertFilterTransition(ctx, uuid.New().String(), previousID, currentID, at)
}

func (db *DB) insertFilterTransition(ctx context.Context, id, previousID, currentID string, at time.Time) error {
	if previousID == "" || currentID == "" {
		return fmt.Errorf("filter transition needs both filter ids")
	}
	return db.exec(ctx, "insert_filter_transition", "filter_sequences",
		`INSERT OR IGNORE INTO filter_sequences (id, previous_filter_id, current_filter_id, created_at)
		VALUES (?, ?, ?, ?)`,
		id, previousID, currentID, at)
}

// nullableString binds an empty string as NULL.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
