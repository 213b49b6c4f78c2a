// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range TableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range IndexQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// TableCreationQueries returns the DDL for the read model. The tables are
// owned by the catalog and activity services; this service only reads them,
// apart from demo seeding.
func TableCreationQueries() []string {
	return []string{
		// Listings. images holds a JSON array of URLs, first entry is the cover.
		`CREATE TABLE IF NOT EXISTS properties (
			id VARCHAR PRIMARY KEY,
			title VARCHAR NOT NULL DEFAULT '',
			city VARCHAR NOT NULL DEFAULT '',
			district VARCHAR NOT NULL DEFAULT '',
			price DOUBLE NOT NULL DEFAULT 0,
			property_type VARCHAR NOT NULL DEFAULT '',
			bedrooms INTEGER NOT NULL DEFAULT 0,
			bathrooms INTEGER NOT NULL DEFAULT 0,
			images VARCHAR NOT NULL DEFAULT '[]',
			listing_type VARCHAR NOT NULL DEFAULT '',
			status VARCHAR NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL
		)`,

		// property_id is NULL for searches that did not target a listing.
		`CREATE TABLE IF NOT EXISTS user_interactions (
			id VARCHAR PRIMARY KEY,
			user_id VARCHAR NOT NULL,
			interaction_type VARCHAR NOT NULL,
			property_id VARCHAR,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS favorites (
			user_id VARCHAR NOT NULL,
			property_id VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, property_id)
		)`,

		`CREATE TABLE IF NOT EXISTS filter_usage (
			id VARCHAR PRIMARY KEY,
			location VARCHAR,
			listing_type VARCHAR,
			bedrooms INTEGER,
			price_min DOUBLE,
			price_max DOUBLE,
			created_at TIMESTAMP NOT NULL
		)`,

		// One row per consecutive pair of filters run in a session.
		`CREATE TABLE IF NOT EXISTS filter_sequences (
			id VARCHAR PRIMARY KEY,
			previous_filter_id VARCHAR NOT NULL,
			current_filter_id VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
	}
}

// IndexQueries returns the indexes backing the recommendation reads.
// properties has none besides its primary key: DuckDB upserts cannot
// rewrite indexed columns, and status changes on every moderation pass.
func IndexQueries() []string {
	return []string{
		`DROP INDEX IF EXISTS idx_properties_status_created`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_user_created ON user_interactions(user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_created ON user_interactions(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_favorites_created ON favorites(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_filter_sequences_previous ON filter_sequences(previous_filter_id)`,
	}
}
