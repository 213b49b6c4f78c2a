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

	"github.com/tomtom215/hunian/internal/database/query"
	"github.com/tomtom215/hunian/internal/recommend"
)

// DB serves every read the recommendation strategies need.
var _ recommend.DataProvider = (*DB)(nil)

const propertyColumns = `p.id, p.title, p.city, p.district, p.price, p.property_type,
	p.bedrooms, p.bathrooms, p.images, p.listing_type, p.status, p.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner, extra ...any) (recommend.Property, error) {
	var p recommend.Property
	var images string
	dest := append([]any{
		&p.ID, &p.Title, &p.City, &p.District, &p.Price, &p.PropertyType,
		&p.Bedrooms, &p.Bathrooms, &images, &p.ListingType, &p.Status, &p.CreatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return p, fmt.Errorf("failed to scan property: %w", err)
	}
	if images != "" {
		if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
			return p, fmt.Errorf("property %s has malformed images: %w", p.ID, err)
		}
	}
	return p, nil
}

func interactionTypeStrings(types []recommend.InteractionType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// GetUserInteractions returns the user's newest interactions of the given types.
func (db *DB) GetUserInteractions(ctx context.Context, userID string, types []recommend.InteractionType, limit int) ([]recommend.Interaction, error) {
	if userID == "" || limit <= 0 {
		return nil, nil
	}
	wb := query.NewWhereBuilder().
		AddClause("user_id = ?", userID).
		AddIn("interaction_type", interactionTypeStrings(types))
	return db.queryInteractions(ctx, "get_user_interactions", wb, limit)
}

// GetNeighborInteractions returns the newest interactions of every other user.
// Rows without a property are skipped before the limit applies.
func (db *DB) GetNeighborInteractions(ctx context.Context, excludeUserID string, types []recommend.InteractionType, limit int) ([]recommend.Interaction, error) {
	if limit <= 0 {
		return nil, nil
	}
	wb := query.NewWhereBuilder().
		AddNotEqual("user_id", excludeUserID).
		AddIn("interaction_type", interactionTypeStrings(types)).
		AddClause("property_id IS NOT NULL")
	return db.queryInteractions(ctx, "get_neighbor_interactions", wb, limit)
}

func (db *DB) queryInteractions(ctx context.Context, operation string, wb *query.WhereBuilder, limit int) ([]recommend.Interaction, error) {
	where, args := wb.BuildWithPrefix()
	q := fmt.Sprintf(`SELECT user_id, interaction_type, property_id, created_at
		FROM user_interactions
		%s
		ORDER BY created_at DESC, id
		LIMIT ?`, where)
	args = append(args, limit)

	return run(ctx, db, operation, "user_interactions", func(ctx context.Context, conn *sql.DB) ([]recommend.Interaction, error) {
		rows, err := conn.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		defer closeQuietly(rows)

		var out []recommend.Interaction
		for rows.Next() {
			var in recommend.Interaction
			var kind string
			var propertyID sql.NullString
			if err := rows.Scan(&in.UserID, &kind, &propertyID, &in.Timestamp); err != nil {
				return nil, fmt.Errorf("failed to scan interaction: %w", err)
			}
			in.Type = recommend.InteractionType(kind)
			in.PropertyID = propertyID.String
			out = append(out, in)
		}
		return out, rows.Err()
	})
}

// GetUserFavorites returns all of the user's favorites, newest first.
func (db *DB) GetUserFavorites(ctx context.Context, userID string) ([]recommend.Favorite, error) {
	if userID == "" {
		return nil, nil
	}
	wb := query.NewWhereBuilder().AddClause("user_id = ?", userID)
	return db.queryFavorites(ctx, "get_user_favorites", wb)
}

// GetNeighborFavorites returns the favorites of every other user.
func (db *DB) GetNeighborFavorites(ctx context.Context, excludeUserID string) ([]recommend.Favorite, error) {
	wb := query.NewWhereBuilder().AddNotEqual("user_id", excludeUserID)
	return db.queryFavorites(ctx, "get_neighbor_favorites", wb)
}

func (db *DB) queryFavorites(ctx context.Context, operation string, wb *query.WhereBuilder) ([]recommend.Favorite, error) {
	where, args := wb.BuildWithPrefix()
	q := fmt.Sprintf(`SELECT user_id, property_id, created_at
		FROM favorites
		%s
		ORDER BY created_at DESC, user_id, property_id`, where)

	return run(ctx, db, operation, "favorites", func(ctx context.Context, conn *sql.DB) ([]recommend.Favorite, error) {
		rows, err := conn.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		defer closeQuietly(rows)

		var out []recommend.Favorite
		for rows.Next() {
			var f recommend.Favorite
			if err := rows.Scan(&f.UserID, &f.PropertyID, &f.CreatedAt); err != nil {
				return nil, fmt.Errorf("failed to scan favorite: %w", err)
			}
			out = append(out, f)
		}
		return out, rows.Err()
	})
}

// GetNextFilters counts the filters run right after filterID.
func (db *DB) GetNextFilters(ctx context.Context, filterID string, limit int) ([]recommend.FilterTransition, error) {
	if filterID == "" || limit <= 0 {
		return nil, nil
	}
	const q = `SELECT current_filter_id, COUNT(*) AS transitions
		FROM filter_sequences
		WHERE previous_filter_id = ?
		GROUP BY current_filter_id
		ORDER BY transitions DESC, current_filter_id
		LIMIT ?`

	return run(ctx, db, "get_next_filters", "filter_sequences", func(ctx context.Context, conn *sql.DB) ([]recommend.FilterTransition, error) {
		rows, err := conn.QueryContext(ctx, q, filterID, limit)
		if err != nil {
			return nil, err
		}
		defer closeQuietly(rows)

		var out []recommend.FilterTransition
		for rows.Next() {
			var tr recommend.FilterTransition
			if err := rows.Scan(&tr.FilterID, &tr.Count); err != nil {
				return nil, fmt.Errorf("failed to scan filter transition: %w", err)
			}
			out = append(out, tr)
		}
		return out, rows.Err()
	})
}

// GetFilterUsages returns the stored criteria of the given filters keyed by id.
func (db *DB) GetFilterUsages(ctx context.Context, ids []string) (map[string]recommend.FilterUsage, error) {
	if len(ids) == 0 {
		return map[string]recommend.FilterUsage{}, nil
	}
	where, args := query.NewWhereBuilder().AddIn("id", ids).BuildWithPrefix()
	q := fmt.Sprintf(`SELECT id, location, listing_type, bedrooms, price_min, price_max
		FROM filter_usage
		%s`, where)

	return run(ctx, db, "get_filter_usages", "filter_usage", func(ctx context.Context, conn *sql.DB) (map[string]recommend.FilterUsage, error) {
		rows, err := conn.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		defer closeQuietly(rows)

		out := make(map[string]recommend.FilterUsage, len(ids))
		for rows.Next() {
			var (
				f                     recommend.FilterUsage
				location, listingType sql.NullString
				bedrooms              sql.NullInt64
				priceMin, priceMax    sql.NullFloat64
			)
			if err := rows.Scan(&f.ID, &location, &listingType, &bedrooms, &priceMin, &priceMax); err != nil {
				return nil, fmt.Errorf("failed to scan filter usage: %w", err)
			}
			f.Location = location.String
			f.ListingType = listingType.String
			if bedrooms.Valid {
				n := int(bedrooms.Int64)
				f.Bedrooms = &n
			}
			if priceMin.Valid {
				f.PriceMin = &priceMin.Float64
			}
			if priceMax.Valid {
				f.PriceMax = &priceMax.Float64
			}
			out[f.ID] = f
		}
		return out, rows.Err()
	})
}

// SearchProperties returns approved properties matching q, newest first.
func (db *DB) SearchProperties(ctx context.Context, q recommend.PropertyQuery, limit int) ([]recommend.Property, error) {
	if limit <= 0 {
		return nil, nil
	}
	wb := query.NewWhereBuilder().
		AddApproved("p").
		AddLocation("p.city", q.Location).
		AddEqual("p.listing_type", q.ListingType).
		AddMinInt("p.bedrooms", q.MinBedrooms).
		AddRange("p.price", q.PriceMin, q.PriceMax)
	return db.queryProperties(ctx, "search_properties", wb, limit)
}

// GetNewestProperties returns the newest approved properties.
func (db *DB) GetNewestProperties(ctx context.Context, limit int) ([]recommend.Property, error) {
	if limit <= 0 {
		return nil, nil
	}
	return db.queryProperties(ctx, "get_newest_properties", query.NewWhereBuilder().AddApproved("p"), limit)
}

func (db *DB) queryProperties(ctx context.Context, operation string, wb *query.WhereBuilder, limit int) ([]recommend.Property, error) {
	where, args := wb.BuildWithPrefix()
	q := fmt.Sprintf(`SELECT %s
		FROM properties p
		%s
		ORDER BY p.created_at DESC, p.id
		LIMIT ?`, propertyColumns, where)
	args = append(args, limit)

	return run(ctx, db, operation, "properties", func(ctx context.Context, conn *sql.DB) ([]recommend.Property, error) {
		rows, err := conn.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		defer closeQuietly(rows)

		var out []recommend.Property
		for rows.Next() {
			p, err := scanProperty(rows)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, rows.Err()
	})
}

// GetApprovedProperties returns the approved properties among ids keyed by id.
func (db *DB) GetApprovedProperties(ctx context.Context, ids []string) (map[string]recommend.Property, error) {
	if len(ids) == 0 {
		return map[string]recommend.Property{}, nil
	}
	where, args := query.NewWhereBuilder().
		AddApproved("p").
		AddIn("p.id", ids).
		BuildWithPrefix()
	q := fmt.Sprintf(`SELECT %s FROM properties p %s`, propertyColumns, where)

	return run(ctx, db, "get_approved_properties", "properties", func(ctx context.Context, conn *sql.DB) (map[string]recommend.Property, error) {
		rows, err := conn.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		defer closeQuietly(rows)

		out := make(map[string]recommend.Property, len(ids))
		for rows.Next() {
			p, err := scanProperty(rows)
			if err != nil {
				return nil, err
			}
			out[p.ID] = p
		}
		return out, rows.Err()
	})
}

// GetTrendingProperties counts favorites created since the given time per
// approved property, excluding everything excludeFavoritesOf has favorited.
func (db *DB) GetTrendingProperties(ctx context.Context, since time.Time, excludeFavoritesOf string, limit int) ([]recommend.TrendingProperty, error) {
	if limit <= 0 {
		return nil, nil
	}

	wb := query.NewWhereBuilder().AddSince("f.created_at", since)
	if excludeFavoritesOf != "" {
		wb.AddClause("f.property_id NOT IN (SELECT property_id FROM favorites WHERE user_id = ?)", excludeFavoritesOf)
	}
	countWhere, args := wb.BuildWithPrefix()

	approvedWhere, approvedArgs := query.NewWhereBuilder().AddApproved("p").BuildWithPrefix()
	args = append(args, approvedArgs...)
	args = append(args, limit)

	q := fmt.Sprintf(`WITH counts AS (
			SELECT f.property_id, COUNT(*) AS favorites
			FROM favorites f
			%s
			GROUP BY f.property_id
		)
		SELECT %s, c.favorites
		FROM counts c
		JOIN properties p ON p.id = c.property_id
		%s
		ORDER BY c.favorites DESC, p.created_at DESC, p.id
		LIMIT ?`, countWhere, propertyColumns, approvedWhere)

	return run(ctx, db, "get_trending_properties", "favorites", func(ctx context.Context, conn *sql.DB) ([]recommend.TrendingProperty, error) {
		rows, err := conn.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		defer closeQuietly(rows)

		var out []recommend.TrendingProperty
		for rows.Next() {
			var favorites int
			p, err := scanProperty(rows, &favorites)
			if err != nil {
				return nil, err
			}
			out = append(out, recommend.TrendingProperty{Property: p, Favorites: favorites})
		}
		return out, rows.Err()
	})
}
