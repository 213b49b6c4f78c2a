// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

// Package query provides SQL query building utilities for the database package.
package query

import (
	"fmt"
	"strings"
	"time"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddApproved("p")
//	wb.AddLocation("p.city", "jakarta")
//	wb.AddMinInt("p.bedrooms", &beds)
//	whereClause, args := wb.Build()
//	// p.status = ? AND contains(lower(p.city), lower(?)) AND p.bedrooms >= ?
type WhereBuilder struct {
	clauses []string
	args    []any
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []any{},
	}
}

// AddClause adds a raw WHERE clause with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...any) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddApproved restricts rows to approved listings of the given table alias.
func (wb *WhereBuilder) AddApproved(alias string) *WhereBuilder {
	return wb.AddClause(column(alias, "status")+" = ?", "approved")
}

// AddIn adds "column IN (?, ?, ...)". An empty list matches nothing.
func (wb *WhereBuilder) AddIn(col string, values []string) *WhereBuilder {
	if len(values) == 0 {
		wb.clauses = append(wb.clauses, "1=0")
		return wb
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		wb.args = append(wb.args, v)
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", col, strings.Join(placeholders, ", ")))
	return wb
}

// AddNotEqual adds "column <> ?" unless value is empty.
func (wb *WhereBuilder) AddNotEqual(col, value string) *WhereBuilder {
	if value == "" {
		return wb
	}
	return wb.AddClause(col+" <> ?", value)
}

// AddLocation adds a case-insensitive substring match. Blank locations are skipped.
func (wb *WhereBuilder) AddLocation(col, location string) *WhereBuilder {
	location = strings.TrimSpace(location)
	if location == "" {
		return wb
	}
	return wb.AddClause(fmt.Sprintf("contains(lower(%s), lower(?))", col), location)
}

// AddEqual adds "column = ?" unless value is empty.
func (wb *WhereBuilder) AddEqual(col, value string) *WhereBuilder {
	if value == "" {
		return wb
	}
	return wb.AddClause(col+" = ?", value)
}

// AddMinInt adds "column >= ?" when floor is set.
func (wb *WhereBuilder) AddMinInt(col string, floor *int) *WhereBuilder {
	if floor == nil {
		return wb
	}
	return wb.AddClause(col+" >= ?", *floor)
}

// AddRange adds inclusive bounds for whichever of lo and hi are set.
func (wb *WhereBuilder) AddRange(col string, lo, hi *float64) *WhereBuilder {
	if lo != nil {
		wb.AddClause(col+" >= ?", *lo)
	}
	if hi != nil {
		wb.AddClause(col+" <= ?", *hi)
	}
	return wb
}

// AddSince adds "column >= ?" for a non-zero time.
func (wb *WhereBuilder) AddSince(col string, since time.Time) *WhereBuilder {
	if since.IsZero() {
		return wb
	}
	return wb.AddClause(col+" >= ?", since)
}

// Build constructs the final WHERE clause and returns it with arguments.
// Clauses are joined with "AND". Returns ("1=1", []) if no clauses were added.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.clauses) == 0 {
		return "1=1", []any{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []any) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

func column(alias, name string) string {
	if alias == "" {
		return name
	}
	return alias + "." + name
}
