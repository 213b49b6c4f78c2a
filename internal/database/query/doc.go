// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

// Package query provides SQL query building utilities for the database package.
//
// The WhereBuilder is a fluent helper for parameterized WHERE clauses. Every
// optional criterion is skipped when unset, so a filter with no criteria
// yields "1=1":
//
//	wb := query.NewWhereBuilder()
//	wb.AddApproved("p")
//	wb.AddLocation("p.city", usage.Location)
//	wb.AddEqual("p.listing_type", usage.ListingType)
//	wb.AddMinInt("p.bedrooms", usage.Bedrooms)
//	wb.AddRange("p.price", usage.PriceMin, usage.PriceMax)
//	where, args := wb.BuildWithPrefix()
//
// Values are always bound through placeholders. Column names are supplied by
// the caller and must never come from user input.
package query
