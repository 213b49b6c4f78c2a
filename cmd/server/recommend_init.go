// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hunian/internal/config"
	"github.com/tomtom215/hunian/internal/database"
	"github.com/tomtom215/hunian/internal/logging"
	"github.com/tomtom215/hunian/internal/recommend"
	"github.com/tomtom215/hunian/internal/recommend/algorithms"
)

// initRecommend builds the engine and registers the strategy cascade in
// order: interaction, filter_sequence, trending.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, dp recommend.DataProvider, logger zerolog.Logger) (*recommend.Engine, error) {
	engineCfg := buildEngineConfig(&cfg.Recommend)

	engine, err := recommend.NewEngine(engineCfg, dp, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}
	engine.RegisterStrategies(algorithms.Cascade(dp, engineCfg)...)

	logger.Info().
		Strs("strategies", engine.Strategies()).
		Int("default_k", engineCfg.Limits.DefaultK).
		Int("min_overlap", engineCfg.Collaborative.MinOverlap).
		Dur("trending_window", engineCfg.Trending.Window).
		Msg("Recommendation engine initialized")

	return engine, nil
}

// buildEngineConfig maps the recommend config section onto the engine config.
func buildEngineConfig(rc *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		Limits: recommend.LimitsConfig{
			DefaultK:         rc.DefaultK,
			MaxK:             rc.MaxK,
			SeenInteractions: rc.SeenInteractionLimit,
		},
		Collaborative: recommend.CollaborativeConfig{
			InteractionWindow: rc.NeighborInteractionLimit,
			MinOverlap:        rc.MinNeighborOverlap,
			MaxNeighbors:      rc.MaxNeighbors,
			FavoriteWeight:    rc.FavoriteWeight,
		},
		FilterSequence: recommend.FilterSequenceConfig{
			MaxFollowUpFilters:  rc.MaxFollowUpFilters,
			PropertiesPerFilter: rc.PropertiesPerFilter,
		},
		Trending: recommend.TrendingConfig{
			Window: rc.TrendingWindow,
		},
	}
}

// seedDemoData loads the demo catalog (SEED_DEMO_DATA=true).
func seedDemoData(ctx context.Context, db *database.DB) error {
	logging.Info().Msg("Demo data seeding enabled (SEED_DEMO_DATA=true)")

	summary, err := db.SeedDemoData(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	logging.Info().
		Int("properties", summary.Properties).
		Int("interactions", summary.Interactions).
		Int("favorites", summary.Favorites).
		Int("filters", summary.Filters).
		Int("transitions", summary.Transitions).
		Msg("Demo data seeded")
	return nil
}
