// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config files searched, first match wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/hunian/config.yaml",
	"/etc/hunian/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    64 << 10,
		},
		Database: DatabaseConfig{
			Path:                    "/data/hunian.duckdb",
			MaxMemory:               "1GB",
			Threads:                 0,
			QueryTimeout:            5 * time.Second,
			SeedDemoData:            false,
			CheckpointInterval:      5 * time.Minute,
			BreakerFailureThreshold: 5,
			BreakerOpenTimeout:      30 * time.Second,
			BreakerHalfOpenRequests: 1,
		},
		Recommend: RecommendConfig{
			DefaultK:                 8,
			MaxK:                     50,
			SeenInteractionLimit:     100,
			NeighborInteractionLimit: 500,
			MinNeighborOverlap:       2,
			MaxNeighbors:             20,
			FavoriteWeight:           2.0,
			MaxFollowUpFilters:       5,
			PropertiesPerFilter:      3,
			TrendingWindow:           30 * 24 * time.Hour,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     120,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf merges defaults, the config file and the environment.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// HTTP_PORT -> server.port, DUCKDB_PATH -> database.path, ...
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"http_host":              "server.host",
	"http_port":              "server.port",
	"http_timeout":           "server.timeout",
	"request_timeout":        "server.request_timeout",
	"shutdown_timeout":       "server.shutdown_timeout",
	"max_request_body_bytes": "server.max_body_bytes",

	"duckdb_path":                 "database.path",
	"duckdb_max_memory":           "database.max_memory",
	"duckdb_threads":              "database.threads",
	"duckdb_query_timeout":        "database.query_timeout",
	"seed_demo_data":              "database.seed_demo_data",
	"duckdb_checkpoint_interval":  "database.checkpoint_interval",
	"db_breaker_failures":         "database.breaker_failure_threshold",
	"db_breaker_open_timeout":     "database.breaker_open_timeout",
	"db_breaker_half_open_probes": "database.breaker_half_open_requests",

	"recommend_default_k":              "recommend.default_k",
	"recommend_max_k":                  "recommend.max_k",
	"recommend_seen_interaction_limit": "recommend.seen_interaction_limit",
	"recommend_neighbor_window":        "recommend.neighbor_interaction_limit",
	"recommend_min_overlap":            "recommend.min_neighbor_overlap",
	"recommend_max_neighbors":          "recommend.max_neighbors",
	"recommend_favorite_weight":        "recommend.favorite_weight",
	"recommend_max_follow_up_filters":  "recommend.max_follow_up_filters",
	"recommend_properties_per_filter":  "recommend.properties_per_filter",
	"recommend_trending_window":        "recommend.trending_window",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unknown variables map to "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
