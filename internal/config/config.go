// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`          // read/write timeout of the HTTP server
	RequestTimeout  time.Duration `koanf:"request_timeout"`  // deadline for one recommendation request
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // graceful shutdown budget
	MaxBodyBytes    int64         `koanf:"max_body_bytes"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path         string        `koanf:"path"`
	MaxMemory    string        `koanf:"max_memory"`
	Threads      int           `koanf:"threads"` // 0 = runtime.NumCPU()
	QueryTimeout time.Duration `koanf:"query_timeout"`
	SeedDemoData bool          `koanf:"seed_demo_data"`

	// CheckpointInterval flushes the WAL of file databases; 0 disables it.
	CheckpointInterval time.Duration `koanf:"checkpoint_interval"`

	// Circuit breaker around recommendation reads
	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold"`
	BreakerOpenTimeout      time.Duration `koanf:"breaker_open_timeout"`
	BreakerHalfOpenRequests uint32        `koanf:"breaker_half_open_requests"`
}

// RecommendConfig holds the strategy cascade limits.
// Every cap bounds the worst-case work done for a single request.
type RecommendConfig struct {
	DefaultK int `koanf:"default_k"`
	MaxK     int `koanf:"max_k"`

	SeenInteractionLimit     int     `koanf:"seen_interaction_limit"`
	NeighborInteractionLimit int     `koanf:"neighbor_interaction_limit"`
	MinNeighborOverlap       int     `koanf:"min_neighbor_overlap"`
	MaxNeighbors             int     `koanf:"max_neighbors"`
	FavoriteWeight           float64 `koanf:"favorite_weight"`

	MaxFollowUpFilters  int `koanf:"max_follow_up_filters"`
	PropertiesPerFilter int `koanf:"properties_per_filter"`

	TrendingWindow time.Duration `koanf:"trending_window"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in that order, and validates the result.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
