// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

/*
Package main is the entry point for the Hunian recommendation server.

The server answers "what else should this visitor look at" for a property
catalog. Each request runs a short cascade of strategies and returns the first
non-empty list: similar users (interaction), popular follow-up searches
(filter_sequence), then recent favorites or new listings (trending).

# Application Architecture

	RootSupervisor ("hunian")
	├── DataSupervisor ("data-layer")
	│   └── CheckpointService (file databases only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Initialization order:

 1. Configuration: Koanf v2 with defaults, an optional YAML file and environment variables
 2. Logging: zerolog with JSON or console output
 3. Database: DuckDB behind a gobreaker circuit breaker
 4. Demo data (optional): deterministic catalog, users and filters
 5. Recommendation engine: interaction, filter_sequence and trending strategies
 6. HTTP router: chi with request IDs, CORS, rate limiting and Prometheus metrics
 7. Supervisor tree: suture v4, logged through sutureslog

# Configuration

Priority: environment variables > config file > defaults.

	HTTP_PORT=8080                      # listen port
	REQUEST_TIMEOUT=10s                 # deadline for one recommendation request
	DUCKDB_PATH=/data/hunian.duckdb     # ":memory:" for an ephemeral store
	DUCKDB_QUERY_TIMEOUT=5s             # per-query deadline
	DUCKDB_CHECKPOINT_INTERVAL=5m       # 0 disables periodic checkpoints
	SEED_DEMO_DATA=false                # load the demo catalog on startup
	RECOMMEND_DEFAULT_K=8               # list length when the request has no k
	RECOMMEND_MIN_OVERLAP=2             # shared properties needed for a neighbor
	RECOMMEND_TRENDING_WINDOW=720h      # favorites counted for trending
	CORS_ORIGINS=*                      # comma separated
	RATE_LIMIT_REQUESTS=120             # per IP per RATE_LIMIT_WINDOW
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server stops
accepting connections and gets SHUTDOWN_TIMEOUT to drain in-flight requests.
The database is checkpointed and closed last.

# Example Usage

	SEED_DEMO_DATA=true DUCKDB_PATH=:memory: ./hunian-server

	curl -s -X POST localhost:8080/api/v1/recommendations \
	  -H 'Content-Type: application/json' \
	  -d '{"userId":"demo-ayu"}'
*/
package main
