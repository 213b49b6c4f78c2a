// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

// Package config loads Hunian's runtime configuration.
//
// Configuration is layered with Koanf v2, later layers overriding earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. A YAML file: CONFIG_PATH, ./config.yaml, ./config.yml or /etc/hunian/config.yaml
//  3. Environment variables listed in envMappings
//
// Environment variables that are not listed are ignored, so unrelated
// process environment never leaks into the configuration.
//
// Example config.yaml:
//
//	server:
//	  port: 8080
//	  request_timeout: 10s
//	database:
//	  path: /data/hunian.duckdb
//	recommend:
//	  default_k: 8
//	  trending_window: 720h
//	security:
//	  cors_origins: ["*"]
//
// Load validates the merged result and returns an error describing the
// first invalid field.
package config
