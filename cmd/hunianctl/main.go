// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

// Command hunianctl is the operator CLI for the recommendation server.
//
//	hunianctl seed --db /data/hunian.duckdb
//	hunianctl schema
//	hunianctl recommend --server http://localhost:8080 --user demo-ayu
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
