// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/hunian/internal/config"
	"github.com/tomtom215/hunian/internal/database"
	"github.com/tomtom215/hunian/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hunianctl",
		Short:         "Operate a Hunian recommendation server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			logging.Init(logging.Config{
				Level:  level,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})
		},
	}
	root.PersistentFlags().String("log-level", "warn", "log level for diagnostics on stderr")

	root.AddCommand(newSeedCmd(), newSchemaCmd(), newRecommendCmd(), newVersionCmd())
	return root
}

// --- seed ---

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo catalog, users and filters",
		Long: `Load the demo catalog into a DuckDB file.

Rows have fixed ids, so seeding twice leaves the store unchanged.

Examples:
  hunianctl seed
  hunianctl seed --db ./hunian.duckdb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCfg, err := databaseConfig(cmd)
			if err != nil {
				return err
			}

			db, err := database.New(dbCfg)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer func() { _ = db.Close() }()

			summary, err := db.SeedDemoData(cmd.Context(), time.Now().UTC())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"seeded %s: %d properties, %d interactions, %d favorites, %d filters, %d transitions\n",
				dbCfg.Path, summary.Properties, summary.Interactions, summary.Favorites, summary.Filters, summary.Transitions)
			return nil
		},
	}
	cmd.Flags().String("db", "", "DuckDB path (defaults to DUCKDB_PATH or the config file)")
	return cmd
}

// databaseConfig loads the database section and applies --db.
func databaseConfig(cmd *cobra.Command) (*config.DatabaseConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		cfg.Database.Path = path
	}
	return &cfg.Database, nil
}

// --- schema ---

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the DDL the server applies on startup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, q := range database.TableCreationQueries() {
				fmt.Fprintf(out, "%s;\n\n", strings.TrimSpace(q))
			}
			for _, q := range database.IndexQueries() {
				fmt.Fprintf(out, "%s;\n", strings.TrimSpace(q))
			}
			return nil
		},
	}
}

// --- recommend ---

func newRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Ask a running server for recommendations",
		Long: `Ask a running server for recommendations and print the JSON response.

Every identifier is optional. Without any the server answers with trending
properties.

Examples:
  hunianctl recommend --user demo-ayu
  hunianctl recommend --filter demo-f-jaksel --k 3
  hunianctl recommend --server http://hunian:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, _ := cmd.Flags().GetString("server")
			user, _ := cmd.Flags().GetString("user")
			filter, _ := cmd.Flags().GetString("filter")
			session, _ := cmd.Flags().GetString("session")
			k, _ := cmd.Flags().GetInt("k")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			if k < 0 {
				return fmt.Errorf("--k must not be negative")
			}

			client := newAPIClient(server, timeout)
			resp, err := client.recommend(cmd.Context(), recommendRequest{
				UserID:          user,
				CurrentFilterID: filter,
				SessionID:       session,
				K:               k,
			})
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding response: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().String("server", "http://localhost:8080", "base URL of the recommendation server")
	cmd.Flags().String("user", "", "user id")
	cmd.Flags().String("filter", "", "current filter id")
	cmd.Flags().String("session", "", "session id")
	cmd.Flags().Int("k", 0, "number of recommendations (0 = server default)")
	cmd.Flags().Duration("timeout", 15*time.Second, "HTTP timeout")
	return cmd
}

// --- version ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hunianctl %s\n", version)
		},
	}
}
