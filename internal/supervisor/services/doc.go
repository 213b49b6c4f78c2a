// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

/*
Package services provides suture.Service wrappers for the server's long-running
components.

Each wrapper implements suture's Service interface and fmt.Stringer:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTPServerService runs an *http.Server. On cancellation it calls Shutdown with
the configured timeout and returns ctx.Err(), which suture treats as a clean
stop. A listener failure is returned as an error and suture restarts the
service with backoff.

CheckpointService runs CHECKPOINT against a file-backed DuckDB on a fixed
interval. Failures are logged and retried on the next tick.

# Usage

	tree.AddDataService(services.NewCheckpointService(db, cfg.Database.CheckpointInterval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

Both accept interfaces (HTTPServer, Checkpointer) so tests can drive them with
fakes.
*/
package services
