// Hunian - Related-Property Recommendations for Real-Estate Catalogs
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hunian

/*
Package supervisor provides process supervision for the recommendation server
using suture v4.

The tree has two layers:

	RootSupervisor ("hunian")
	├── DataSupervisor ("data-layer")
	│   └── CheckpointService (file databases only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures on its own, so a checkpoint loop in backoff never
takes the HTTP server down with it.

Supervisor events are logged through sutureslog. The server passes a slog
logger backed by the zerolog bridge in internal/logging, so suture events
land in the same JSON stream as everything else:

	slogger := slog.New(logging.NewSlogHandler())
	tree, err := supervisor.NewSupervisorTree(slogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCheckpointService(db, interval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, timeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	errCh := tree.ServeBackground(ctx)
	<-errCh

Services return ctx.Err() on a clean stop. Any other return value is a failure
and the service is restarted with backoff once FailureThreshold is exceeded.
*/
package supervisor
