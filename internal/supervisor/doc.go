// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

/*
Package supervisor provides process supervision for AlbumAtlas using suture v4.

Long-running components are organized into three layers:

	RootSupervisor ("albumatlas")
	├── CatalogSupervisor ("catalog-layer")
	│   └── CatalogWarmupService (if CATALOG_WARM_ON_STARTUP)
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocketHubService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures independently, so a warmup build that keeps
failing backs off without restarting the HTTP server.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)

# Logging

Supervisor events (service panics, restarts, backoff) are reported through
sutureslog. Pass logging.NewSlogLogger() so they land in the same zerolog
stream as the rest of the application.

# Shutdown

Canceling the Serve context stops every layer. Services that do not return
within ShutdownTimeout are listed by UnstoppedServiceReport.
*/
package supervisor
