// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

/*
Package services adapts AlbumAtlas components to suture.Service.

  - HTTPServerService: ListenAndServe/Shutdown to Serve(ctx)
  - WebSocketHubService: delegates to Hub.RunWithContext
  - CatalogWarmupService: loads the master catalog once at startup

Return values drive the supervisor:

	ctx.Err()              shutdown requested
	suture.ErrDoNotRestart finished for good (warmup after a load)
	other error            restart after backoff
*/
package services
