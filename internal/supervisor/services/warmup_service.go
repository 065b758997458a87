// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/albumatlas/internal/cache"
	"github.com/tomtom215/albumatlas/internal/logging"
)

// CatalogLoader is satisfied by *cache.Master.
type CatalogLoader interface {
	Load(ctx context.Context) (cache.Snapshot, error)
}

// CatalogWarmupService builds the master catalog at startup so the first
// query does not see "loading". A failed build is returned to the supervisor,
// which restarts the service after its backoff. Once the catalog is loaded
// the service exits for good.
type CatalogWarmupService struct {
	loader CatalogLoader
	name   string
}

func NewCatalogWarmupService(loader CatalogLoader) *CatalogWarmupService {
	return &CatalogWarmupService{loader: loader, name: "catalog-warmup"}
}

// Serve implements suture.Service.
func (s *CatalogWarmupService) Serve(ctx context.Context) error {
	snap, err := s.loader.Load(ctx)
	switch {
	case err == nil:
		logging.Info().
			Str("build_id", snap.BuildID).
			Int("items", len(snap.Items)).
			Msg("Catalog warmed")
		return suture.ErrDoNotRestart
	case errors.Is(err, cache.ErrClosed):
		return suture.ErrDoNotRestart
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		logging.Warn().Err(err).Msg("Catalog warmup failed")
		return fmt.Errorf("catalog warmup: %w", err)
	}
}

func (s *CatalogWarmupService) String() string {
	return s.name
}
