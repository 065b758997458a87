// AlbumAtlas - Decade-Browsable Album Catalog Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/albumatlas

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/tomtom215/albumatlas/docs" // Import generated swagger docs
	"github.com/tomtom215/albumatlas/internal/api"
	"github.com/tomtom215/albumatlas/internal/cache"
	"github.com/tomtom215/albumatlas/internal/catalog"
	"github.com/tomtom215/albumatlas/internal/config"
	"github.com/tomtom215/albumatlas/internal/logging"
	"github.com/tomtom215/albumatlas/internal/metrics"
	"github.com/tomtom215/albumatlas/internal/sources"
	"github.com/tomtom215/albumatlas/internal/supervisor"
	"github.com/tomtom215/albumatlas/internal/supervisor/services"
	ws "github.com/tomtom215/albumatlas/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Strs("tags", cfg.Primary.Tags).
		Int("max_items", cfg.Catalog.MaxItems).
		Bool("warm_on_startup", cfg.Catalog.WarmOnStartup).
		Msg("Starting AlbumAtlas")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins in production")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wsHub := ws.NewHub()

	builder := catalog.NewBuilder(newTagFetcher(cfg), newEnricher(cfg), cfg)
	builder.AddObserver(wsHub)

	master := cache.NewMaster(ctx, builder.Build, cfg.Catalog.BuildTimeout)
	master.AddObserver(wsHub)
	defer master.Close()

	index, err := catalog.NewDecadeIndex(cfg.Catalog.NewestDecade, cfg.Catalog.OldestDecadeEnd)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build decade index")
	}
	svc := catalog.NewService(master, index, cfg.Catalog.MaxWait)

	handler := api.NewHandler(svc, wsHub, cfg)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + cfg.Catalog.MaxWait,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if cfg.Catalog.WarmOnStartup {
		tree.AddCatalogService(services.NewCatalogWarmupService(master))
		logging.Info().Msg("Catalog warmup scheduled")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, s := range unstopped {
			logging.Warn().Str("service", s.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// newTagFetcher wires the primary source client into the tag fan-out.
func newTagFetcher(cfg *config.Config) *sources.TagFetcher {
	return sources.NewTagFetcher(sources.NewLastFMClient(&cfg.Primary), &cfg.Primary)
}

// newEnricher wires the secondary source client, optionally behind a
// circuit breaker, into the paced enricher.
func newEnricher(cfg *config.Config) *sources.Enricher {
	var searcher sources.ReleaseSearcher = sources.NewDiscogsClient(&cfg.Secondary)
	if cfg.Secondary.BreakerEnabled {
		searcher = sources.NewCircuitBreakerSearcher(searcher, "discogs", cfg.Secondary.BreakerTimeout)
		logging.Info().Dur("open_timeout", cfg.Secondary.BreakerTimeout).Msg("Release lookups protected by circuit breaker")
	}
	return sources.NewEnricher(searcher, sources.NewScheduler(&cfg.Secondary), &cfg.Secondary)
}
