// Command catalog-sync backfills year, director and artwork for local movies
// that carry a TMDB id but were created from partial client data.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"movielogger/database"
	"movielogger/internal/config"
	"movielogger/internal/ingestion/tmdb"
	"movielogger/internal/logger"
	"movielogger/internal/microservices/http-api/repository"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.ValidateCatalogSync(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	appLogger, closer := logger.New(cfg)
	err = run(cfg, appLogger)
	if err != nil {
		appLogger.Error("catalog_sync_failed", "error", err)
	}
	closer.Close()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	var gateway tmdb.Gateway = tmdb.NewClient(tmdb.Config{
		BaseURL:      cfg.TMDBAPIURL,
		ImageBaseURL: cfg.TMDBImageBaseURL,
		APIKey:       cfg.TMDBAPIKey,
	}, logger)

	if cfg.RedisURL != "" {
		cache, err := tmdb.NewRedisCache(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			logger.Warn("cache_disabled", "error", err)
		} else {
			defer cache.Close()
			gateway = tmdb.NewCachedGateway(gateway, cache, cfg.CacheDuration(), logger)
		}
	}

	enricher := tmdb.NewEnricher(
		repository.NewMovieRepository(db),
		gateway,
		tmdb.EnrichConfig{Workers: cfg.CatalogSyncWorkers, BatchSize: cfg.CatalogSyncBatch},
		logger,
	)

	logger.Info("catalog_sync_started",
		"workers", cfg.CatalogSyncWorkers,
		"batch", cfg.CatalogSyncBatch,
	)
	stats, err := enricher.Run(ctx)
	if err != nil {
		return fmt.Errorf("enrich catalog: %w", err)
	}
	if stats.Failed > 0 {
		// partial failures are retried on the next run
		logger.Warn("catalog_sync_partial", "failed", stats.Failed)
	}
	return nil
}
