package tmdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"movielogger/internal/microservices/http-api/models"
)

// MovieStore is the part of the movie repository the Enricher needs.
type MovieStore interface {
	ListIncomplete(ctx context.Context, afterID int64, limit int) ([]models.Movie, error)
	FillMissing(ctx context.Context, id int64, meta models.MovieMetadata) error
}

type EnrichConfig struct {
	Workers   int
	BatchSize int
}

// EnrichStats summarises one Enricher run.
type EnrichStats struct {
	Scanned  int
	Updated  int
	NotFound int
	Failed   int
	Duration time.Duration
}

// Enricher backfills year, director and artwork for local movies that were
// created from sparse client data but carry a TMDB id.
type Enricher struct {
	store   MovieStore
	gateway Gateway
	cfg     EnrichConfig
	logger  *slog.Logger
}

func NewEnricher(store MovieStore, gateway Gateway, cfg EnrichConfig, logger *slog.Logger) *Enricher {
	if cfg.Workers < 1 {
		cfg.Workers = 4
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 500
	}
	return &Enricher{store: store, gateway: gateway, cfg: cfg, logger: logger}
}

// Run pages through every incomplete movie once, BatchSize rows at a time.
// Per-movie failures are counted, not returned; the error is reserved for
// listing.
func (e *Enricher) Run(ctx context.Context) (EnrichStats, error) {
	start := time.Now()

	var scanned int
	var updated, notFound, failed atomic.Int64
	pool := NewWorkerPool(ctx, e.cfg.Workers, e.logger)
	pool.Start()
	defer pool.Shutdown()

	// the cursor moves past movies TMDB cannot complete so they never block later pages
	var cursor int64
	for {
		movies, err := e.store.ListIncomplete(ctx, cursor, e.cfg.BatchSize)
		if err != nil {
			return EnrichStats{}, fmt.Errorf("list incomplete movies after %d: %w", cursor, err)
		}

		submitted := true
		for _, movie := range movies {
			if !pool.Submit(func(ctx context.Context) error {
				changed, err := e.enrichOne(ctx, movie)
				switch {
				case err == nil:
					if changed {
						updated.Add(1)
					}
					return nil
				case errors.Is(err, ErrNotFound):
					notFound.Add(1)
					e.logger.Info("enrich_movie_not_on_tmdb", "movie_id", movie.ID, "tmdb_id", *movie.ExternalID)
					return nil
				default:
					failed.Add(1)
					return err
				}
			}) {
				submitted = false
				break
			}
			scanned++
			cursor = movie.ID
		}

		if !submitted || len(movies) < e.cfg.BatchSize {
			break
		}
	}
	pool.Wait()

	stats := EnrichStats{
		Scanned:  scanned,
		Updated:  int(updated.Load()),
		NotFound: int(notFound.Load()),
		Failed:   int(failed.Load()),
		Duration: time.Since(start),
	}
	e.logger.Info("enrich_completed",
		"scanned", stats.Scanned,
		"updated", stats.Updated,
		"not_found", stats.NotFound,
		"failed", stats.Failed,
		"duration", stats.Duration,
	)
	return stats, ctx.Err()
}

// enrichOne reports whether any field was filled.
func (e *Enricher) enrichOne(ctx context.Context, movie models.Movie) (bool, error) {
	details, err := e.gateway.MovieDetails(ctx, *movie.ExternalID)
	if err != nil {
		return false, err
	}

	meta := models.MovieMetadata{}
	if movie.Year == nil {
		meta.Year = details.Year
	}
	if movie.Director == nil {
		meta.Director = details.Director
	}
	if movie.PosterURL == nil {
		meta.PosterURL = details.PosterURL
	}
	if movie.BackdropURL == nil {
		meta.BackdropURL = details.BackdropURL
	}
	if meta.IsEmpty() {
		return false, nil
	}

	if err := e.store.FillMissing(ctx, movie.ID, meta); err != nil {
		return false, fmt.Errorf("movie %d: %w", movie.ID, err)
	}
	return true, nil
}
