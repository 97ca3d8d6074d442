package service

import (
	"context"
	"fmt"
	"strings"

	"movielogger/database"
	"movielogger/internal/microservices/http-api/models"
	"movielogger/internal/microservices/http-api/repository"
)

// ExternalMovie is a catalog record identified by its TMDB id, with the
// metadata to store if no local row exists for it yet.
type ExternalMovie struct {
	ExternalID  int64
	Title       string
	Year        *int
	Director    *string
	PosterURL   *string
	BackdropURL *string
}

// MovieRef identifies a movie by local id, external id, or both.
// LocalID is 0 and External is nil when absent.
type MovieRef struct {
	LocalID  int64
	External *ExternalMovie
}

// Reconciler turns a MovieRef into exactly one canonical local movie.
type Reconciler interface {
	// ResolveMovie returns the local id for ref, creating the movie if needed.
	ResolveMovie(ctx context.Context, ref MovieRef) (int64, error)
	// Reconcile is ResolveMovie returning the row and whether this call created it.
	Reconcile(ctx context.Context, ref MovieRef) (*models.Movie, bool, error)
}

type reconciler struct {
	movieRepo repository.MovieRepository
}

func NewReconciler(movieRepo repository.MovieRepository) Reconciler {
	return &reconciler{movieRepo: movieRepo}
}

func (r *reconciler) ResolveMovie(ctx context.Context, ref MovieRef) (int64, error) {
	movie, _, err := r.Reconcile(ctx, ref)
	if err != nil {
		return 0, err
	}
	return movie.ID, nil
}

func (r *reconciler) Reconcile(ctx context.Context, ref MovieRef) (*models.Movie, bool, error) {
	// An existing local row wins and is never overwritten
	if ref.LocalID > 0 {
		movie, err := r.movieRepo.GetByID(ctx, ref.LocalID)
		if err == nil {
			return movie, false, nil
		}
		if !database.IsNotFound(err) {
			return nil, false, fmt.Errorf("get movie %d: %w", ref.LocalID, err)
		}
	}

	ext := ref.External
	if ext == nil || ext.ExternalID <= 0 {
		return nil, false, ErrMovieIdentityRequired
	}

	movie, err := r.movieRepo.GetByExternalID(ctx, ext.ExternalID)
	if err == nil {
		return movie, false, nil
	}
	if !database.IsNotFound(err) {
		return nil, false, fmt.Errorf("get movie by tmdb id %d: %w", ext.ExternalID, err)
	}

	title := strings.TrimSpace(ext.Title)
	if title == "" {
		return nil, false, validationError("movie title is required")
	}

	externalID := ext.ExternalID
	movie = &models.Movie{
		Title:       title,
		Year:        ext.Year,
		Director:    ext.Director,
		PosterURL:   ext.PosterURL,
		BackdropURL: ext.BackdropURL,
		ExternalID:  &externalID,
	}
	if err := r.movieRepo.Create(ctx, movie); err != nil {
		if !database.IsUniqueViolation(err) {
			return nil, false, err
		}
		// a concurrent request inserted the same tmdb id first
		existing, ferr := r.movieRepo.GetByExternalID(ctx, externalID)
		if ferr != nil {
			return nil, false, fmt.Errorf("get movie by tmdb id %d after conflict: %w", externalID, ferr)
		}
		return existing, false, nil
	}
	return movie, true, nil
}
