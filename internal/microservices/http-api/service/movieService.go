package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movielogger/database"
	"movielogger/internal/ingestion/tmdb"
	"movielogger/internal/microservices/http-api/models"
	"movielogger/internal/microservices/http-api/repository"
)

// CatalogGateway is the external catalog the movie service proxies to.
type CatalogGateway interface {
	SearchMovies(ctx context.Context, query string) ([]tmdb.SearchResult, error)
	MovieDetails(ctx context.Context, externalID int64) (*tmdb.MovieDetails, error)
}

// NewMovie is the payload for adding a movie to the local catalog.
type NewMovie struct {
	Title       string
	Year        *int
	Director    *string
	PosterURL   *string
	BackdropURL *string
	ExternalID  *int64
}

type MovieService interface {
	List(ctx context.Context) ([]models.Movie, error)
	Get(ctx context.Context, id int64) (*models.Movie, error)
	SearchLocal(ctx context.Context, query string) ([]models.Movie, error)
	SearchExternal(ctx context.Context, query string) ([]tmdb.SearchResult, error)
	ExternalDetails(ctx context.Context, externalID int64) (*tmdb.MovieDetails, error)
	// Create adds a movie. An existing row with the same tmdb id is returned
	// with created=false instead.
	Create(ctx context.Context, in NewMovie) (*models.Movie, bool, error)
}

type movieService struct {
	movieRepo  repository.MovieRepository
	reconciler Reconciler
	gateway    CatalogGateway
}

func NewMovieService(movieRepo repository.MovieRepository, reconciler Reconciler, gateway CatalogGateway) MovieService {
	return &movieService{
		movieRepo:  movieRepo,
		reconciler: reconciler,
		gateway:    gateway,
	}
}

func (s *movieService) List(ctx context.Context) ([]models.Movie, error) {
	movies, err := s.movieRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

func (s *movieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	return movie, nil
}

func (s *movieService) SearchLocal(ctx context.Context, query string) ([]models.Movie, error) {
	movies, err := s.movieRepo.SearchByTitle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	return movies, nil
}

func (s *movieService) SearchExternal(ctx context.Context, query string) ([]tmdb.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, validationError("search query is required")
	}
	results, err := s.gateway.SearchMovies(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return results, nil
}

func (s *movieService) ExternalDetails(ctx context.Context, externalID int64) (*tmdb.MovieDetails, error) {
	details, err := s.gateway.MovieDetails(ctx, externalID)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return details, nil
}

func (s *movieService) Create(ctx context.Context, in NewMovie) (*models.Movie, bool, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, false, validationError("movie title is required")
	}

	if in.ExternalID != nil && *in.ExternalID > 0 {
		return s.reconciler.Reconcile(ctx, MovieRef{External: &ExternalMovie{
			ExternalID:  *in.ExternalID,
			Title:       title,
			Year:        in.Year,
			Director:    in.Director,
			PosterURL:   in.PosterURL,
			BackdropURL: in.BackdropURL,
		}})
	}

	movie := &models.Movie{
		Title:       title,
		Year:        in.Year,
		Director:    in.Director,
		PosterURL:   in.PosterURL,
		BackdropURL: in.BackdropURL,
	}
	if err := s.movieRepo.Create(ctx, movie); err != nil {
		return nil, false, err
	}
	return movie, true, nil
}
