package repository

import (
	"context"
	"fmt"
	"strings"

	"movielogger/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type MovieRepository interface {
	Create(ctx context.Context, m *models.Movie) error
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	GetByExternalID(ctx context.Context, externalID int64) (*models.Movie, error)
	List(ctx context.Context) ([]models.Movie, error)
	SearchByTitle(ctx context.Context, query string) ([]models.Movie, error)
	ListIncomplete(ctx context.Context, afterID int64, limit int) ([]models.Movie, error)
	FillMissing(ctx context.Context, id int64, meta models.MovieMetadata) error
}

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

// Create inserts m and populates m.ID. A duplicate tmdb_id surfaces as a
// unique violation, see database.IsUniqueViolation.
func (r *movieRepository) Create(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	return nil
}

func (r *movieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movieRepository) GetByExternalID(ctx context.Context, externalID int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).Where("tmdb_id = ?", externalID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movieRepository) List(ctx context.Context) ([]models.Movie, error) {
	list := []models.Movie{}
	if err := r.db.WithContext(ctx).Order("title").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return list, nil
}

// SearchByTitle performs a case-insensitive substring match on title.
// LOWER(...) LIKE keeps the query portable between Postgres and SQLite.
func (r *movieRepository) SearchByTitle(ctx context.Context, query string) ([]models.Movie, error) {
	list := []models.Movie{}
	q := strings.TrimSpace(query)
	if q == "" {
		return list, nil
	}

	pattern := "%" + strings.ToLower(q) + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", pattern).
		Order("title").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search movies by title: %w", err)
	}
	return list, nil
}

// ListIncomplete returns movies with id greater than afterID that have a TMDB
// id but lack some metadata, in id order.
func (r *movieRepository) ListIncomplete(ctx context.Context, afterID int64, limit int) ([]models.Movie, error) {
	list := []models.Movie{}
	q := r.db.WithContext(ctx).
		Where("id > ?", afterID).
		Where("tmdb_id IS NOT NULL").
		Where("year IS NULL OR director IS NULL OR poster_url IS NULL OR backdrop_url IS NULL").
		Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list incomplete movies: %w", err)
	}
	return list, nil
}

// FillMissing sets the given fields only where the stored value is NULL, so
// client-supplied metadata is never overwritten.
func (r *movieRepository) FillMissing(ctx context.Context, id int64, meta models.MovieMetadata) error {
	updates := map[string]any{}
	if meta.Year != nil {
		updates["year"] = gorm.Expr("COALESCE(year, ?)", *meta.Year)
	}
	if meta.Director != nil {
		updates["director"] = gorm.Expr("COALESCE(director, ?)", *meta.Director)
	}
	if meta.PosterURL != nil {
		updates["poster_url"] = gorm.Expr("COALESCE(poster_url, ?)", *meta.PosterURL)
	}
	if meta.BackdropURL != nil {
		updates["backdrop_url"] = gorm.Expr("COALESCE(backdrop_url, ?)", *meta.BackdropURL)
	}
	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&models.Movie{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("fill movie %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
