package repository

import (
	"context"
	"fmt"
	"time"

	"movielogger/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type MovieLogRepository interface {
	Create(ctx context.Context, log *models.MovieLog) error
	Update(ctx context.Context, log *models.MovieLog) error
	GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.MovieLog, error)
	DeleteForUser(ctx context.Context, id int64, userID string) error
	ListByUser(ctx context.Context, userID string) ([]models.MovieLog, error)
}

type movieLogRepository struct {
	db *gorm.DB
}

func NewMovieLogRepository(db *gorm.DB) MovieLogRepository {
	return &movieLogRepository{db: db}
}

func (r *movieLogRepository) Create(ctx context.Context, log *models.MovieLog) error {
	if err := r.db.WithContext(ctx).Omit("Movie").Create(log).Error; err != nil {
		return fmt.Errorf("create movie log: %w", err)
	}
	return nil
}

// Update overwrites watched_date, rating and review of the row with log.ID.
// A map is used so nil rating/review are written as NULL.
func (r *movieLogRepository) Update(ctx context.Context, log *models.MovieLog) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.MovieLog{}).
		Where("id = ?", log.ID).
		Updates(map[string]interface{}{
			"watched_date": log.WatchedDate,
			"rating":       log.Rating,
			"review":       log.Review,
			"updated_at":   now,
		})
	if result.Error != nil {
		return fmt.Errorf("update movie log: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update movie log %d: %w", log.ID, gorm.ErrRecordNotFound)
	}
	log.UpdatedAt = now
	return nil
}

func (r *movieLogRepository) GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.MovieLog, error) {
	var log models.MovieLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// DeleteForUser removes the log only when it belongs to userID. Both a missing
// row and a foreign row report gorm.ErrRecordNotFound.
func (r *movieLogRepository) DeleteForUser(ctx context.Context, id int64, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.MovieLog{})
	if result.Error != nil {
		return fmt.Errorf("delete movie log: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete movie log %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// ListByUser returns the user's logs with their movie, most recent watch first.
func (r *movieLogRepository) ListByUser(ctx context.Context, userID string) ([]models.MovieLog, error) {
	logs := []models.MovieLog{}
	if err := r.db.WithContext(ctx).
		Preload("Movie").
		Where("user_id = ?", userID).
		Order("watched_date DESC").
		Order("id DESC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list movie logs: %w", err)
	}
	return logs, nil
}
