package repository

import (
	"context"
	"fmt"

	"movielogger/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type WatchlistRepository interface {
	Add(ctx context.Context, entry *models.WatchlistEntry) error
	GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.WatchlistEntry, error)
	RemoveForUser(ctx context.Context, id int64, userID string) error
	List(ctx context.Context, userID string) ([]models.WatchlistEntry, error)
}

type watchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) Add(ctx context.Context, entry *models.WatchlistEntry) error {
	if err := r.db.WithContext(ctx).Omit("Movie").Create(entry).Error; err != nil {
		return fmt.Errorf("add to watchlist: %w", err)
	}
	return nil
}

func (r *watchlistRepository) GetByUserAndMovie(ctx context.Context, userID string, movieID int64) (*models.WatchlistEntry, error) {
	var entry models.WatchlistEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *watchlistRepository) RemoveForUser(ctx context.Context, id int64, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.WatchlistEntry{})

	if result.Error != nil {
		return fmt.Errorf("remove from watchlist: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("remove watchlist entry %d: %w", id, gorm.ErrRecordNotFound)
	}

	return nil
}

func (r *watchlistRepository) List(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	entries := []models.WatchlistEntry{}

	if err := r.db.WithContext(ctx).
		Preload("Movie").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Order("id DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	return entries, nil
}
