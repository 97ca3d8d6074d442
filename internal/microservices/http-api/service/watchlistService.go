package service

import (
	"context"
	"fmt"
	"time"

	"movielogger/database"
	"movielogger/internal/microservices/http-api/models"
	"movielogger/internal/microservices/http-api/repository"
)

// WatchlistResult reports the entry id and whether this call added it.
type WatchlistResult struct {
	ID    int64
	Added bool
}

type WatchlistService interface {
	Add(ctx context.Context, userID string, movieID int64) (WatchlistResult, error)
	Remove(ctx context.Context, entryID int64, userID string) error
	List(ctx context.Context, userID string) ([]models.WatchlistEntry, error)
}

type watchlistService struct {
	watchlistRepo repository.WatchlistRepository
	now           func() time.Time
}

func NewWatchlistService(watchlistRepo repository.WatchlistRepository) WatchlistService {
	return &watchlistService{
		watchlistRepo: watchlistRepo,
		now:           time.Now,
	}
}

// Add puts a movie on the user's watchlist. Adding a movie that is already
// there returns the existing entry.
func (s *watchlistService) Add(ctx context.Context, userID string, movieID int64) (WatchlistResult, error) {
	existing, err := s.watchlistRepo.GetByUserAndMovie(ctx, userID, movieID)
	if err == nil {
		return WatchlistResult{ID: existing.ID, Added: false}, nil
	}
	if !database.IsNotFound(err) {
		return WatchlistResult{}, fmt.Errorf("get watchlist entry: %w", err)
	}

	entry := &models.WatchlistEntry{
		UserID:  userID,
		MovieID: movieID,
		AddedAt: s.now().UTC(),
	}
	if err := s.watchlistRepo.Add(ctx, entry); err != nil {
		if !database.IsUniqueViolation(err) {
			return WatchlistResult{}, fmt.Errorf("add watchlist entry: %w", err)
		}
		existing, ferr := s.watchlistRepo.GetByUserAndMovie(ctx, userID, movieID)
		if ferr != nil {
			return WatchlistResult{}, fmt.Errorf("get watchlist entry after conflict: %w", ferr)
		}
		return WatchlistResult{ID: existing.ID, Added: false}, nil
	}
	return WatchlistResult{ID: entry.ID, Added: true}, nil
}

func (s *watchlistService) Remove(ctx context.Context, entryID int64, userID string) error {
	if err := s.watchlistRepo.RemoveForUser(ctx, entryID, userID); err != nil {
		if database.IsNotFound(err) {
			return ErrWatchlistNotFound
		}
		return fmt.Errorf("remove watchlist entry %d: %w", entryID, err)
	}
	return nil
}

func (s *watchlistService) List(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	entries, err := s.watchlistRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	return entries, nil
}
