package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"movielogger/database"
	"movielogger/internal/microservices/http-api/models"
	"movielogger/internal/microservices/http-api/repository"
)

const (
	MinRating = 0
	MaxRating = 10
)

// LogInput is a watch record for one movie. WatchedDate is YYYY-MM-DD or RFC 3339.
type LogInput struct {
	WatchedDate string
	Rating      *int
	Review      *string
}

// Validate checks the input without touching storage, so callers can reject
// a bad request before resolving its movie.
func (in LogInput) Validate() error {
	if _, err := ParseWatchedDate(in.WatchedDate); err != nil {
		return err
	}
	if in.Rating != nil && (*in.Rating < MinRating || *in.Rating > MaxRating) {
		return validationError("rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

// ParseWatchedDate accepts a calendar date or an RFC 3339 timestamp and
// returns midnight UTC of that day.
func ParseWatchedDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, validationError("watched date is required")
	}
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := ts.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, validationError("watched date must be YYYY-MM-DD")
}

// LogResult reports the entry id and whether the upsert inserted it.
type LogResult struct {
	ID      int64
	Created bool
}

type MovieLogService interface {
	Upsert(ctx context.Context, userID string, movieID int64, in LogInput) (LogResult, error)
	Delete(ctx context.Context, logID int64, userID string) error
	List(ctx context.Context, userID string) ([]models.MovieLog, error)
}

type movieLogService struct {
	logRepo repository.MovieLogRepository
}

func NewMovieLogService(logRepo repository.MovieLogRepository) MovieLogService {
	return &movieLogService{logRepo: logRepo}
}

// Upsert writes the single log entry for (userID, movieID), replacing the
// date, rating and review of an existing one.
func (s *movieLogService) Upsert(ctx context.Context, userID string, movieID int64, in LogInput) (LogResult, error) {
	if err := in.Validate(); err != nil {
		return LogResult{}, err
	}
	watched, _ := ParseWatchedDate(in.WatchedDate)
	review := normalizeReview(in.Review)

	existing, err := s.logRepo.GetByUserAndMovie(ctx, userID, movieID)
	if err == nil {
		return s.overwrite(ctx, existing, watched, in.Rating, review)
	}
	if !database.IsNotFound(err) {
		return LogResult{}, fmt.Errorf("get movie log: %w", err)
	}

	log := &models.MovieLog{
		UserID:      userID,
		MovieID:     movieID,
		WatchedDate: watched,
		Rating:      in.Rating,
		Review:      review,
	}
	if err := s.logRepo.Create(ctx, log); err != nil {
		if !database.IsUniqueViolation(err) {
			return LogResult{}, fmt.Errorf("create movie log: %w", err)
		}
		// a concurrent submission for the same pair won the insert
		existing, ferr := s.logRepo.GetByUserAndMovie(ctx, userID, movieID)
		if ferr != nil {
			return LogResult{}, fmt.Errorf("get movie log after conflict: %w", ferr)
		}
		return s.overwrite(ctx, existing, watched, in.Rating, review)
	}
	return LogResult{ID: log.ID, Created: true}, nil
}

func (s *movieLogService) overwrite(ctx context.Context, log *models.MovieLog, watched time.Time, rating *int, review *string) (LogResult, error) {
	log.WatchedDate = watched
	log.Rating = rating
	log.Review = review
	if err := s.logRepo.Update(ctx, log); err != nil {
		return LogResult{}, fmt.Errorf("update movie log %d: %w", log.ID, err)
	}
	return LogResult{ID: log.ID, Created: false}, nil
}

// Delete removes a log entry owned by userID. Entries owned by anyone else
// are reported as not found.
func (s *movieLogService) Delete(ctx context.Context, logID int64, userID string) error {
	if err := s.logRepo.DeleteForUser(ctx, logID, userID); err != nil {
		if database.IsNotFound(err) {
			return ErrLogNotFound
		}
		return fmt.Errorf("delete movie log %d: %w", logID, err)
	}
	return nil
}

func (s *movieLogService) List(ctx context.Context, userID string) ([]models.MovieLog, error) {
	logs, err := s.logRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list movie logs: %w", err)
	}
	return logs, nil
}

func normalizeReview(review *string) *string {
	if review == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*review)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
