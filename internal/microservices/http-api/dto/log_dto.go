package dto

import (
	"math"
	"time"

	"movielogger/internal/microservices/http-api/models"
	"movielogger/internal/microservices/http-api/service"
)

// LogMovieRequest: payload for logging a watched movie
type LogMovieRequest struct {
	MovieIdentity
	WatchedDate string   `json:"watched_date"`
	Rating      *float64 `json:"rating"`
	Review      *string  `json:"review"`
}

var errFractionalRating = &service.Error{Kind: service.ErrValidation, Message: "rating must be a whole number"}

// ToLogInput converts the request, rejecting fractional ratings.
func (r LogMovieRequest) ToLogInput() (service.LogInput, error) {
	in := service.LogInput{WatchedDate: r.WatchedDate, Review: r.Review}
	if r.Rating != nil {
		if *r.Rating != math.Trunc(*r.Rating) {
			return service.LogInput{}, errFractionalRating
		}
		rating := int(*r.Rating)
		in.Rating = &rating
	}
	return in, nil
}

// LogMovieResponse: result of a log upsert
type LogMovieResponse struct {
	Message string `json:"message"`
	LogID   int64  `json:"log_id"`
}

// MovieLogResponse: a log entry with the metadata of its movie
type MovieLogResponse struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	MovieID     int64     `json:"movie_id"`
	WatchedDate string    `json:"watched_date"`
	Rating      *int      `json:"rating"`
	Review      *string   `json:"review"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `json:"title"`
	Year        *int      `json:"year"`
	PosterURL   *string   `json:"poster_url"`
	TMDBID      *int64    `json:"tmdb_id"`
}

func FromModelToMovieLogResponse(log *models.MovieLog) MovieLogResponse {
	resp := MovieLogResponse{
		ID:          log.ID,
		UserID:      log.UserID,
		MovieID:     log.MovieID,
		WatchedDate: log.WatchedDate.Format(time.DateOnly),
		Rating:      log.Rating,
		Review:      log.Review,
		CreatedAt:   log.CreatedAt,
		UpdatedAt:   log.UpdatedAt,
	}
	if log.Movie != nil {
		resp.Title = log.Movie.Title
		resp.Year = log.Movie.Year
		resp.PosterURL = log.Movie.PosterURL
		resp.TMDBID = log.Movie.ExternalID
	}
	return resp
}

func FromModelsToMovieLogResponses(logs []models.MovieLog) []MovieLogResponse {
	out := make([]MovieLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, FromModelToMovieLogResponse(&logs[i]))
	}
	return out
}
