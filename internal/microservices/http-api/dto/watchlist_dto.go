package dto

import (
	"time"

	"movielogger/internal/microservices/http-api/models"
)

// AddWatchlistRequest: payload for adding a movie to the watchlist
type AddWatchlistRequest struct {
	MovieIdentity
}

// AddWatchlistResponse: result of a watchlist add
type AddWatchlistResponse struct {
	Message     string `json:"message"`
	WatchlistID int64  `json:"watchlist_id"`
}

// WatchlistEntryResponse: a watchlist entry with the metadata of its movie
type WatchlistEntryResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	MovieID   int64     `json:"movie_id"`
	AddedAt   time.Time `json:"added_at"`
	Title     string    `json:"title"`
	Year      *int      `json:"year"`
	PosterURL *string   `json:"poster_url"`
	TMDBID    *int64    `json:"tmdb_id"`
}

func FromModelsToWatchlistResponses(entries []models.WatchlistEntry) []WatchlistEntryResponse {
	out := make([]WatchlistEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := WatchlistEntryResponse{
			ID:      e.ID,
			UserID:  e.UserID,
			MovieID: e.MovieID,
			AddedAt: e.AddedAt,
		}
		if e.Movie != nil {
			resp.Title = e.Movie.Title
			resp.Year = e.Movie.Year
			resp.PosterURL = e.Movie.PosterURL
			resp.TMDBID = e.Movie.ExternalID
		}
		out = append(out, resp)
	}
	return out
}
