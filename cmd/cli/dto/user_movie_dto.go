package dto

import "time"

type LogMovieRequest struct {
	MovieIdentity
	WatchedDate string  `json:"watched_date"`
	Rating      *int    `json:"rating,omitempty"`
	Review      *string `json:"review,omitempty"`
}

type LogMovieResponse struct {
	Message string `json:"message"`
	LogID   int64  `json:"log_id"`
}

// MovieLog is one diary entry joined with its movie.
type MovieLog struct {
	ID          int64     `json:"id"`
	MovieID     int64     `json:"movie_id"`
	WatchedDate string    `json:"watched_date"`
	Rating      *int      `json:"rating"`
	Review      *string   `json:"review"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `json:"title"`
	Year        *int      `json:"year"`
	TMDBID      *int64    `json:"tmdb_id"`
}

type AddWatchlistResponse struct {
	Message     string `json:"message"`
	WatchlistID int64  `json:"watchlist_id"`
}

type WatchlistEntry struct {
	ID      int64     `json:"id"`
	MovieID int64     `json:"movie_id"`
	AddedAt time.Time `json:"added_at"`
	Title   string    `json:"title"`
	Year    *int      `json:"year"`
	TMDBID  *int64    `json:"tmdb_id"`
}
