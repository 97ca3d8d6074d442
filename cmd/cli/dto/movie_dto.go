package dto

import "time"

// Movie is a row of the server's local catalog.
type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Year        *int      `json:"year,omitempty"`
	Director    *string   `json:"director,omitempty"`
	PosterURL   *string   `json:"poster_url,omitempty"`
	BackdropURL *string   `json:"backdrop_url,omitempty"`
	TMDBID      *int64    `json:"tmdb_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TMDBMovie is a TMDB search hit or detail record. Detail-only fields are
// empty for search hits.
type TMDBMovie struct {
	TMDBID      int64   `json:"tmdb_id"`
	Title       string  `json:"title"`
	Year        *int    `json:"year"`
	PosterURL   *string `json:"poster_url"`
	BackdropURL *string `json:"backdrop_url"`
	Overview    string  `json:"overview"`
	Director    *string `json:"director,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
	Runtime     *int    `json:"runtime,omitempty"`
	Genres      string  `json:"genres,omitempty"`
}

// MovieIdentity names a movie by local id or TMDB id. Title and the other
// metadata are used when the server has to create the movie.
type MovieIdentity struct {
	MovieID     *int64  `json:"movie_id,omitempty"`
	TMDBID      *int64  `json:"tmdb_id,omitempty"`
	Title       string  `json:"title,omitempty"`
	Year        *int    `json:"year,omitempty"`
	Director    *string `json:"director,omitempty"`
	PosterURL   *string `json:"poster_url,omitempty"`
	BackdropURL *string `json:"backdrop_url,omitempty"`
}

type CreateMovieRequest struct {
	Title       string  `json:"title"`
	Year        *int    `json:"year,omitempty"`
	Director    *string `json:"director,omitempty"`
	PosterURL   *string `json:"poster_url,omitempty"`
	BackdropURL *string `json:"backdrop_url,omitempty"`
	TMDBID      *int64  `json:"tmdb_id,omitempty"`
}

type CreateMovieResponse struct {
	Message string `json:"message"`
	Movie   Movie  `json:"movie"`
}
