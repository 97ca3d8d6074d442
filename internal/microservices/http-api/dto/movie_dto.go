package dto

import (
	"movielogger/internal/microservices/http-api/service"
)

// CreateMovieRequest: payload for adding a movie to the local catalog
type CreateMovieRequest struct {
	Title       string  `json:"title" binding:"required"`
	Year        *int    `json:"year"`
	Director    *string `json:"director"`
	PosterURL   *string `json:"poster_url"`
	BackdropURL *string `json:"backdrop_url"`
	TMDBID      *int64  `json:"tmdb_id"`
}

func (r CreateMovieRequest) ToNewMovie() service.NewMovie {
	return service.NewMovie{
		Title:       r.Title,
		Year:        r.Year,
		Director:    r.Director,
		PosterURL:   r.PosterURL,
		BackdropURL: r.BackdropURL,
		ExternalID:  r.TMDBID,
	}
}

// MovieIdentity: the movie fields shared by log and watchlist requests.
// Either movie_id or tmdb_id must be set; title is needed when the movie
// is not yet in the local catalog.
type MovieIdentity struct {
	MovieID     *int64  `json:"movie_id"`
	TMDBID      *int64  `json:"tmdb_id"`
	Title       string  `json:"title"`
	Year        *int    `json:"year"`
	Director    *string `json:"director"`
	PosterURL   *string `json:"poster_url"`
	BackdropURL *string `json:"backdrop_url"`
}

func (m MovieIdentity) ToMovieRef() service.MovieRef {
	var ref service.MovieRef
	if m.MovieID != nil && *m.MovieID > 0 {
		ref.LocalID = *m.MovieID
	}
	if m.TMDBID != nil && *m.TMDBID > 0 {
		ref.External = &service.ExternalMovie{
			ExternalID:  *m.TMDBID,
			Title:       m.Title,
			Year:        m.Year,
			Director:    m.Director,
			PosterURL:   m.PosterURL,
			BackdropURL: m.BackdropURL,
		}
	}
	return ref
}
