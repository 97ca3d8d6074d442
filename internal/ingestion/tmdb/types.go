package tmdb

import (
	"strings"
	"time"
)

// SearchResult is a catalog search hit mapped to the local metadata shape.
type SearchResult struct {
	ExternalID  int64   `json:"tmdb_id"`
	Title       string  `json:"title"`
	Year        *int    `json:"year"`
	PosterURL   *string `json:"poster_url"`
	BackdropURL *string `json:"backdrop_url"`
	Overview    string  `json:"overview"`
}

// MovieDetails is a single catalog record with credits resolved.
type MovieDetails struct {
	SearchResult
	Director    *string `json:"director"`
	ReleaseDate string  `json:"release_date"`
	Runtime     *int    `json:"runtime"`
	Genres      string  `json:"genres"`
}

// API response types

type searchResponse struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalResults int           `json:"total_results"`
}

type movieResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	Overview     string  `json:"overview"`
}

type detailsResponse struct {
	movieResult
	Runtime *int    `json:"runtime"`
	Genres  []genre `json:"genres"`
	Credits credits `json:"credits"`
}

type genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type credits struct {
	Crew []crewMember `json:"crew"`
}

type crewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Mapping

func (c *Client) toSearchResult(m movieResult) SearchResult {
	return SearchResult{
		ExternalID:  m.ID,
		Title:       m.Title,
		Year:        releaseYear(m.ReleaseDate),
		PosterURL:   c.imageURL("w500", m.PosterPath),
		BackdropURL: c.imageURL("original", m.BackdropPath),
		Overview:    m.Overview,
	}
}

func (c *Client) toMovieDetails(d detailsResponse) *MovieDetails {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.Name)
	}

	return &MovieDetails{
		SearchResult: c.toSearchResult(d.movieResult),
		Director:     director(d.Credits.Crew),
		ReleaseDate:  d.ReleaseDate,
		Runtime:      d.Runtime,
		Genres:       strings.Join(names, ", "),
	}
}

func (c *Client) imageURL(size string, path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	u := c.imageBaseURL + "/" + size + *path
	return &u
}

// releaseYear returns the year of a YYYY-MM-DD date, or nil if it has none.
func releaseYear(date string) *int {
	if date == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil
	}
	y := t.Year()
	return &y
}

// director returns the first crew member credited as Director.
func director(crew []crewMember) *string {
	for _, member := range crew {
		if member.Job == "Director" {
			name := member.Name
			return &name
		}
	}
	return nil
}
