package models

import "time"

// Movie is the local mirror of a catalog record. ExternalID holds the TMDB id
// and is unique when set.
type Movie struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"not null"`
	Year        *int      `json:"year,omitempty"`
	Director    *string   `json:"director,omitempty"`
	PosterURL   *string   `json:"poster_url,omitempty"`
	BackdropURL *string   `json:"backdrop_url,omitempty"`
	ExternalID  *int64    `json:"tmdb_id,omitempty" gorm:"column:tmdb_id;uniqueIndex"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Movie) TableName() string {
	return "movies"
}

// MovieMetadata is the optional catalog data a backfill may supply. Nil
// fields are left alone.
type MovieMetadata struct {
	Year        *int
	Director    *string
	PosterURL   *string
	BackdropURL *string
}

// IsEmpty reports whether no field is set.
func (m MovieMetadata) IsEmpty() bool {
	return m.Year == nil && m.Director == nil && m.PosterURL == nil && m.BackdropURL == nil
}
