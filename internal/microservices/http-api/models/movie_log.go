package models

import "time"

// MovieLog records that a user watched a movie. One row per (user, movie).
type MovieLog struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      string    `json:"user_id" gorm:"not null;uniqueIndex:idx_movie_logs_user_movie"`
	MovieID     int64     `json:"movie_id" gorm:"not null;uniqueIndex:idx_movie_logs_user_movie"`
	WatchedDate time.Time `json:"watched_date" gorm:"type:date;not null"`
	Rating      *int      `json:"rating,omitempty" gorm:"check:rating >= 0 AND rating <= 10"`
	Review      *string   `json:"review,omitempty"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Movie *Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (MovieLog) TableName() string {
	return "movie_logs"
}
