package models

import "time"

type WatchlistEntry struct {
	ID      int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  string    `gorm:"not null;uniqueIndex:idx_watchlist_user_movie" json:"user_id"`
	MovieID int64     `gorm:"not null;uniqueIndex:idx_watchlist_user_movie" json:"movie_id"`
	AddedAt time.Time `gorm:"not null" json:"added_at"`

	// Associations
	Movie *Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;" json:"movie,omitempty"`
}

func (WatchlistEntry) TableName() string {
	return "watchlist"
}
