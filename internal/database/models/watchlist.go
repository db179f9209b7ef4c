package models

import "time"

type Watchlist struct {
	Base
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	IsPublic    bool   `gorm:"default:false" json:"is_public"`
}

func (Watchlist) TableName() string {
	return "watchlists"
}

// WatchlistItem links a movie into a watchlist. Composite primary key keeps a
// movie from appearing twice in the same list.
type WatchlistItem struct {
	WatchlistID uint      `gorm:"primaryKey" json:"watchlist_id"`
	MovieID     uint      `gorm:"primaryKey" json:"movie_id"`
	AddedAt     time.Time `gorm:"autoCreateTime" json:"added_at"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}
