package models

import "time"

// Favorite links a user to a movie. The composite primary key enforces
// at-most-one favorite per (user, movie) pair regardless of racing requests.
type Favorite struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	MovieID   uint      `gorm:"primaryKey" json:"movie_id"`
	IsPublic  bool      `gorm:"default:false" json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
