package models

type Movie struct {
	Base
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"size:255;not null" json:"description"`
	// ISO date (YYYY-MM-DD), matching the public JSON contract.
	ReleaseDate string `gorm:"size:10;not null" json:"releaseDate"`
	Rating      int    `gorm:"not null" json:"rating"` // 0-100
	Image       string `gorm:"size:255;not null" json:"image"`
	Trailer     string `gorm:"size:255;not null" json:"trailer"`

	Genres []Genre `gorm:"many2many:movie_genres" json:"genres,omitempty"`
}

func (Movie) TableName() string {
	return "movies"
}

type Genre struct {
	Base
	Name string `gorm:"not null" json:"name"`
}

func (Genre) TableName() string {
	return "genres"
}

// MovieGenre is the movie<->genre join table. The composite primary key is the
// authoritative guard against duplicate links.
type MovieGenre struct {
	MovieID uint `gorm:"primaryKey" json:"movie_id"`
	GenreID uint `gorm:"primaryKey" json:"genre_id"`
}

func (MovieGenre) TableName() string {
	return "movie_genres"
}

type StreamingURL struct {
	Base
	MovieID uint   `gorm:"index;not null" json:"movie_id"`
	URL     string `gorm:"not null" json:"url"`
}

func (StreamingURL) TableName() string {
	return "streaming_urls"
}
