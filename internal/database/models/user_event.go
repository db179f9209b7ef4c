package models

import "time"

// Event types accepted by the events endpoint.
const (
	EventHover               = "HOVER"
	EventDetailView          = "DETAIL_VIEW"
	EventPlay                = "PLAY"
	EventPause               = "PAUSE"
	EventStop                = "STOP"
	EventAddFavorite         = "ADD_FAVORITE"
	EventRemoveFavorite      = "REMOVE_FAVORITE"
	EventSearch              = "SEARCH"
	EventGenre               = "GENRE"
	EventShare               = "SHARE"
	EventWatchTrailer        = "WATCH_TRAILER"
	EventRecommendationClick = "CUSTOM_RECOMMENDATION_CLICK"
)

var validEventTypes = map[string]bool{
	EventHover:               true,
	EventDetailView:          true,
	EventPlay:                true,
	EventPause:               true,
	EventStop:                true,
	EventAddFavorite:         true,
	EventRemoveFavorite:      true,
	EventSearch:              true,
	EventGenre:               true,
	EventShare:               true,
	EventWatchTrailer:        true,
	EventRecommendationClick: true,
}

func IsValidEventType(t string) bool {
	return validEventTypes[t]
}

type UserEvent struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	MovieID   *uint  `gorm:"index" json:"movie_id,omitempty"`
	EventType string `gorm:"size:64;not null" json:"event_type"`
	Duration  *int   `json:"duration,omitempty"`
	// Arbitrary client-supplied JSON, stored as text.
	Metadata  string    `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserEvent) TableName() string {
	return "user_events"
}
