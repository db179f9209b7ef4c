package dto

import "cinelog/internal/database/models"

type UserEventRequest struct {
	MovieID   *uint                  `json:"movieId"`
	UserEvent string                 `json:"userEvent"`
	Duration  *int                   `json:"duration"`
	Metadata  map[string]interface{} `json:"metadata"`
}

func (r UserEventRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.UserEvent == "" {
		errors["userEvent"] = "Event type is required"
	} else if !models.IsValidEventType(r.UserEvent) {
		errors["userEvent"] = "Unknown event type: " + r.UserEvent
	}
	if r.Duration != nil && *r.Duration < 0 {
		errors["duration"] = "Duration must not be negative"
	}

	return errors
}

type UserEventResponse struct {
	Message string `json:"message"`
	EventID uint   `json:"eventId"`
}
