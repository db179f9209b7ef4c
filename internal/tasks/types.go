package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeEventRollup = "events:rollup"

// EventRollupPayload identifies a stored user event for aggregation.
type EventRollupPayload struct {
	EventID   uint   `json:"event_id"`
	UserID    uint   `json:"user_id"`
	MovieID   *uint  `json:"movie_id,omitempty"`
	EventType string `json:"event_type"`
}

func NewEventRollupTask(payload EventRollupPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEventRollup, raw, asynq.MaxRetry(3)), nil
}
