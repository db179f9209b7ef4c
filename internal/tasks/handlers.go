package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Counter keys have a daily granularity so dashboards can graph activity
// per day without scanning event rows.
const counterTTL = 90 * 24 * time.Hour

type Handler struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *slog.Logger
}

func NewHandler(db *gorm.DB, redisClient *redis.Client, logger *slog.Logger) *Handler {
	return &Handler{db: db, redis: redisClient, logger: logger}
}

// HandleEventRollup increments per-type and per-movie activity counters for a
// recorded user event.
func (h *Handler) HandleEventRollup(ctx context.Context, t *asynq.Task) error {
	var payload EventRollupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshaling event rollup payload: %w", err)
	}

	day := time.Now().UTC().Format("2006-01-02")

	pipe := h.redis.Pipeline()
	typeKey := fmt.Sprintf("events:count:%s:%s", payload.EventType, day)
	pipe.Incr(ctx, typeKey)
	pipe.Expire(ctx, typeKey, counterTTL)

	if payload.MovieID != nil {
		movieKey := fmt.Sprintf("events:movie:%d:%s", *payload.MovieID, day)
		pipe.Incr(ctx, movieKey)
		pipe.Expire(ctx, movieKey, counterTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("updating event counters: %w", err)
	}

	h.logger.Debug("event rollup processed",
		"event_id", payload.EventID,
		"event_type", payload.EventType,
	)

	return nil
}

// RegisterHandlers binds all task types onto the mux.
func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeEventRollup, h.HandleEventRollup)
}
