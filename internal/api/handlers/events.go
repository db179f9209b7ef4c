package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"cinelog/internal/api/dto"
	"cinelog/internal/api/middleware"
	"cinelog/internal/database/models"
	"cinelog/internal/tasks"
)

type EventHandler struct {
	db     *gorm.DB
	asynq  *asynq.Client
	logger *slog.Logger
}

func NewEventHandler(db *gorm.DB, asynqClient *asynq.Client, logger *slog.Logger) *EventHandler {
	return &EventHandler{db: db, asynq: asynqClient, logger: logger}
}

// Record persists a user interaction event. The row is written synchronously
// so the response can carry the event id; aggregation happens in a
// background task.
func (h *EventHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req dto.UserEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if details := req.Validate(); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: details})
		return
	}

	var metadata string
	if req.Metadata != nil {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid metadata"})
			return
		}
		metadata = string(raw)
	}

	event := models.UserEvent{
		UserID:    userID,
		MovieID:   req.MovieID,
		EventType: req.UserEvent,
		Duration:  req.Duration,
		Metadata:  metadata,
	}
	if err := h.db.Create(&event).Error; err != nil {
		h.logger.Error("failed to record user event", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to record event"})
		return
	}

	if h.asynq != nil {
		task, err := tasks.NewEventRollupTask(tasks.EventRollupPayload{
			EventID:   event.ID,
			UserID:    event.UserID,
			MovieID:   event.MovieID,
			EventType: event.EventType,
		})
		if err == nil {
			_, err = h.asynq.EnqueueContext(r.Context(), task)
		}
		if err != nil {
			// Rollups are best effort, the event row is already saved.
			h.logger.Warn("failed to enqueue event rollup", "error", err, "event_id", event.ID)
		}
	}

	writeJSON(w, http.StatusCreated, dto.UserEventResponse{
		Message: "User event recorded successfully",
		EventID: event.ID,
	})
}
