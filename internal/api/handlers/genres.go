package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"cinelog/internal/api/dto"
	"cinelog/internal/database/models"
)

type GenreHandler struct {
	db *gorm.DB
}

func NewGenreHandler(db *gorm.DB) *GenreHandler {
	return &GenreHandler{db: db}
}

type GenreResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	var genres []models.Genre
	if err := h.db.Order("id asc").Find(&genres).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch genres"})
		return
	}

	data := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		data = append(data, GenreResponse{ID: g.ID, Name: g.Name})
	}

	writeJSON(w, http.StatusOK, data)
}

func (h *GenreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "genreID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid genre id"})
		return
	}

	var genre models.Genre
	if err := h.db.First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Genre not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch genre"})
		return
	}

	writeJSON(w, http.StatusOK, GenreResponse{ID: genre.ID, Name: genre.Name})
}
