package handlers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"cinelog/internal/api/dto"
	"cinelog/internal/api/middleware"
	"cinelog/internal/database/models"
)

type FavoriteHandler struct {
	db *gorm.DB
}

func NewFavoriteHandler(db *gorm.DB) *FavoriteHandler {
	return &FavoriteHandler{db: db}
}

// List returns the caller's favorite movies with search, ordering and
// pagination applied to the joined movie rows.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page := dto.ParsePageRequest(r)

	base := func() *gorm.DB {
		q := h.db.Table("favorites").
			Joins("INNER JOIN movies ON movies.id = favorites.movie_id").
			Where("favorites.user_id = ?", userID).
			Where("movies.deleted_at IS NULL")
		if page.HasSearch() {
			term := page.SearchTerm()
			q = q.Where("(LOWER(movies.title) LIKE ? OR LOWER(movies.description) LIKE ?)", term, term)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch favorites"})
		return
	}

	order := "movies." + dto.ResolveOrder(page.OrderBy, page.Order, dto.MovieOrderFields, dto.DefaultMovieOrderField)

	var movies []MovieResponse
	err := base().
		Select("movies.id, movies.title, movies.description, movies.release_date, movies.rating, movies.image, movies.trailer").
		Order(order).
		Offset(page.Offset()).
		Limit(page.Limit).
		Scan(&movies).Error
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch favorites"})
		return
	}

	if movies == nil {
		movies = []MovieResponse{}
	}

	writeJSON(w, http.StatusOK, dto.ListResponse{
		Data: movies,
		Meta: dto.NewPageMeta(page.Page, page.Limit, total),
	})
}

// Add marks a movie as a favorite of the caller.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	movieID, err := parseIDParam(r, "movieID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid movie id"})
		return
	}

	var movie models.Movie
	if err := h.db.First(&movie, movieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Movie not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to add favorite"})
		return
	}

	favorite := models.Favorite{UserID: userID, MovieID: movieID}
	if err := h.db.Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Movie already in favorites"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to add favorite"})
		return
	}

	writeJSON(w, http.StatusCreated, dto.SuccessResponse{Message: "Movie added to favorites"})
}

// Remove deletes a favorite link. Responds 404 when the link never existed.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	movieID, err := parseIDParam(r, "movieID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid movie id"})
		return
	}

	result := h.db.Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&models.Favorite{})
	if result.Error != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to remove favorite"})
		return
	}
	if result.RowsAffected == 0 {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Movie not in favorites"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Movie removed from favorites"})
}
