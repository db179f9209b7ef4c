package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"cinelog/internal/api/dto"
	"cinelog/internal/api/middleware"
	"cinelog/internal/database/models"
)

type WatchlistHandler struct {
	db *gorm.DB
}

func NewWatchlistHandler(db *gorm.DB) *WatchlistHandler {
	return &WatchlistHandler{db: db}
}

type WatchlistResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PublicWatchlistResponse omits the visibility flag, which is implied on
// public endpoints.
type PublicWatchlistResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type WatchlistMovieResponse struct {
	MovieResponse
	AddedAt time.Time `json:"addedAt"`
}

type WatchlistDetailResponse struct {
	Watchlist WatchlistResponse `json:"watchlist"`
	Items     dto.ListResponse  `json:"items"`
}

type PublicWatchlistDetailResponse struct {
	Watchlist PublicWatchlistResponse `json:"watchlist"`
	Items     dto.ListResponse        `json:"items"`
}

func toWatchlistResponse(wl models.Watchlist) WatchlistResponse {
	return WatchlistResponse{
		ID:          wl.ID,
		Name:        wl.Name,
		Description: wl.Description,
		IsPublic:    wl.IsPublic,
		CreatedAt:   wl.CreatedAt,
		UpdatedAt:   wl.UpdatedAt,
	}
}

func toPublicWatchlistResponse(wl models.Watchlist) PublicWatchlistResponse {
	return PublicWatchlistResponse{
		ID:          wl.ID,
		Name:        wl.Name,
		Description: wl.Description,
		CreatedAt:   wl.CreatedAt,
		UpdatedAt:   wl.UpdatedAt,
	}
}

// findOwned loads a watchlist and enforces ownership. Absent lists yield 404,
// lists owned by someone else yield 403. Returns nil when a response has
// already been written.
func (h *WatchlistHandler) findOwned(w http.ResponseWriter, r *http.Request, userID uint) *models.Watchlist {
	watchlistID, err := parseIDParam(r, "watchlistID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid watchlist id"})
		return nil
	}

	var wl models.Watchlist
	if err := h.db.First(&wl, watchlistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Watchlist not found"})
			return nil
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch watchlist"})
		return nil
	}

	if wl.UserID != userID {
		writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "You do not own this watchlist"})
		return nil
	}

	return &wl
}

// itemsPage loads a page of movies belonging to a watchlist.
func (h *WatchlistHandler) itemsPage(watchlistID uint, page dto.PageRequest) (dto.ListResponse, error) {
	base := func() *gorm.DB {
		q := h.db.Table("watchlist_items").
			Joins("INNER JOIN movies ON movies.id = watchlist_items.movie_id").
			Where("watchlist_items.watchlist_id = ?", watchlistID).
			Where("movies.deleted_at IS NULL")
		if page.HasSearch() {
			term := page.SearchTerm()
			q = q.Where("(LOWER(movies.title) LIKE ? OR LOWER(movies.description) LIKE ?)", term, term)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return dto.ListResponse{}, err
	}

	order := "movies." + dto.ResolveOrder(page.OrderBy, page.Order, dto.MovieOrderFields, dto.DefaultMovieOrderField)

	var items []WatchlistMovieResponse
	err := base().
		Select("movies.id, movies.title, movies.description, movies.release_date, movies.rating, movies.image, movies.trailer, watchlist_items.added_at").
		Order(order).
		Offset(page.Offset()).
		Limit(page.Limit).
		Scan(&items).Error
	if err != nil {
		return dto.ListResponse{}, err
	}

	if items == nil {
		items = []WatchlistMovieResponse{}
	}

	return dto.ListResponse{
		Data: items,
		Meta: dto.NewPageMeta(page.Page, page.Limit, total),
	}, nil
}

// List returns the caller's watchlists.
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page := dto.ParsePageRequest(r)

	query := h.db.Model(&models.Watchlist{}).Where("user_id = ?", userID)
	if page.HasSearch() {
		term := page.SearchTerm()
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch watchlists"})
		return
	}

	var watchlists []models.Watchlist
	order := dto.ResolveOrder(page.OrderBy, page.Order, dto.WatchlistOrderFields, dto.DefaultWatchlistOrderField)
	if err := query.Order(order).Offset(page.Offset()).Limit(page.Limit).Find(&watchlists).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch watchlists"})
		return
	}

	data := make([]WatchlistResponse, 0, len(watchlists))
	for _, wl := range watchlists {
		data = append(data, toWatchlistResponse(wl))
	}

	writeJSON(w, http.StatusOK, dto.ListResponse{
		Data: data,
		Meta: dto.NewPageMeta(page.Page, page.Limit, total),
	})
}

// Create makes a new watchlist for the caller.
func (h *WatchlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req dto.CreateWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Watchlist name is required"})
		return
	}

	wl := models.Watchlist{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	if err := h.db.Create(&wl).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create watchlist"})
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreateWatchlistResponse{
		Message:     "Watchlist created successfully",
		WatchlistID: wl.ID,
	})
}

// Get returns a watchlist the caller owns plus a page of its movies.
func (h *WatchlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	wl := h.findOwned(w, r, userID)
	if wl == nil {
		return
	}

	page := dto.ParsePageRequest(r)
	items, err := h.itemsPage(wl.ID, page)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch watchlist"})
		return
	}

	writeJSON(w, http.StatusOK, WatchlistDetailResponse{
		Watchlist: toWatchlistResponse(*wl),
		Items:     items,
	})
}

// Update changes name, description or visibility of an owned watchlist.
func (h *WatchlistHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	wl := h.findOwned(w, r, userID)
	if wl == nil {
		return
	}

	var req dto.UpdateWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Watchlist name cannot be empty"})
			return
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}

	if len(updates) > 0 {
		if err := h.db.Model(wl).Updates(updates).Error; err != nil {
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update watchlist"})
			return
		}
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Watchlist updated successfully"})
}

// Delete removes an owned watchlist and its items.
func (h *WatchlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	wl := h.findOwned(w, r, userID)
	if wl == nil {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("watchlist_id = ?", wl.ID).Delete(&models.WatchlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(wl).Error
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete watchlist"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Watchlist deleted successfully"})
}

// TogglePublic flips the visibility flag of an owned watchlist.
func (h *WatchlistHandler) TogglePublic(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	wl := h.findOwned(w, r, userID)
	if wl == nil {
		return
	}

	if err := h.db.Model(wl).Update("is_public", !wl.IsPublic).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update watchlist"})
		return
	}

	writeJSON(w, http.StatusOK, dto.ToggleWatchlistResponse{
		Message:  "Watchlist visibility updated",
		IsPublic: !wl.IsPublic,
	})
}

// AddMovie links a movie into an owned watchlist and touches the parent so
// recency ordering reflects the change.
func (h *WatchlistHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	wl := h.findOwned(w, r, userID)
	if wl == nil {
		return
	}

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
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to add movie"})
		return
	}

	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		item := models.WatchlistItem{WatchlistID: wl.ID, MovieID: movieID}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return tx.Model(&models.Watchlist{}).
			Where("id = ?", wl.ID).
			Update("updated_at", time.Now()).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Movie already in watchlist"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to add movie"})
		return
	}

	writeJSON(w, http.StatusCreated, dto.SuccessResponse{Message: "Movie added to watchlist"})
}

// RemoveMovie unlinks a movie from an owned watchlist.
func (h *WatchlistHandler) RemoveMovie(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	wl := h.findOwned(w, r, userID)
	if wl == nil {
		return
	}

	movieID, err := parseIDParam(r, "movieID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid movie id"})
		return
	}

	var removed bool
	txErr := h.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("watchlist_id = ? AND movie_id = ?", wl.ID, movieID).
			Delete(&models.WatchlistItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.Model(&models.Watchlist{}).
			Where("id = ?", wl.ID).
			Update("updated_at", time.Now()).Error
	})
	if txErr != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to remove movie"})
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Movie not in watchlist"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Movie removed from watchlist"})
}

// PublicLists returns another user's public watchlists.
func (h *WatchlistHandler) PublicLists(w http.ResponseWriter, r *http.Request) {
	ownerID, err := parseIDParam(r, "userID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user id"})
		return
	}

	var user models.User
	if err := h.db.First(&user, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch watchlists"})
		return
	}

	page := dto.ParsePageRequest(r)

	query := h.db.Model(&models.Watchlist{}).
		Where("user_id = ? AND is_public = ?", ownerID, true)
	if page.HasSearch() {
		term := page.SearchTerm()
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch watchlists"})
		return
	}

	var watchlists []models.Watchlist
	order := dto.ResolveOrder(page.OrderBy, page.Order, dto.WatchlistOrderFields, dto.DefaultWatchlistOrderField)
	if err := query.Order(order).Offset(page.Offset()).Limit(page.Limit).Find(&watchlists).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch watchlists"})
		return
	}

	data := make([]PublicWatchlistResponse, 0, len(watchlists))
	for _, wl := range watchlists {
		data = append(data, toPublicWatchlistResponse(wl))
	}

	writeJSON(w, http.StatusOK, dto.ListResponse{
		Data: data,
		Meta: dto.NewPageMeta(page.Page, page.Limit, total),
	})
}

// PublicList returns one public watchlist of another user with its movies.
func (h *WatchlistHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	ownerID, err := parseIDParam(r, "userID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user id"})
		return
	}
	watchlistID, err := parseIDParam(r, "watchlistID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid watchlist id"})
		return
	}

	var wl models.Watchlist
	err = h.db.Where("id = ? AND user_id = ? AND is_public = ?", watchlistID, ownerID, true).
		First(&wl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Watchlist not found or not public"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch watchlist"})
		return
	}

	page := dto.ParsePageRequest(r)
	items, err := h.itemsPage(wl.ID, page)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch watchlist"})
		return
	}

	writeJSON(w, http.StatusOK, PublicWatchlistDetailResponse{
		Watchlist: toPublicWatchlistResponse(wl),
		Items:     items,
	})
}
