package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cinelog/internal/api/dto"
	"cinelog/internal/database/models"
)

const topRatedCacheTTL = 5 * time.Minute

type MovieHandler struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *slog.Logger
}

func NewMovieHandler(db *gorm.DB, redisClient *redis.Client, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{db: db, redis: redisClient, logger: logger}
}

// MovieResponse is the wire shape for a single movie.
type MovieResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseDate string `json:"releaseDate"`
	Rating      int    `json:"rating"`
	Image       string `json:"image"`
	Trailer     string `json:"trailer"`
}

func toMovieResponse(m models.Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseDate: m.ReleaseDate,
		Rating:      m.Rating,
		Image:       m.Image,
		Trailer:     m.Trailer,
	}
}

// List returns movies with optional search, ordering and pagination.
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	page := dto.ParsePageRequest(r)

	query := h.db.Model(&models.Movie{})
	if page.HasSearch() {
		term := page.SearchTerm()
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch movies"})
		return
	}

	var movies []models.Movie
	order := dto.ResolveOrder(page.OrderBy, page.Order, dto.MovieOrderFields, dto.DefaultMovieOrderField)
	if err := query.Order(order).Offset(page.Offset()).Limit(page.Limit).Find(&movies).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch movies"})
		return
	}

	data := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		data = append(data, toMovieResponse(m))
	}

	writeJSON(w, http.StatusOK, dto.ListResponse{
		Data: data,
		Meta: dto.NewPageMeta(page.Page, page.Limit, total),
	})
}

// Get returns a single movie with its genres preloaded.
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "movieID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid movie id"})
		return
	}

	var movie models.Movie
	if err := h.db.Preload("Genres").First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Movie not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch movie"})
		return
	}

	genres := make([]GenreResponse, 0, len(movie.Genres))
	for _, g := range movie.Genres {
		genres = append(genres, GenreResponse{ID: g.ID, Name: g.Name})
	}

	writeJSON(w, http.StatusOK, MovieDetailResponse{
		MovieResponse: toMovieResponse(movie),
		Genres:        genres,
	})
}

type MovieDetailResponse struct {
	MovieResponse
	Genres []GenreResponse `json:"genres"`
}

// GenreMovieEntry pairs a movie row with the matched genre, mirroring the
// join-table shape of the genre browse endpoint.
type GenreMovieEntry struct {
	Movie MovieResponse `json:"movies"`
	Genre GenreResponse `json:"genres"`
}

type genreMovieRow struct {
	ID          uint
	Title       string
	Description string
	ReleaseDate string
	Rating      int
	Image       string
	Trailer     string
	GenreID     uint
	GenreName   string
}

// ListByGenre returns movies linked to a genre. Responds 404 when the page
// has no rows, matching the not-found contract for unknown genres.
func (h *MovieHandler) ListByGenre(w http.ResponseWriter, r *http.Request) {
	genreID, err := parseIDParam(r, "genreID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid genre id"})
		return
	}

	page := dto.ParsePageRequest(r)

	base := func() *gorm.DB {
		q := h.db.Table("movies").
			Joins("INNER JOIN movie_genres ON movie_genres.movie_id = movies.id").
			Joins("INNER JOIN genres ON genres.id = movie_genres.genre_id").
			Where("genres.id = ?", genreID).
			Where("movies.deleted_at IS NULL")
		if page.HasSearch() {
			term := page.SearchTerm()
			q = q.Where("(LOWER(movies.title) LIKE ? OR LOWER(movies.description) LIKE ?)", term, term)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch movies"})
		return
	}

	order := "movies." + dto.ResolveOrder(page.OrderBy, page.Order, dto.MovieOrderFields, dto.DefaultMovieOrderField)

	var rows []genreMovieRow
	err = base().
		Select("movies.id, movies.title, movies.description, movies.release_date, movies.rating, movies.image, movies.trailer, genres.id AS genre_id, genres.name AS genre_name").
		Order(order).
		Offset(page.Offset()).
		Limit(page.Limit).
		Scan(&rows).Error
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch movies"})
		return
	}

	if len(rows) == 0 {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Movies not found"})
		return
	}

	data := make([]GenreMovieEntry, 0, len(rows))
	for _, row := range rows {
		data = append(data, GenreMovieEntry{
			Movie: MovieResponse{
				ID:          row.ID,
				Title:       row.Title,
				Description: row.Description,
				ReleaseDate: row.ReleaseDate,
				Rating:      row.Rating,
				Image:       row.Image,
				Trailer:     row.Trailer,
			},
			Genre: GenreResponse{ID: row.GenreID, Name: row.GenreName},
		})
	}

	writeJSON(w, http.StatusOK, dto.ListResponse{
		Data: data,
		Meta: dto.NewPageMeta(page.Page, page.Limit, total),
	})
}

// TopRated returns the highest rated movies, served from Redis when cached.
func (h *MovieHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > dto.MaxPerPage {
		limit = dto.MaxPerPage
	}

	cacheKey := fmt.Sprintf("movies:top-rated:%d", limit)
	if h.redis != nil {
		if cached, err := h.redis.Get(r.Context(), cacheKey).Bytes(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}
	}

	var movies []models.Movie
	if err := h.db.Order("rating desc").Limit(limit).Find(&movies).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch movies"})
		return
	}

	data := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		data = append(data, toMovieResponse(m))
	}

	payload := struct {
		Data []MovieResponse `json:"data"`
	}{Data: data}

	if h.redis != nil {
		if raw, err := json.Marshal(payload); err == nil {
			if err := h.redis.Set(r.Context(), cacheKey, raw, topRatedCacheTTL).Err(); err != nil {
				h.logger.Warn("failed to cache top rated movies", "error", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, payload)
}

// Create inserts a movie and its genre links in one transaction.
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if details := req.Validate(); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: details})
		return
	}

	movie := models.Movie{
		Title:       req.Title,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		Rating:      req.Rating,
		Image:       req.Image,
		Trailer:     req.Trailer,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&movie).Error; err != nil {
			return err
		}
		for _, genreID := range req.Genres {
			link := models.MovieGenre{MovieID: movie.ID, GenreID: genreID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		h.logger.Error("failed to create movie", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create movie"})
		return
	}

	writeJSON(w, http.StatusCreated, toMovieResponse(movie))
}
