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

type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    uint      `json:"userId"`
	UserName  string    `json:"userName"`
}

type commentMessageResponse struct {
	Message string          `json:"message"`
	Comment CommentResponse `json:"comment"`
}

// ListByMovie returns a movie's comments oldest first, with author names
// joined in.
func (h *CommentHandler) ListByMovie(w http.ResponseWriter, r *http.Request) {
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
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch comments"})
		return
	}

	page := dto.ParsePageRequest(r)

	base := func() *gorm.DB {
		q := h.db.Table("comments").
			Joins("INNER JOIN users ON users.id = comments.user_id").
			Where("comments.movie_id = ?", movieID)
		if page.HasSearch() {
			q = q.Where("LOWER(comments.content) LIKE ?", page.SearchTerm())
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch comments"})
		return
	}

	var comments []CommentResponse
	err = base().
		Select("comments.id, comments.content, comments.created_at, comments.updated_at, comments.user_id, users.name AS user_name").
		Order("comments.created_at asc").
		Offset(page.Offset()).
		Limit(page.Limit).
		Scan(&comments).Error
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch comments"})
		return
	}

	if comments == nil {
		comments = []CommentResponse{}
	}

	writeJSON(w, http.StatusOK, dto.ListResponse{
		Data: comments,
		Meta: dto.NewPageMeta(page.Page, page.Limit, total),
	})
}

// Add posts a comment on a movie as the caller.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	movieID, err := parseIDParam(r, "movieID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid movie id"})
		return
	}

	var req dto.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Comment content is required"})
		return
	}

	var movie models.Movie
	if err := h.db.First(&movie, movieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Movie not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to add comment"})
		return
	}

	comment := models.Comment{
		UserID:  userID,
		MovieID: movieID,
		Content: content,
	}
	if err := h.db.Create(&comment).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to add comment"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to add comment"})
		return
	}

	writeJSON(w, http.StatusCreated, commentMessageResponse{
		Message: "Comment added successfully",
		Comment: CommentResponse{
			ID:        comment.ID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
			UpdatedAt: comment.UpdatedAt,
			UserID:    comment.UserID,
			UserName:  user.Name,
		},
	})
}

// Update edits the caller's own comment.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	commentID, err := parseIDParam(r, "commentID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid comment id"})
		return
	}

	var req dto.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Comment content is required"})
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Comment not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update comment"})
		return
	}

	if comment.UserID != userID {
		writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "You can only update your own comments"})
		return
	}

	comment.Content = content
	if err := h.db.Save(&comment).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update comment"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update comment"})
		return
	}

	writeJSON(w, http.StatusOK, commentMessageResponse{
		Message: "Comment updated successfully",
		Comment: CommentResponse{
			ID:        comment.ID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
			UpdatedAt: comment.UpdatedAt,
			UserID:    comment.UserID,
			UserName:  user.Name,
		},
	})
}

// Delete removes the caller's own comment.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	commentID, err := parseIDParam(r, "commentID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid comment id"})
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Comment not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete comment"})
		return
	}

	if comment.UserID != userID {
		writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "You can only delete your own comments"})
		return
	}

	if err := h.db.Delete(&comment).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete comment"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Comment deleted successfully"})
}
