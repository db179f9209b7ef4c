package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinelog/internal/api/dto"
	"cinelog/internal/api/handlers"
	"cinelog/internal/api/middleware"
	"cinelog/internal/database/models"
	"cinelog/internal/testutil"
)

func setupCommentTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)

	handler := handlers.NewCommentHandler(tc.DB)

	r := chi.NewRouter()
	r.Get("/api/comments/movie/{movieID}", handler.ListByMovie)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tc.JWTService))
		r.Post("/api/comments/movie/{movieID}", handler.Add)
		r.Put("/api/comments/{commentID}", handler.Update)
		r.Delete("/api/comments/{commentID}", handler.Delete)
	})

	return r, tc
}

func TestCommentHandler_ListByMovie(t *testing.T) {
	router, tc := setupCommentTestRouter(t)
	defer tc.Cleanup()

	movie := testutil.CreateTestMovie(t, tc.DB, "John Wick", 86)

	first := testutil.CreateTestComment(t, tc.DB, tc.User.ID, movie.ID, "First!")
	// Force distinct creation times so the ordering is deterministic.
	tc.DB.Model(first).Update("created_at", time.Now().Add(-time.Hour))
	testutil.CreateTestComment(t, tc.DB, tc.User.ID, movie.ID, "Late to the party")

	t.Run("oldest first with author names", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/api/comments/movie/1", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp struct {
			Data []handlers.CommentResponse `json:"data"`
			Meta dto.PageMeta               `json:"meta"`
		}
		testutil.ParseJSONResponse(t, rr, &resp)

		require.Len(t, resp.Data, 2)
		assert.Equal(t, "First!", resp.Data[0].Content)
		assert.Equal(t, "Late to the party", resp.Data[1].Content)
		assert.Equal(t, tc.User.Name, resp.Data[0].UserName)
	})

	t.Run("unknown movie yields 404", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/api/comments/movie/999", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}

func TestCommentHandler_Add(t *testing.T) {
	router, tc := setupCommentTestRouter(t)
	defer tc.Cleanup()

	testutil.CreateTestMovie(t, tc.DB, "John Wick", 86)

	t.Run("adds comment", func(t *testing.T) {
		body := map[string]string{"content": "Great movie"}

		req := testutil.AuthenticatedRequest(t, "POST", "/api/comments/movie/1", body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusCreated)

		var resp struct {
			Message string                   `json:"message"`
			Comment handlers.CommentResponse `json:"comment"`
		}
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Great movie", resp.Comment.Content)
		assert.Equal(t, tc.User.Name, resp.Comment.UserName)
	})

	t.Run("blank content yields 400", func(t *testing.T) {
		body := map[string]string{"content": "   "}

		req := testutil.AuthenticatedRequest(t, "POST", "/api/comments/movie/1", body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("unknown movie yields 404", func(t *testing.T) {
		body := map[string]string{"content": "Lost comment"}

		req := testutil.AuthenticatedRequest(t, "POST", "/api/comments/movie/999", body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})

	t.Run("requires authentication", func(t *testing.T) {
		body := map[string]string{"content": "Anonymous"}

		req := testutil.UnauthenticatedRequest(t, "POST", "/api/comments/movie/1", body)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}

func TestCommentHandler_UpdateAndDelete(t *testing.T) {
	router, tc := setupCommentTestRouter(t)
	defer tc.Cleanup()

	movie := testutil.CreateTestMovie(t, tc.DB, "John Wick", 86)
	mine := testutil.CreateTestComment(t, tc.DB, tc.User.ID, movie.ID, "Mine")

	other := testutil.CreateTestUser(t, tc.DB)
	theirs := testutil.CreateTestComment(t, tc.DB, other.ID, movie.ID, "Theirs")

	t.Run("updates own comment", func(t *testing.T) {
		body := map[string]string{"content": "Mine, edited"}

		req := testutil.AuthenticatedRequest(t, "PUT", "/api/comments/1", body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)

		var after models.Comment
		require.NoError(t, tc.DB.First(&after, mine.ID).Error)
		assert.Equal(t, "Mine, edited", after.Content)
	})

	t.Run("cannot update someone else's comment", func(t *testing.T) {
		body := map[string]string{"content": "Hijacked"}

		req := testutil.AuthenticatedRequest(t, "PUT", "/api/comments/2", body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusForbidden)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "You can only update your own comments", resp.Error)

		var after models.Comment
		require.NoError(t, tc.DB.First(&after, theirs.ID).Error)
		assert.Equal(t, "Theirs", after.Content)
	})

	t.Run("cannot delete someone else's comment", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/comments/2", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})

	t.Run("deletes own comment", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/comments/1", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)

		var count int64
		tc.DB.Model(&models.Comment{}).Where("id = ?", mine.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("unknown comment yields 404", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/comments/999", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}
