package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinelog/internal/api/dto"
	"cinelog/internal/api/handlers"
	"cinelog/internal/api/middleware"
	"cinelog/internal/database/models"
	"cinelog/internal/testutil"
)

type watchlistListResponse struct {
	Data []handlers.WatchlistResponse `json:"data"`
	Meta dto.PageMeta                 `json:"meta"`
}

func setupWatchlistTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)

	handler := handlers.NewWatchlistHandler(tc.DB)

	r := chi.NewRouter()
	r.Get("/api/watchlists/public/{userID}", handler.PublicLists)
	r.Get("/api/watchlists/public/{userID}/{watchlistID}", handler.PublicList)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tc.JWTService))
		r.Get("/api/watchlists", handler.List)
		r.Post("/api/watchlists", handler.Create)
		r.Get("/api/watchlists/{watchlistID}", handler.Get)
		r.Put("/api/watchlists/{watchlistID}", handler.Update)
		r.Delete("/api/watchlists/{watchlistID}", handler.Delete)
		r.Put("/api/watchlists/{watchlistID}/toggle-public", handler.TogglePublic)
		r.Post("/api/watchlists/{watchlistID}/movies/{movieID}", handler.AddMovie)
		r.Delete("/api/watchlists/{watchlistID}/movies/{movieID}", handler.RemoveMovie)
	})

	return r, tc
}

func TestWatchlistHandler_Create(t *testing.T) {
	router, tc := setupWatchlistTestRouter(t)
	defer tc.Cleanup()

	t.Run("creates watchlist", func(t *testing.T) {
		body := map[string]interface{}{
			"name":        "Weekend Picks",
			"description": "Movies for the weekend",
		}

		req := testutil.AuthenticatedRequest(t, "POST", "/api/watchlists", body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusCreated)

		var resp dto.CreateWatchlistResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.NotZero(t, resp.WatchlistID)
	})

	t.Run("name is required", func(t *testing.T) {
		body := map[string]interface{}{"name": "   "}

		req := testutil.AuthenticatedRequest(t, "POST", "/api/watchlists", body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})
}

func TestWatchlistHandler_Ownership(t *testing.T) {
	router, tc := setupWatchlistTestRouter(t)
	defer tc.Cleanup()

	owner := testutil.CreateTestUser(t, tc.DB)
	wl := testutil.CreateTestWatchlist(t, tc.DB, owner.ID, "Owner's List", false)

	t.Run("non-owner update yields 403 and leaves state unchanged", func(t *testing.T) {
		body := map[string]interface{}{"name": "Hijacked"}

		req := testutil.AuthenticatedRequest(t, "PUT", "/api/watchlists/1", body, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusForbidden)

		var after models.Watchlist
		require.NoError(t, tc.DB.First(&after, wl.ID).Error)
		assert.Equal(t, "Owner's List", after.Name)
	})

	t.Run("non-owner delete yields 403", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/watchlists/1", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})

	t.Run("absent watchlist yields 404", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/watchlists/999", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}

func TestWatchlistHandler_Movies(t *testing.T) {
	router, tc := setupWatchlistTestRouter(t)
	defer tc.Cleanup()

	wl := testutil.CreateTestWatchlist(t, tc.DB, tc.User.ID, "My List", false)
	movie := testutil.CreateTestMovie(t, tc.DB, "John Wick", 86)

	t.Run("adds movie", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/watchlists/1/movies/1", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusCreated)

		var count int64
		tc.DB.Model(&models.WatchlistItem{}).
			Where("watchlist_id = ? AND movie_id = ?", wl.ID, movie.ID).
			Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("duplicate movie yields 400", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/watchlists/1/movies/1", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Movie already in watchlist", resp.Error)
	})

	t.Run("unknown movie yields 404", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/api/watchlists/1/movies/999", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})

	t.Run("detail includes items", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/watchlists/1", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp struct {
			Watchlist handlers.WatchlistResponse `json:"watchlist"`
			Items     struct {
				Data []handlers.WatchlistMovieResponse `json:"data"`
				Meta dto.PageMeta                      `json:"meta"`
			} `json:"items"`
		}
		testutil.ParseJSONResponse(t, rr, &resp)

		assert.Equal(t, "My List", resp.Watchlist.Name)
		require.Len(t, resp.Items.Data, 1)
		assert.Equal(t, "John Wick", resp.Items.Data[0].Title)
		assert.False(t, resp.Items.Data[0].AddedAt.IsZero())
	})

	t.Run("removes movie", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/watchlists/1/movies/1", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	t.Run("removing absent movie yields 404", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/watchlists/1/movies/1", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}

func TestWatchlistHandler_TogglePublic(t *testing.T) {
	router, tc := setupWatchlistTestRouter(t)
	defer tc.Cleanup()

	testutil.CreateTestWatchlist(t, tc.DB, tc.User.ID, "Toggle Me", false)

	req := testutil.AuthenticatedRequest(t, "PUT", "/api/watchlists/1/toggle-public", nil, tc.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp dto.ToggleWatchlistResponse
	testutil.ParseJSONResponse(t, rr, &resp)
	assert.True(t, resp.IsPublic)

	var after models.Watchlist
	require.NoError(t, tc.DB.First(&after, 1).Error)
	assert.True(t, after.IsPublic)
}

func TestWatchlistHandler_Public(t *testing.T) {
	router, tc := setupWatchlistTestRouter(t)
	defer tc.Cleanup()

	owner := testutil.CreateTestUser(t, tc.DB)
	public := testutil.CreateTestWatchlist(t, tc.DB, owner.ID, "Shared Picks", true)
	testutil.CreateTestWatchlist(t, tc.DB, owner.ID, "Private Stash", false)

	movie := testutil.CreateTestMovie(t, tc.DB, "Moneyball", 94)
	require.NoError(t, tc.DB.Create(&models.WatchlistItem{
		WatchlistID: public.ID,
		MovieID:     movie.ID,
	}).Error)

	t.Run("lists only public watchlists", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/api/watchlists/public/2", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp struct {
			Data []handlers.PublicWatchlistResponse `json:"data"`
			Meta dto.PageMeta                       `json:"meta"`
		}
		testutil.ParseJSONResponse(t, rr, &resp)

		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Shared Picks", resp.Data[0].Name)
	})

	t.Run("unknown user yields 404", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/api/watchlists/public/999", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})

	t.Run("public detail with items", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/api/watchlists/public/2/1", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp struct {
			Watchlist handlers.PublicWatchlistResponse `json:"watchlist"`
			Items     struct {
				Data []handlers.WatchlistMovieResponse `json:"data"`
			} `json:"items"`
		}
		testutil.ParseJSONResponse(t, rr, &resp)

		assert.Equal(t, "Shared Picks", resp.Watchlist.Name)
		require.Len(t, resp.Items.Data, 1)
		assert.Equal(t, "Moneyball", resp.Items.Data[0].Title)
	})

	t.Run("private watchlist is not reachable", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/api/watchlists/public/2/2", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}

func TestWatchlistHandler_List(t *testing.T) {
	router, tc := setupWatchlistTestRouter(t)
	defer tc.Cleanup()

	testutil.CreateTestWatchlist(t, tc.DB, tc.User.ID, "First", false)
	testutil.CreateTestWatchlist(t, tc.DB, tc.User.ID, "Second", false)

	other := testutil.CreateTestUser(t, tc.DB)
	testutil.CreateTestWatchlist(t, tc.DB, other.ID, "Not Mine", false)

	req := testutil.AuthenticatedRequest(t, "GET", "/api/watchlists", nil, tc.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp watchlistListResponse
	testutil.ParseJSONResponse(t, rr, &resp)

	require.Len(t, resp.Data, 2)
	for _, wl := range resp.Data {
		assert.NotEqual(t, "Not Mine", wl.Name)
	}
}
