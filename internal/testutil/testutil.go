package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cinelog/internal/auth"
	"cinelog/internal/database/models"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Same duplicate-key translation as the production connection so the
		// handlers see gorm.ErrDuplicatedKey here too.
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Movie{},
		&models.Genre{},
		&models.MovieGenre{},
		&models.StreamingURL{},
		&models.Favorite{},
		&models.Watchlist{},
		&models.WatchlistItem{},
		&models.Comment{},
		&models.UserEvent{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CreateTestUser creates a user with a known password ("Testpass1!").
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("Testpass1!")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:         "Test User",
		Email:        "test-" + uuid.New().String()[:8] + "@example.com",
		PasswordHash: hash,
		Role:         "USER",
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateTestMovie creates a movie with the given title and rating.
func CreateTestMovie(t *testing.T, db *gorm.DB, title string, rating int) *models.Movie {
	t.Helper()

	movie := &models.Movie{
		Title:       title,
		Description: "Description of " + title,
		ReleaseDate: "2020-01-01",
		Rating:      rating,
		Image:       "https://example.com/" + uuid.New().String()[:8] + ".jpg",
		Trailer:     "https://example.com/" + uuid.New().String()[:8],
	}

	if err := db.Create(movie).Error; err != nil {
		t.Fatalf("failed to create test movie: %v", err)
	}

	return movie
}

// CreateTestGenre creates a genre.
func CreateTestGenre(t *testing.T, db *gorm.DB, name string) *models.Genre {
	t.Helper()

	genre := &models.Genre{Name: name}
	if err := db.Create(genre).Error; err != nil {
		t.Fatalf("failed to create test genre: %v", err)
	}

	return genre
}

// LinkMovieGenre adds a movie to a genre.
func LinkMovieGenre(t *testing.T, db *gorm.DB, movieID, genreID uint) {
	t.Helper()

	link := models.MovieGenre{MovieID: movieID, GenreID: genreID}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("failed to link movie to genre: %v", err)
	}
}

// CreateTestWatchlist creates a watchlist owned by the given user.
func CreateTestWatchlist(t *testing.T, db *gorm.DB, userID uint, name string, isPublic bool) *models.Watchlist {
	t.Helper()

	wl := &models.Watchlist{
		UserID:      userID,
		Name:        name,
		Description: "Description of " + name,
		IsPublic:    isPublic,
	}
	if err := db.Create(wl).Error; err != nil {
		t.Fatalf("failed to create test watchlist: %v", err)
	}

	return wl
}

// CreateTestFavorite marks a movie as a favorite of the given user.
func CreateTestFavorite(t *testing.T, db *gorm.DB, userID, movieID uint) {
	t.Helper()

	fav := models.Favorite{UserID: userID, MovieID: movieID}
	if err := db.Create(&fav).Error; err != nil {
		t.Fatalf("failed to create test favorite: %v", err)
	}
}

// CreateTestComment posts a comment by the given user on the given movie.
func CreateTestComment(t *testing.T, db *gorm.DB, userID, movieID uint, content string) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		UserID:  userID,
		MovieID: movieID,
		Content: content,
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create test comment: %v", err)
	}

	return comment
}

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-testing", 24*time.Hour)
}

// GenerateTestToken generates a valid JWT token for the given user
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, user *models.User) string {
	t.Helper()

	token, err := jwtService.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	return token
}

// AuthenticatedRequest creates an HTTP request carrying the session cookie.
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}

	return req
}

// UnauthenticatedRequest creates an HTTP request without authentication
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	return AuthenticatedRequest(t, method, path, body, "")
}

// AssertStatus checks if the response has the expected status code
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// SeedCatalog inserts n movies with distinct titles and descending ratings.
func SeedCatalog(t *testing.T, db *gorm.DB, n int) []*models.Movie {
	t.Helper()

	movies := make([]*models.Movie, 0, n)
	for i := 0; i < n; i++ {
		movies = append(movies, CreateTestMovie(t, db, fmt.Sprintf("Movie %02d", i+1), 100-i))
	}
	return movies
}

// TestSetup holds all the common test dependencies
type TestSetup struct {
	DB         *gorm.DB
	JWTService *auth.JWTService
	User       *models.User
	Token      string
}

// NewTestContext creates a complete test setup with DB, user, and token
func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	db := SetupTestDB(t)
	jwtService := CreateTestJWTService()
	user := CreateTestUser(t, db)
	token := GenerateTestToken(t, jwtService, user)

	return &TestSetup{
		DB:         db,
		JWTService: jwtService,
		User:       user,
		Token:      token,
	}
}

// Cleanup closes the test database
func (ts *TestSetup) Cleanup() {
	if ts.DB != nil {
		sqlDB, err := ts.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}
