package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cinelog/internal/api/handlers"
	"cinelog/internal/api/middleware"
	"cinelog/internal/auth"
)

// RouterConfig carries the dependencies the HTTP layer needs.
type RouterConfig struct {
	DB            *gorm.DB
	Redis         *redis.Client
	Logger        *slog.Logger
	JWTService    *auth.JWTService
	AuthService   *auth.Service
	GoogleService *auth.GoogleService
	AsynqClient   *asynq.Client

	AllowedOrigins []string
	RateLimitReqs  int
	RateLimitSecs  int
}

// NewRouter assembles the full route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(cfg.AuthService, cfg.GoogleService, cfg.JWTService, cfg.Logger)
	movieHandler := handlers.NewMovieHandler(cfg.DB, cfg.Redis, cfg.Logger)
	genreHandler := handlers.NewGenreHandler(cfg.DB)
	favoriteHandler := handlers.NewFavoriteHandler(cfg.DB)
	watchlistHandler := handlers.NewWatchlistHandler(cfg.DB)
	commentHandler := handlers.NewCommentHandler(cfg.DB)
	eventHandler := handlers.NewEventHandler(cfg.DB, cfg.AsynqClient, cfg.Logger)
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)

	requireAuth := middleware.Auth(cfg.JWTService)

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/google", authHandler.GoogleLogin)
			r.Get("/google/callback", authHandler.GoogleCallback)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", movieHandler.List)
			r.Get("/top-rated", movieHandler.TopRated)
			r.Get("/genre/{genreID}", movieHandler.ListByGenre)
			r.Get("/{movieID}", movieHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", movieHandler.Create)
			})
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", genreHandler.List)
			r.Get("/{genreID}", genreHandler.Get)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", favoriteHandler.List)
			r.Put("/{movieID}", favoriteHandler.Add)
			r.Delete("/{movieID}", favoriteHandler.Remove)
		})

		r.Route("/watchlists", func(r chi.Router) {
			r.Get("/public/{userID}", watchlistHandler.PublicLists)
			r.Get("/public/{userID}/{watchlistID}", watchlistHandler.PublicList)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/", watchlistHandler.List)
				r.Post("/", watchlistHandler.Create)
				r.Get("/{watchlistID}", watchlistHandler.Get)
				r.Put("/{watchlistID}", watchlistHandler.Update)
				r.Delete("/{watchlistID}", watchlistHandler.Delete)
				r.Put("/{watchlistID}/toggle-public", watchlistHandler.TogglePublic)
				r.Post("/{watchlistID}/movies/{movieID}", watchlistHandler.AddMovie)
				r.Delete("/{watchlistID}/movies/{movieID}", watchlistHandler.RemoveMovie)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/movie/{movieID}", commentHandler.ListByMovie)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/movie/{movieID}", commentHandler.Add)
				r.Put("/{commentID}", commentHandler.Update)
				r.Delete("/{commentID}", commentHandler.Delete)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", eventHandler.Record)
		})
	})

	return r
}
