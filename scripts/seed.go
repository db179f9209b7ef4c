//go:build ignore

// Seeds the database with a starter catalog. Run with:
//
//	go run scripts/seed.go
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"cinelog/internal/database"
	"cinelog/internal/database/models"
	"cinelog/pkg/config"
	"cinelog/pkg/util"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to connect:", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		fmt.Fprintln(os.Stderr, "failed to migrate:", err)
		os.Exit(1)
	}

	genres := []models.Genre{
		{Name: "Action"},
		{Name: "Thriller"},
		{Name: "Drama"},
		{Name: "Sports"},
		{Name: "Biography"},
		{Name: "Romance"},
	}
	if err := db.Create(&genres).Error; err != nil {
		fmt.Fprintln(os.Stderr, "failed to seed genres:", err)
		os.Exit(1)
	}

	movies := []models.Movie{
		{
			Title:       "The Gorge",
			Description: "Two highly-trained operatives are appointed to posts in guard towers on opposite sides of a vast and highly classified gorge, protecting the world from a mysterious evil that lurks within. They work together to keep the secret in the gorge.",
			ReleaseDate: "2025-02-14",
			Rating:      70,
			Image:       "https://encrypted-tbn1.gstatic.com/images?q=tbn:ANd9GcSBcutt8c7S-kokoBHXWNchEIJ76nASu7qcywamV6p9s8ofWfmc",
			Trailer:     "https://www.youtube.com/watch?v=rUSdnuOLebE",
		},
		{
			Title:       "John Wick",
			Description: "An ex-hitman comes out of retirement to track down the gangsters that killed his dog and took everything from him.",
			ReleaseDate: "2014-10-24",
			Rating:      86,
			Image:       "https://m.media-amazon.com/images/M/MV5BMTU2NjA1ODgzMF5BMl5BanBnXkFtZTgwMTM2MTI4MjE@._V1_FMjpg_UY2048_.jpg",
			Trailer:     "https://www.youtube.com/watch?v=l1g0fn5Nm_g",
		},
		{
			Title:       "The Gray Man",
			Description: "When the CIA's top asset uncovers agency secrets, he triggers a global hunt by assassins set loose by his ex-colleague.",
			ReleaseDate: "2022-07-22",
			Rating:      46,
			Image:       "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcSIIEieA60s045REMTi5Y-h7jFXOQ3uXKqMdrdyMe4wW9QQJnYo",
			Trailer:     "https://www.youtube.com/watch?v=BmllggGO4pM",
		},
		{
			Title:       "Manchester by the Sea",
			Description: "After his brother's death, Lee Chandler is named guardian to his 16-year-old nephew, Patrick. This forces him to return to his hometown and confront his past.",
			ReleaseDate: "2016-11-18",
			Rating:      96,
			Image:       "https://encrypted-tbn3.gstatic.com/images?q=tbn:ANd9GcRZLuEiplcmrl-b-LV8K3RfiN_ba4W4GyPJPIy8ZDfifsQGuRjm",
			Trailer:     "https://www.youtube.com/watch?v=obdKk_sYQNI",
		},
		{
			Title:       "Jerry Maguire",
			Description: "When a sports agent has a moral epiphany and is fired for expressing it, he decides to put his new philosophy to the test as an independent agent with the only athlete who stays with him and his former colleague.",
			ReleaseDate: "1996-12-13",
			Rating:      84,
			Image:       "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcR9CLFPbAVnFpw0ADO1s7ytSx1o6SnPDHLiLSmY-BsqinpnSrrb",
			Trailer:     "https://www.youtube.com/watch?v=KUd3gwaf0KQ",
		},
		{
			Title:       "Moneyball",
			Description: "Oakland Athletics general manager Billy Beane decides to challenge the old school selection methods. He sets off to assemble a baseball team using an innovative computer-generated analysis.",
			ReleaseDate: "2011-09-23",
			Rating:      94,
			Image:       "https://m.media-amazon.com/images/M/MV5BMjAxOTU3Mzc1M15BMl5BanBnXkFtZTcwMzk1ODUzNg@@._V1_FMjpg_UY2048_.jpg",
			Trailer:     "https://www.youtube.com/watch?v=D1R-LwHbld4",
		},
	}
	if err := db.Create(&movies).Error; err != nil {
		fmt.Fprintln(os.Stderr, "failed to seed movies:", err)
		os.Exit(1)
	}

	links := []models.MovieGenre{
		{MovieID: movies[0].ID, GenreID: genres[0].ID}, // The Gorge: Action
		{MovieID: movies[0].ID, GenreID: genres[1].ID}, // The Gorge: Thriller
		{MovieID: movies[1].ID, GenreID: genres[0].ID}, // John Wick: Action
		{MovieID: movies[1].ID, GenreID: genres[1].ID}, // John Wick: Thriller
		{MovieID: movies[2].ID, GenreID: genres[0].ID}, // The Gray Man: Action
		{MovieID: movies[2].ID, GenreID: genres[1].ID}, // The Gray Man: Thriller
		{MovieID: movies[3].ID, GenreID: genres[2].ID}, // Manchester by the Sea: Drama
		{MovieID: movies[4].ID, GenreID: genres[2].ID}, // Jerry Maguire: Drama
		{MovieID: movies[4].ID, GenreID: genres[5].ID}, // Jerry Maguire: Romance
		{MovieID: movies[4].ID, GenreID: genres[3].ID}, // Jerry Maguire: Sports
		{MovieID: movies[5].ID, GenreID: genres[2].ID}, // Moneyball: Drama
		{MovieID: movies[5].ID, GenreID: genres[3].ID}, // Moneyball: Sports
		{MovieID: movies[5].ID, GenreID: genres[4].ID}, // Moneyball: Biography
	}
	if err := db.Create(&links).Error; err != nil {
		fmt.Fprintln(os.Stderr, "failed to seed genre links:", err)
		os.Exit(1)
	}

	fmt.Printf("seeded %d genres, %d movies, %d links\n", len(genres), len(movies), len(links))
}
