package main

import (
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"cinelog/internal/database"
	"cinelog/internal/tasks"
	"cinelog/pkg/config"
	"cinelog/pkg/queue"
	"cinelog/pkg/util"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	srv := queue.NewServer(&cfg.Redis, 10)

	mux := asynq.NewServeMux()
	handler := tasks.NewHandler(db, redisClient, logger)
	handler.RegisterHandlers(mux)

	logger.Info("worker starting", "redis", cfg.Redis.Addr())
	if err := srv.Run(mux); err != nil {
		logger.Error("worker stopped", "error", err)
		os.Exit(1)
	}
}
