package main

import (
	"context"
	"os"

	"gameshop-api/config"
	"gameshop-api/internal/database"
	"gameshop-api/internal/logger"
	"gameshop-api/internal/migrate"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.Connect(cfg.DatabaseURL, log)
	defer database.Close(db, log)

	if err := migrate.MigrateDB(context.Background(), db, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	log.Info("migration completed successfully")
}
