package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/pizzaria-backend/internal/catalog"
	"github.com/angelmondragon/pizzaria-backend/pkg/config"
	"github.com/angelmondragon/pizzaria-backend/pkg/db"
	"github.com/angelmondragon/pizzaria-backend/pkg/logger"
)

// Loads the embedded catalog data into the database. Safe to run repeatedly:
// existing rows are updated in place.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)
	if err := catalog.Seed(ctx, dbClient.DB()); err != nil {
		logg.Error(ctx, "catalog seed failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "catalog seed complete")
}
