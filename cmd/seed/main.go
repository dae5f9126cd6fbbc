package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"trivia-api/cmd/seed/internal/seeder"
	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/logger"
	"trivia-api/internal/repository"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	seedFile := pflag.String("file", "", "seed file to load (defaults to seed.file from config)")
	configFile := pflag.String("config", "", "path to a config file (defaults to ./config.yaml or ./configs/config.yaml)")
	pflag.Parse()

	cfg, err := config.LoadConfigFile(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	path := cfg.Seed.File
	if *seedFile != "" {
		path = *seedFile
	}

	data, err := seeder.LoadFile(path)
	if err != nil {
		appLogger.Fatal("Failed to load seed data", zap.String("path", path), zap.Error(err))
	}
	appLogger.Info("Loaded seed data",
		zap.String("path", path),
		zap.Int("categories", len(data.Categories)),
		zap.Int("questions", len(data.Questions)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewSQLXDB(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	_, err = seeder.Seed(ctx,
		repository.NewTransactionManagerAdapter(db),
		repository.NewCategoryDatabaseAdapter(db),
		repository.NewQuestionDatabaseAdapter(db),
		data,
	)
	if err != nil {
		appLogger.Error("Seeding failed", zap.Error(err))
		return
	}
	appLogger.Info("Seeding completed")
}
