package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/logger"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	down := pflag.Bool("down", false, "roll back all migrations instead of applying them")
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewSQLXDB(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, cfg, db, *down); err != nil {
		appLogger.Error("Migration failed", zap.Error(err), zap.String("db_driver", cfg.DB.Driver))
		return
	}
	appLogger.Info("Migration finished", zap.Bool("down", *down), zap.String("db_driver", cfg.DB.Driver))
}
