// @title Trivia API
// @version 1.0
// @description Trivia questions, categories and quiz play.
// @contact.name API Support
// @license.name MIT
// @host localhost:8090
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"log"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "trivia-api/cmd/api/docs"
	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/handler"
	"trivia-api/internal/logger"
	"trivia-api/internal/repository"
	"trivia-api/internal/server"
	"trivia-api/internal/service"
	"trivia-api/internal/validation"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
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

	// Initialize repositories
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	categoryRepository := repository.NewCategoryDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize services
	validator := validation.NewValidator()
	questionService := service.NewQuestionService(
		questionRepository,
		categoryRepository,
		txManager,
		validator,
		service.NewRandomSource(cfg.Trivia.RandomSeed),
	)
	categoryService := service.NewCategoryService(categoryRepository, questionRepository, validator)

	app := server.NewApp(cfg, server.Handlers{
		Questions:  handler.NewQuestionHandler(questionService),
		Categories: handler.NewCategoryHandler(categoryService),
		Quizzes:    handler.NewQuizHandler(questionService),
		Health:     handler.NewHealthHandler(db),
	})

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Env),
			zap.String("db_driver", cfg.DB.Driver),
		)
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	appLogger.Info("Server exited gracefully")
}
