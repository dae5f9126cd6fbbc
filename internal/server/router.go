package server

import (
	"trivia-api/internal/config"
	"trivia-api/internal/handler"
	"trivia-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// Handlers groups the HTTP handlers mounted by NewApp.
type Handlers struct {
	Questions  *handler.QuestionHandler
	Categories *handler.CategoryHandler
	Quizzes    *handler.QuizHandler
	Health     *handler.HealthHandler
}

// NewApp builds the Fiber application with middleware and routes.
func NewApp(cfg *config.Config, h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "trivia-api",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	RegisterRoutes(app, h)
	return app
}

// RegisterRoutes mounts the API routes.
func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/swagger/*", swagger.HandlerDefault)

	if h.Health != nil {
		app.Get("/health", h.Health.Health)
	}

	app.Get("/categories", h.Categories.ListCategories)
	app.Get("/categories/:id/questions", h.Categories.ListQuestionsByCategory)

	app.Get("/questions", h.Questions.ListQuestions)
	app.Post("/questions", h.Questions.CreateQuestion)
	app.Post("/questions/search", h.Questions.SearchQuestions)
	app.Delete("/questions/:id", h.Questions.DeleteQuestion)
	app.Post("/search", h.Questions.SearchQuestions)

	app.Post("/quizzes", h.Quizzes.NextQuizQuestion)
}
