package handler

import (
	"context"
	"time"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"

	"github.com/gofiber/fiber/v2"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the database is reachable
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		return domain.NewUnavailableError("database unreachable", err)
	}
	return c.JSON(dto.HealthResponse{Success: true, Status: "ok"})
}
