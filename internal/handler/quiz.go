package handler

import (
	"trivia-api/internal/dto"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz play requests
type QuizHandler struct {
	service service.QuestionService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuestionService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// NextQuizQuestion godoc
// @Summary Next quiz question
// @Description Returns a random question from the chosen category that is not in previous_questions, or null when none is left
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.QuizRequest true "Quiz state"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) NextQuizQuestion(c *fiber.Ctx) error {
	var req dto.QuizRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.service.NextQuizQuestion(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
