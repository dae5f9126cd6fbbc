package handler

import (
	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	service service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		service: service,
	}
}

// ListQuestions godoc
// @Summary List questions
// @Description Returns one page of 10 questions ordered by id, with the total count and all categories
// @Tags questions
// @Produce json
// @Param page query int false "Page number (1-indexed)" default(1)
// @Success 200 {object} dto.QuestionListResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)

	resp, err := h.service.ListQuestions(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SearchQuestions godoc
// @Summary Search questions
// @Description Case-insensitive substring search over question text
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.SearchQuestionsRequest true "Search term"
// @Success 200 {object} dto.SearchQuestionsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /search [post]
// @Router /questions/search [post]
func (h *QuestionHandler) SearchQuestions(c *fiber.Ctx) error {
	var req dto.SearchQuestionsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.service.SearchQuestions(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateQuestion godoc
// @Summary Create a question
// @Description Stores a new question. All four fields are required; category and difficulty accept numbers or numeric strings
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionRequest true "Question"
// @Success 200 {object} dto.CreateQuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.service.CreateQuestion(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.DeleteQuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	resp, err := h.service.DeleteQuestion(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// parseBody decodes a JSON body into out. An empty body leaves out unchanged
// so missing fields are reported by validation.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(c.Body(), out); err != nil {
		return domain.NewBadRequestError("malformed JSON body").WithContext("error", err.Error())
	}
	return nil
}
