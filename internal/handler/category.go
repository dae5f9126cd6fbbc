package handler

import (
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	service service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler instance
func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	resp, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListQuestionsByCategory godoc
// @Summary List questions of a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.CategoryQuestionsResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /categories/{id}/questions [get]
func (h *CategoryHandler) ListQuestionsByCategory(c *fiber.Ctx) error {
	resp, err := h.service.ListQuestionsByCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
