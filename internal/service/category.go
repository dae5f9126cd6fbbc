package service

import (
	"context"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/validation"
)

// CategoryService defines the read-only category operations
type CategoryService interface {
	ListCategories(ctx context.Context) (*dto.CategoriesResponse, error)
	ListQuestionsByCategory(ctx context.Context, rawID string) (*dto.CategoryQuestionsResponse, error)
}

type categoryService struct {
	categories domain.CategoryRepository
	questions  domain.QuestionRepository
	validator  *validation.Validator
}

// NewCategoryService creates a new instance of categoryService
func NewCategoryService(
	categories domain.CategoryRepository,
	questions domain.QuestionRepository,
	validator *validation.Validator,
) CategoryService {
	return &categoryService{
		categories: categories,
		questions:  questions,
		validator:  validator,
	}
}

// ListCategories implements CategoryService
func (s *categoryService) ListCategories(ctx context.Context) (*dto.CategoriesResponse, error) {
	categories, err := s.categories.GetAllCategories(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to get categories", err)
	}
	return &dto.CategoriesResponse{
		Success:         true,
		Categories:      toCategoryResponses(categories),
		TotalCategories: len(categories),
	}, nil
}

// ListQuestionsByCategory implements CategoryService
func (s *categoryService) ListQuestionsByCategory(ctx context.Context, rawID string) (*dto.CategoryQuestionsResponse, error) {
	id, verrs := s.validator.ValidateID("category_id", rawID)
	if len(verrs) > 0 {
		return nil, domain.NewValidationFailedError(verrs)
	}

	category, err := s.categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get category", err)
	}
	if category == nil {
		return nil, domain.NewCategoryNotFoundError(id)
	}

	questions, err := s.questions.GetQuestionsByCategory(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get questions by category", err)
	}

	current := toCategoryResponse(category)
	return &dto.CategoryQuestionsResponse{
		Success:         true,
		Questions:       toQuestionResponses(questions),
		TotalQuestions:  len(questions),
		CurrentCategory: &current,
	}, nil
}
