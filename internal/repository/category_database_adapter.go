package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"
)

type CategoryDatabaseAdapter struct {
	db DBTX
}

// NewCategoryDatabaseAdapter creates a new instance of CategoryDatabaseAdapter
func NewCategoryDatabaseAdapter(db DBTX) *CategoryDatabaseAdapter {
	return &CategoryDatabaseAdapter{db: db}
}

var _ domain.CategoryRepository = (*CategoryDatabaseAdapter)(nil)

// GetAllCategories returns all categories
func (r *CategoryDatabaseAdapter) GetAllCategories(ctx context.Context) ([]*domain.Category, error) {
	var categories []models.Category
	query := `SELECT id "id", type "type" FROM categories ORDER BY id`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	domainCategories := make([]*domain.Category, len(categories))
	for i := range categories {
		domainCategories[i] = convertToDomainCategory(&categories[i])
	}
	return domainCategories, nil
}

// GetCategoryByID returns the category or nil when it does not exist
func (r *CategoryDatabaseAdapter) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	exec := GetExecutor(ctx, r.db)
	var category models.Category
	query := exec.Rebind(`SELECT id "id", type "type" FROM categories WHERE id = ?`)
	if err := exec.GetContext(ctx, &category, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, err)
	}
	return convertToDomainCategory(&category), nil
}

// SaveCategory persists a category with its explicit id
func (r *CategoryDatabaseAdapter) SaveCategory(ctx context.Context, category *domain.Category) error {
	if category == nil {
		return fmt.Errorf("cannot save nil category")
	}
	exec := GetExecutor(ctx, r.db)
	modelCategory := convertToModelCategory(category)
	query := exec.Rebind(`INSERT INTO categories (id, type) VALUES (?, ?)`)
	if _, err := exec.ExecContext(ctx, query, modelCategory.ID, modelCategory.Type); err != nil {
		return fmt.Errorf("failed to save category %q: %w", category.Type, err)
	}
	return nil
}

func convertToDomainCategory(category *models.Category) *domain.Category {
	return &domain.Category{
		ID:   category.ID,
		Type: category.Type,
	}
}

func convertToModelCategory(category *domain.Category) *models.Category {
	return &models.Category{
		ID:   category.ID,
		Type: category.Type,
	}
}
