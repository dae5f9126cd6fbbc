// Package seeder loads the reference trivia dataset into the store.
package seeder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"trivia-api/internal/domain"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type SeedCategory struct {
	ID   int64  `yaml:"id"`
	Type string `yaml:"type"`
}

type SeedQuestion struct {
	ID         int64  `yaml:"id"`
	Question   string `yaml:"question"`
	Answer     string `yaml:"answer"`
	Category   int64  `yaml:"category"`
	Difficulty int    `yaml:"difficulty"`
}

// SeedData is the layout of a seed file.
type SeedData struct {
	Categories []SeedCategory `yaml:"categories"`
	Questions  []SeedQuestion `yaml:"questions"`
}

// CategoryStore is the part of the category repository the seeder writes through.
type CategoryStore interface {
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
	SaveCategory(ctx context.Context, category *domain.Category) error
}

// QuestionStore is the part of the question repository the seeder writes through.
type QuestionStore interface {
	GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error)
	InsertQuestionWithID(ctx context.Context, question *domain.Question) error
	ResetQuestionIdentity(ctx context.Context) error
}

// Result counts what a Seed run inserted and skipped.
type Result struct {
	CategoriesInserted int
	CategoriesSkipped  int
	QuestionsInserted  int
	QuestionsSkipped   int
}

// LoadFile reads and validates a seed file.
func LoadFile(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes seed YAML. Unknown keys are rejected.
func Parse(raw []byte) (*SeedData, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var data SeedData
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// Validate checks ids are positive and unique and every question is valid.
func (d *SeedData) Validate() error {
	var errs []error

	categoryIDs := make(map[int64]struct{}, len(d.Categories))
	for _, c := range d.Categories {
		if c.ID <= 0 {
			errs = append(errs, fmt.Errorf("category %q: id must be positive", c.Type))
			continue
		}
		if _, dup := categoryIDs[c.ID]; dup {
			errs = append(errs, fmt.Errorf("category %d: duplicate id", c.ID))
		}
		categoryIDs[c.ID] = struct{}{}
		if c.Type == "" {
			errs = append(errs, fmt.Errorf("category %d: type is required", c.ID))
		}
	}

	questionIDs := make(map[int64]struct{}, len(d.Questions))
	for _, q := range d.Questions {
		if q.ID <= 0 {
			errs = append(errs, fmt.Errorf("question %q: id must be positive", q.Question))
			continue
		}
		if _, dup := questionIDs[q.ID]; dup {
			errs = append(errs, fmt.Errorf("question %d: duplicate id", q.ID))
		}
		questionIDs[q.ID] = struct{}{}
		if err := toDomainQuestion(q).Validate(); err != nil {
			errs = append(errs, fmt.Errorf("question %d: %w", q.ID, err))
		}
	}

	return errors.Join(errs...)
}

// Seed inserts the categories and questions that are not stored yet, all in
// one transaction, then moves the question id generator past the seeded ids.
func Seed(ctx context.Context, tm domain.TransactionManager, categories CategoryStore, questions QuestionStore, data *SeedData) (Result, error) {
	log := logger.Get()
	var result Result

	err := tm.WithTransaction(ctx, func(ctx context.Context) error {
		result = Result{}

		for _, sc := range data.Categories {
			existing, err := categories.GetCategoryByID(ctx, sc.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				log.Debug("Category already present", zap.Int64("id", sc.ID), zap.String("type", existing.Type))
				result.CategoriesSkipped++
				continue
			}
			if err := categories.SaveCategory(ctx, &domain.Category{ID: sc.ID, Type: sc.Type}); err != nil {
				return err
			}
			result.CategoriesInserted++
		}

		for _, sq := range data.Questions {
			existing, err := questions.GetQuestionByID(ctx, sq.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				result.QuestionsSkipped++
				continue
			}
			if err := questions.InsertQuestionWithID(ctx, toDomainQuestion(sq)); err != nil {
				return err
			}
			result.QuestionsInserted++
		}

		if result.QuestionsInserted == 0 {
			return nil
		}
		return questions.ResetQuestionIdentity(ctx)
	})
	if err != nil {
		return Result{}, fmt.Errorf("seeding failed: %w", err)
	}

	log.Info("Seed data applied",
		zap.Int("categories_inserted", result.CategoriesInserted),
		zap.Int("categories_skipped", result.CategoriesSkipped),
		zap.Int("questions_inserted", result.QuestionsInserted),
		zap.Int("questions_skipped", result.QuestionsSkipped),
	)
	return result, nil
}

func toDomainQuestion(q SeedQuestion) *domain.Question {
	question := domain.NewQuestion(q.Question, q.Answer, q.Category, q.Difficulty)
	question.ID = q.ID
	return question
}
