package domain

import (
	"context"
	"strings"
)

// QuestionsPerPage is the size of one page of GET /questions.
const QuestionsPerPage = 10

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Category represents a trivia category
type Category struct {
	ID   int64
	Type string
}

// Question represents a trivia question.
// Category holds a Category ID; it is not checked against the categories table.
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// NewQuestion creates a new Question instance
func NewQuestion(question, answer string, category int64, difficulty int) *Question {
	return &Question{
		Question:   question,
		Answer:     answer,
		Category:   category,
		Difficulty: difficulty,
	}
}

// Validate validates the question
func (q *Question) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(q.Question) == "" {
		errs = append(errs, NewMissingFieldError("question"))
	}
	if strings.TrimSpace(q.Answer) == "" {
		errs = append(errs, NewMissingFieldError("answer"))
	}
	if q.Category <= 0 {
		errs = append(errs, NewInvalidFormatError("category", q.Category))
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		errs = append(errs, NewOutOfRangeError("difficulty", q.Difficulty, MinDifficulty, MaxDifficulty))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// QuizCategory selects the quiz candidate pool: every question when All is
// set, otherwise the questions of category ID.
type QuizCategory struct {
	All bool
	ID  int64
}

// AllCategories is the quiz category that applies no filter.
var AllCategories = QuizCategory{All: true}

// CandidateFilter describes the quiz candidate set: an optional category and
// the ids already served in the current quiz.
type CandidateFilter struct {
	CategoryID *int64
	ExcludeIDs []int64
}

// NewCandidateFilter builds the filter for a quiz draw.
func NewCandidateFilter(category QuizCategory, previous []int64) CandidateFilter {
	f := CandidateFilter{ExcludeIDs: dedupeIDs(previous)}
	if !category.All {
		id := category.ID
		f.CategoryID = &id
	}
	return f
}

func dedupeIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// TransactionManager runs fn inside a single store transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// QuestionRepository defines the interface for question persistence
type QuestionRepository interface {
	// CountQuestions returns the number of stored questions
	CountQuestions(ctx context.Context) (int, error)

	// ListQuestions returns one window of questions ordered by id
	ListQuestions(ctx context.Context, limit, offset int) ([]*Question, error)

	// SearchQuestions returns questions whose text contains term, case-insensitively
	SearchQuestions(ctx context.Context, term string) ([]*Question, error)

	// GetQuestionsByCategory returns all questions of one category ordered by id
	GetQuestionsByCategory(ctx context.Context, categoryID int64) ([]*Question, error)

	// GetQuestionByID returns nil, nil when no question has that id
	GetQuestionByID(ctx context.Context, id int64) (*Question, error)

	// GetCandidateIDs returns the ids matching the quiz filter ordered by id
	GetCandidateIDs(ctx context.Context, filter CandidateFilter) ([]int64, error)

	// SaveQuestion inserts a question and sets its store-assigned ID
	SaveQuestion(ctx context.Context, question *Question) error

	// DeleteQuestion removes a question, reporting whether a row was deleted
	DeleteQuestion(ctx context.Context, id int64) (bool, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// GetAllCategories returns all categories ordered by id
	GetAllCategories(ctx context.Context) ([]*Category, error)

	// GetCategoryByID returns nil, nil when no category has that id
	GetCategoryByID(ctx context.Context, id int64) (*Category, error)
}
