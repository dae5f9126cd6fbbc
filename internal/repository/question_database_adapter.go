package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// Quoted lower-case aliases keep sqlx mapping stable on Oracle, which
// upper-cases unquoted column names.
const questionColumns = `id "id", question "question", answer "answer", category "category", difficulty "difficulty"`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx
type QuestionDatabaseAdapter struct {
	db DBTX
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db DBTX) *QuestionDatabaseAdapter {
	return &QuestionDatabaseAdapter{db: db}
}

var _ domain.QuestionRepository = (*QuestionDatabaseAdapter)(nil)

// CountQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CountQuestions(ctx context.Context) (int, error) {
	var total int
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &total, `SELECT COUNT(*) FROM questions`); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return total, nil
}

// ListQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListQuestions(ctx context.Context, limit, offset int) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`SELECT ` + questionColumns + `
	FROM questions
	ORDER BY id
	OFFSET ? ROWS FETCH NEXT ? ROWS ONLY`)

	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, query, offset, limit); err != nil {
		return nil, fmt.Errorf("failed to list questions (limit %d, offset %d): %w", limit, offset, err)
	}
	return toDomainQuestions(rows), nil
}

// SearchQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SearchQuestions(ctx context.Context, term string) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`SELECT ` + questionColumns + `
	FROM questions
	WHERE LOWER(question) LIKE ? ESCAPE '\'
	ORDER BY id`)

	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, query, containsPattern(term)); err != nil {
		return nil, fmt.Errorf("failed to search questions for %q: %w", term, err)
	}
	return toDomainQuestions(rows), nil
}

// GetQuestionsByCategory implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionsByCategory(ctx context.Context, categoryID int64) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`SELECT ` + questionColumns + `
	FROM questions
	WHERE category = ?
	ORDER BY id`)

	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to get questions for category %d: %w", categoryID, err)
	}
	return toDomainQuestions(rows), nil
}

// GetQuestionByID implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE id = ?`)

	var row models.Question
	if err := exec.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %d: %w", id, err)
	}
	return toDomainQuestion(&row), nil
}

// GetCandidateIDs implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetCandidateIDs(ctx context.Context, filter domain.CandidateFilter) ([]int64, error) {
	exec := GetExecutor(ctx, a.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.CategoryID != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *filter.CategoryID)
	}
	if len(filter.ExcludeIDs) > 0 {
		conditions = append(conditions, "id NOT IN (?)")
		args = append(args, filter.ExcludeIDs)
	}

	query := `SELECT id FROM questions`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY id`

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build candidate query: %w", err)
	}

	ids := []int64{}
	if err := exec.SelectContext(ctx, &ids, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get quiz candidates: %w", err)
	}
	return ids, nil
}

// SaveQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return fmt.Errorf("cannot save nil question")
	}
	exec := GetExecutor(ctx, a.db)
	row := toModelQuestion(question)

	var id int64
	if isOracle(exec) {
		query := exec.Rebind(`INSERT INTO questions (question, answer, category, difficulty)
		VALUES (?, ?, ?, ?)
		RETURNING id INTO ?`)
		if _, err := exec.ExecContext(ctx, query,
			row.Question, row.Answer, row.Category, row.Difficulty, sql.Out{Dest: &id},
		); err != nil {
			return fmt.Errorf("failed to save question: %w", err)
		}
	} else {
		query := exec.Rebind(`INSERT INTO questions (question, answer, category, difficulty)
		VALUES (?, ?, ?, ?)
		RETURNING id`)
		if err := exec.GetContext(ctx, &id, query,
			row.Question, row.Answer, row.Category, row.Difficulty,
		); err != nil {
			return fmt.Errorf("failed to save question: %w", err)
		}
	}

	question.ID = id
	return nil
}

// DeleteQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	exec := GetExecutor(ctx, a.db)
	result, err := exec.ExecContext(ctx, exec.Rebind(`DELETE FROM questions WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// InsertQuestionWithID stores a question keeping its explicit id. Used by the
// seeder to load the reference dataset; call ResetQuestionIdentity afterwards.
func (a *QuestionDatabaseAdapter) InsertQuestionWithID(ctx context.Context, question *domain.Question) error {
	exec := GetExecutor(ctx, a.db)
	row := toModelQuestion(question)
	query := exec.Rebind(`INSERT INTO questions (id, question, answer, category, difficulty) VALUES (?, ?, ?, ?, ?)`)
	if _, err := exec.ExecContext(ctx, query, row.ID, row.Question, row.Answer, row.Category, row.Difficulty); err != nil {
		return fmt.Errorf("failed to insert question %d: %w", row.ID, err)
	}
	return nil
}

// ResetQuestionIdentity moves the id generator past the largest stored id.
func (a *QuestionDatabaseAdapter) ResetQuestionIdentity(ctx context.Context) error {
	exec := GetExecutor(ctx, a.db)
	query := `SELECT setval(pg_get_serial_sequence('questions', 'id'), COALESCE((SELECT MAX(id) FROM questions), 0) + 1, false)`
	if isOracle(exec) {
		query = `ALTER TABLE questions MODIFY id GENERATED BY DEFAULT AS IDENTITY (START WITH LIMIT VALUE)`
	}
	if _, err := exec.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to reset question identity: %w", err)
	}
	return nil
}

func toDomainQuestion(row *models.Question) *domain.Question {
	return &domain.Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: row.Difficulty,
	}
}

func toDomainQuestions(rows []models.Question) []*domain.Question {
	questions := make([]*domain.Question, len(rows))
	for i := range rows {
		questions[i] = toDomainQuestion(&rows[i])
	}
	return questions
}

func toModelQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}
