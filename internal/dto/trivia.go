package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexibleInt accepts a JSON number or a numeric string ("3").
// Decoding never fails; Present and Valid record what was seen so the
// validator can report the field instead of rejecting the whole body.
type FlexibleInt struct {
	Value   int64
	Present bool
	Valid   bool
	Raw     string
}

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	f.Present = true
	f.Raw = string(data)
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err == nil {
		if v, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			f.Value, f.Valid = v, true
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			f.Value, f.Valid = v, true
		}
	}
	return nil
}

func (f FlexibleInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// NewFlexibleInt returns a present, valid FlexibleInt.
func NewFlexibleInt(v int64) FlexibleInt {
	return FlexibleInt{Value: v, Present: true, Valid: true, Raw: strconv.FormatInt(v, 10)}
}

// CategoryResponse represents a category in the API response
// @Description Category information
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// QuestionResponse represents a question in the API response
// @Description Question information
type QuestionResponse struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// QuestionListResponse is returned by GET /questions
type QuestionListResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	Categories      []CategoryResponse `json:"categories"`
	CurrentCategory *CategoryResponse  `json:"current_category"`
}

// SearchQuestionsRequest is the body of POST /search.
// A nil SearchTerm means the key was missing.
type SearchQuestionsRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

// SearchQuestionsResponse is returned by POST /search
type SearchQuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	CurrentCategory *CategoryResponse  `json:"current_category"`
}

// CreateQuestionRequest is the body of POST /questions
// @Description Request body for creating a question
type CreateQuestionRequest struct {
	Question   *string     `json:"question"`
	Answer     *string     `json:"answer"`
	Category   FlexibleInt `json:"category" swaggertype:"integer"`
	Difficulty FlexibleInt `json:"difficulty" swaggertype:"integer"`
}

// CreateQuestionResponse is returned by POST /questions
type CreateQuestionResponse struct {
	Success        bool  `json:"success"`
	Created        int64 `json:"created"`
	TotalQuestions int   `json:"total_questions"`
}

// DeleteQuestionResponse is returned by DELETE /questions/{id}
type DeleteQuestionResponse struct {
	Success        bool  `json:"success"`
	Deleted        int64 `json:"deleted"`
	TotalQuestions int   `json:"total_questions"`
}

// CategoriesResponse is returned by GET /categories
type CategoriesResponse struct {
	Success         bool               `json:"success"`
	Categories      []CategoryResponse `json:"categories"`
	TotalCategories int                `json:"total_categories"`
}

// CategoryQuestionsResponse is returned by GET /categories/{id}/questions
type CategoryQuestionsResponse struct {
	Success         bool               `json:"success"`
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	CurrentCategory *CategoryResponse  `json:"current_category"`
}

// QuizRequest is the body of POST /quizzes.
// QuizCategory is kept raw: clients send an object {id, type}, a string or a number.
// PreviousQuestions entries are checked by the validator so a bad id is a field error.
// @Description Request body for drawing the next quiz question
type QuizRequest struct {
	PreviousQuestions []FlexibleInt   `json:"previous_questions" swaggertype:"array,integer"`
	QuizCategory      json.RawMessage `json:"quiz_category" swaggertype:"object"`
}

// QuizResponse is returned by POST /quizzes. Question is null when the quiz is over.
type QuizResponse struct {
	Success  bool              `json:"success"`
	Question *QuestionResponse `json:"question"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}
