package validation

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
)

const (
	maxQuestionLength = 1000
	maxAnswerLength   = 1000

	allCategoriesKeyword = "ALL"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreateQuestionRequest checks all four fields of POST /questions
// and returns the domain question when the request is acceptable.
func (v *Validator) ValidateCreateQuestionRequest(req *dto.CreateQuestionRequest) (*domain.Question, domain.ValidationErrors) {
	var errors domain.ValidationErrors
	if req == nil {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("body")}
	}

	question := validateText(&errors, "question", req.Question, maxQuestionLength)
	answer := validateText(&errors, "answer", req.Answer, maxAnswerLength)

	category := validateInt(&errors, "category", req.Category)
	if req.Category.Valid && category <= 0 {
		errors = append(errors, domain.NewInvalidFormatError("category", category))
	}

	difficulty := validateInt(&errors, "difficulty", req.Difficulty)
	if req.Difficulty.Valid && (difficulty < domain.MinDifficulty || difficulty > domain.MaxDifficulty) {
		errors = append(errors, domain.NewOutOfRangeError("difficulty", difficulty, domain.MinDifficulty, domain.MaxDifficulty))
	}

	if len(errors) > 0 {
		return nil, errors
	}
	return domain.NewQuestion(question, answer, category, int(difficulty)), nil
}

// ValidateSearchRequest returns the term of POST /search as sent. A missing
// key is an error; an empty term is allowed and matches every question.
func (v *Validator) ValidateSearchRequest(req *dto.SearchQuestionsRequest) (string, domain.ValidationErrors) {
	if req == nil || req.SearchTerm == nil {
		return "", domain.ValidationErrors{domain.NewMissingFieldError("searchTerm")}
	}
	return *req.SearchTerm, nil
}

// ValidateID parses a positive numeric path parameter.
func (v *Validator) ValidateID(field, raw string) (int64, domain.ValidationErrors) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError(field, raw)}
	}
	return id, nil
}

// ValidateQuizRequest resolves quiz_category and the previously served ids.
//
// quiz_category may be an object {"id": N, "type": "..."}, a string or a
// number. id 0 and the keyword ALL select every category.
func (v *Validator) ValidateQuizRequest(req *dto.QuizRequest) (domain.QuizCategory, []int64, domain.ValidationErrors) {
	if req == nil {
		return domain.QuizCategory{}, nil, domain.ValidationErrors{domain.NewMissingFieldError("quiz_category")}
	}

	var (
		errors   domain.ValidationErrors
		previous []int64
	)
	if req.PreviousQuestions != nil {
		previous = make([]int64, 0, len(req.PreviousQuestions))
	}
	for _, id := range req.PreviousQuestions {
		if !id.Valid || id.Value <= 0 {
			errors = append(errors, domain.NewInvalidFormatError("previous_questions", id.Raw))
			break
		}
		previous = append(previous, id.Value)
	}

	category, err := parseQuizCategory(req.QuizCategory)
	if err != nil {
		errors = append(errors, *err)
	}

	if len(errors) > 0 {
		return domain.QuizCategory{}, nil, errors
	}
	return category, previous, nil
}

func parseQuizCategory(raw json.RawMessage) (domain.QuizCategory, *domain.ValidationError) {
	const field = "quiz_category"

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		missing := domain.NewMissingFieldError(field)
		return domain.QuizCategory{}, &missing
	}
	invalid := domain.NewInvalidFormatError(field, string(trimmed))

	switch trimmed[0] {
	case '{':
		var obj struct {
			ID   dto.FlexibleInt `json:"id"`
			Type *string         `json:"type"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return domain.QuizCategory{}, &invalid
		}
		if obj.ID.Present {
			if !obj.ID.Valid {
				return domain.QuizCategory{}, &invalid
			}
			return categoryFromID(obj.ID.Value, invalid)
		}
		if obj.Type != nil && isAllKeyword(*obj.Type) {
			return domain.AllCategories, nil
		}
		return domain.QuizCategory{}, &invalid
	default:
		var id dto.FlexibleInt
		_ = id.UnmarshalJSON(trimmed)
		if id.Valid {
			return categoryFromID(id.Value, invalid)
		}
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil && isAllKeyword(s) {
			return domain.AllCategories, nil
		}
		return domain.QuizCategory{}, &invalid
	}
}

func categoryFromID(id int64, invalid domain.ValidationError) (domain.QuizCategory, *domain.ValidationError) {
	switch {
	case id == 0:
		return domain.AllCategories, nil
	case id > 0:
		return domain.QuizCategory{ID: id}, nil
	default:
		return domain.QuizCategory{}, &invalid
	}
}

func isAllKeyword(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), allCategoriesKeyword)
}

func validateText(errors *domain.ValidationErrors, field string, value *string, maxLen int) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		*errors = append(*errors, domain.NewMissingFieldError(field))
		return ""
	}
	text := *value
	if len(text) > maxLen {
		*errors = append(*errors, domain.NewOutOfRangeError(field, len(text), 1, maxLen))
	}
	return text
}

func validateInt(errors *domain.ValidationErrors, field string, value dto.FlexibleInt) int64 {
	switch {
	case !value.Present:
		*errors = append(*errors, domain.NewMissingFieldError(field))
	case !value.Valid:
		*errors = append(*errors, domain.NewInvalidFormatError(field, value.Raw))
	}
	return value.Value
}
