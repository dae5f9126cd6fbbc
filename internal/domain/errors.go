package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	CodeBadRequest    ErrorCode = "BAD_REQUEST"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeUnprocessable ErrorCode = "UNPROCESSABLE"
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeUnavailable   ErrorCode = "UNAVAILABLE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// WithContext attaches a key/value pair that the error handler reports as a detail.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewBadRequestError(message string) *DomainError {
	return NewError(CodeBadRequest, message, nil)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewUnprocessableError(message string) *DomainError {
	return NewError(CodeUnprocessable, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnavailableError(message string, cause error) *DomainError {
	return NewError(CodeUnavailable, message, cause)
}

func NewQuestionNotFoundError(id int64) *DomainError {
	return NewError(CodeNotFound, fmt.Sprintf("question not found with ID: %d", id), nil).
		WithContext("question_id", id)
}

func NewCategoryNotFoundError(id int64) *DomainError {
	return NewError(CodeNotFound, fmt.Sprintf("category not found with ID: %d", id), nil).
		WithContext("category_id", id)
}

func NewPageNotFoundError(page int) *DomainError {
	return NewError(CodeNotFound, fmt.Sprintf("page %d is out of range", page), nil).
		WithContext("page", page)
}

// ValidationError describes one rejected request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field error found in a request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Message: "has an invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d", min, max),
		Value:   value,
	}
}

// NewValidationFailedError wraps field errors into an UNPROCESSABLE DomainError.
func NewValidationFailedError(errs ValidationErrors) *DomainError {
	return NewError(CodeUnprocessable, "request validation failed", errs).
		WithContext("errors", []ValidationError(errs))
}
