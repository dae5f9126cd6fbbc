package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name       string
		question   *Question
		wantErr    bool
		wantFields []string
	}{
		{"valid question", NewQuestion("What is the capital of Austria?", "Vienna", 3, 1), false, nil},
		{"blank question", NewQuestion("   ", "Vienna", 3, 1), true, []string{"question"}},
		{"blank answer", NewQuestion("Q?", "", 3, 1), true, []string{"answer"}},
		{"zero category", NewQuestion("Q?", "A", 0, 1), true, []string{"category"}},
		{"difficulty too high", NewQuestion("Q?", "A", 1, 6), true, []string{"difficulty"}},
		{"everything wrong", NewQuestion("", "", -1, 0), true, []string{"question", "answer", "category", "difficulty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			var fields []string
			for _, e := range verrs {
				fields = append(fields, e.Field)
			}
			if !reflect.DeepEqual(fields, tt.wantFields) {
				t.Errorf("fields = %v, want %v", fields, tt.wantFields)
			}
		})
	}
}

func TestNewQuestion_KeepsText(t *testing.T) {
	q := NewQuestion("  Who?  ", " Me ", 2, 3)
	if q.Question != "  Who?  " || q.Answer != " Me " {
		t.Errorf("text changed: %q / %q", q.Question, q.Answer)
	}
}

func TestNewCandidateFilter(t *testing.T) {
	all := NewCandidateFilter(AllCategories, []int64{4, 4, 9})
	if all.CategoryID != nil {
		t.Errorf("ALL filter should not carry a category, got %d", *all.CategoryID)
	}
	if !reflect.DeepEqual(all.ExcludeIDs, []int64{4, 9}) {
		t.Errorf("exclusions not deduplicated: %v", all.ExcludeIDs)
	}

	science := NewCandidateFilter(QuizCategory{ID: 1}, nil)
	if science.CategoryID == nil || *science.CategoryID != 1 {
		t.Errorf("expected category 1, got %v", science.CategoryID)
	}
	if science.ExcludeIDs != nil {
		t.Errorf("expected no exclusions, got %v", science.ExcludeIDs)
	}
}

func TestDomainError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("failed to count questions", cause)

	if !errors.Is(err, cause) {
		t.Error("DomainError should unwrap to its cause")
	}
	if err.Error() != "failed to count questions: connection refused" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	nf := NewQuestionNotFoundError(7)
	if nf.Code != CodeNotFound || nf.Context["question_id"] != int64(7) {
		t.Errorf("unexpected not found error: %+v", nf)
	}

	verr := NewValidationFailedError(ValidationErrors{NewMissingFieldError("question")})
	var verrs ValidationErrors
	if verr.Code != CodeUnprocessable || !errors.As(verr, &verrs) || len(verrs) != 1 {
		t.Errorf("unexpected validation error: %+v", verr)
	}
}
