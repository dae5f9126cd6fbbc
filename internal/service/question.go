package service

import (
	"context"
	"errors"
	"math"

	"trivia-api/internal/domain"
	"trivia-api/internal/dto"
	"trivia-api/internal/logger"
	"trivia-api/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// QuestionService defines the question and quiz operations
type QuestionService interface {
	ListQuestions(ctx context.Context, page int) (*dto.QuestionListResponse, error)
	SearchQuestions(ctx context.Context, req *dto.SearchQuestionsRequest) (*dto.SearchQuestionsResponse, error)
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error)
	DeleteQuestion(ctx context.Context, rawID string) (*dto.DeleteQuestionResponse, error)
	NextQuizQuestion(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error)
}

type questionService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	txManager  domain.TransactionManager
	validator  *validation.Validator
	random     RandomSource
}

// NewQuestionService creates a new instance of questionService
func NewQuestionService(
	questions domain.QuestionRepository,
	categories domain.CategoryRepository,
	txManager domain.TransactionManager,
	validator *validation.Validator,
	random RandomSource,
) QuestionService {
	return &questionService{
		questions:  questions,
		categories: categories,
		txManager:  txManager,
		validator:  validator,
		random:     random,
	}
}

// ListQuestions implements QuestionService
func (s *questionService) ListQuestions(ctx context.Context, page int) (*dto.QuestionListResponse, error) {
	// Pages whose offset does not fit in an int are past any stored row.
	if page < 1 || page > math.MaxInt/domain.QuestionsPerPage {
		return nil, domain.NewPageNotFoundError(page)
	}
	offset := (page - 1) * domain.QuestionsPerPage

	var (
		questions  []*domain.Question
		total      int
		categories []*domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = s.questions.ListQuestions(gctx, domain.QuestionsPerPage, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.questions.CountQuestions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.GetAllCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to list questions", err)
	}

	if total > 0 && (offset >= total || len(questions) == 0) {
		return nil, domain.NewPageNotFoundError(page)
	}

	return &dto.QuestionListResponse{
		Success:        true,
		Questions:      toQuestionResponses(questions),
		TotalQuestions: total,
		Categories:     toCategoryResponses(categories),
	}, nil
}

// SearchQuestions implements QuestionService
func (s *questionService) SearchQuestions(ctx context.Context, req *dto.SearchQuestionsRequest) (*dto.SearchQuestionsResponse, error) {
	term, verrs := s.validator.ValidateSearchRequest(req)
	if len(verrs) > 0 {
		return nil, domain.NewValidationFailedError(verrs)
	}

	questions, err := s.questions.SearchQuestions(ctx, term)
	if err != nil {
		return nil, domain.NewInternalError("failed to search questions", err)
	}

	return &dto.SearchQuestionsResponse{
		Success:        true,
		Questions:      toQuestionResponses(questions),
		TotalQuestions: len(questions),
	}, nil
}

// CreateQuestion implements QuestionService
func (s *questionService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error) {
	question, verrs := s.validator.ValidateCreateQuestionRequest(req)
	if len(verrs) > 0 {
		return nil, domain.NewValidationFailedError(verrs)
	}
	if err := question.Validate(); err != nil {
		var fieldErrs domain.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return nil, domain.NewValidationFailedError(fieldErrs)
		}
		return nil, domain.NewUnprocessableError(err.Error())
	}

	if err := s.questions.SaveQuestion(ctx, question); err != nil {
		return nil, domain.NewInternalError("failed to save question", err)
	}

	total, err := s.questions.CountQuestions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to count questions", err)
	}

	logger.Get().Info("Question created",
		zap.Int64("question_id", question.ID),
		zap.Int64("category", question.Category),
		zap.Int("difficulty", question.Difficulty))

	return &dto.CreateQuestionResponse{
		Success:        true,
		Created:        question.ID,
		TotalQuestions: total,
	}, nil
}

// DeleteQuestion implements QuestionService
func (s *questionService) DeleteQuestion(ctx context.Context, rawID string) (*dto.DeleteQuestionResponse, error) {
	id, verrs := s.validator.ValidateID("question_id", rawID)
	if len(verrs) > 0 {
		return nil, domain.NewValidationFailedError(verrs)
	}

	var total int
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		question, err := s.questions.GetQuestionByID(txCtx, id)
		if err != nil {
			return domain.NewInternalError("failed to get question", err)
		}
		if question == nil {
			return domain.NewQuestionNotFoundError(id)
		}

		deleted, err := s.questions.DeleteQuestion(txCtx, id)
		if err != nil {
			return domain.NewInternalError("failed to delete question", err)
		}
		if !deleted {
			return domain.NewQuestionNotFoundError(id)
		}

		total, err = s.questions.CountQuestions(txCtx)
		if err != nil {
			return domain.NewInternalError("failed to count questions", err)
		}
		return nil
	})
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		return nil, domain.NewInternalError("failed to delete question", err)
	}

	logger.Get().Info("Question deleted", zap.Int64("question_id", id))

	return &dto.DeleteQuestionResponse{
		Success:        true,
		Deleted:        id,
		TotalQuestions: total,
	}, nil
}

// NextQuizQuestion implements QuestionService
func (s *questionService) NextQuizQuestion(ctx context.Context, req *dto.QuizRequest) (*dto.QuizResponse, error) {
	category, previous, verrs := s.validator.ValidateQuizRequest(req)
	if len(verrs) > 0 {
		return nil, domain.NewValidationFailedError(verrs)
	}

	candidates, err := s.questions.GetCandidateIDs(ctx, domain.NewCandidateFilter(category, previous))
	if err != nil {
		return nil, domain.NewInternalError("failed to get quiz candidates", err)
	}
	if len(candidates) == 0 {
		logger.Get().Debug("Quiz exhausted",
			zap.Bool("all_categories", category.All),
			zap.Int64("category", category.ID),
			zap.Int("previous", len(previous)))
		return &dto.QuizResponse{Success: true}, nil
	}

	id := candidates[s.random.Intn(len(candidates))]
	question, err := s.questions.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get quiz question", err)
	}
	if question == nil {
		// Deleted between the candidate read and the fetch.
		return &dto.QuizResponse{Success: true}, nil
	}

	resp := toQuestionResponse(question)
	return &dto.QuizResponse{
		Success:  true,
		Question: &resp,
	}, nil
}

func toQuestionResponse(q *domain.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

func toQuestionResponses(questions []*domain.Question) []dto.QuestionResponse {
	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, toQuestionResponse(q))
	}
	return out
}

func toCategoryResponse(c *domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Type: c.Type}
}

func toCategoryResponses(categories []*domain.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	return out
}
