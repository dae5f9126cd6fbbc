package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"trivia-api/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) CountQuestions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestionRepository) ListQuestions(ctx context.Context, limit, offset int) ([]*domain.Question, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) SearchQuestions(ctx context.Context, term string) ([]*domain.Question, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetQuestionsByCategory(ctx context.Context, categoryID int64) ([]*domain.Question, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetCandidateIDs(ctx context.Context, filter domain.CandidateFilter) ([]int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockQuestionRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// --- MockCategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAllCategories(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

// --- MockTransactionManager ---
// Runs fn unless the expectation returns an error.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// scriptedRandom always picks index pick modulo n.
type scriptedRandom struct {
	pick  int
	calls int
}

func (r *scriptedRandom) Intn(n int) int {
	r.calls++
	return r.pick % n
}

// --- memoryStore ---
// In-memory QuestionRepository, CategoryRepository and TransactionManager
// used for the behavioral tests against the reference dataset.
type memoryStore struct {
	mu         sync.Mutex
	questions  map[int64]domain.Question
	categories []domain.Category
	nextID     int64
}

func newMemoryStore(categories []domain.Category, questions []domain.Question) *memoryStore {
	s := &memoryStore{
		questions:  make(map[int64]domain.Question, len(questions)),
		categories: categories,
	}
	for _, q := range questions {
		s.questions[q.ID] = q
		if q.ID >= s.nextID {
			s.nextID = q.ID + 1
		}
	}
	if s.nextID == 0 {
		s.nextID = 1
	}
	return s
}

func newReferenceStore() *memoryStore {
	return newMemoryStore(referenceCategories(), referenceQuestions())
}

func (s *memoryStore) sorted(keep func(domain.Question) bool) []*domain.Question {
	out := make([]*domain.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep == nil || keep(q) {
			q := q
			out = append(out, &q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memoryStore) CountQuestions(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions), nil
}

func (s *memoryStore) ListQuestions(ctx context.Context, limit, offset int) ([]*domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.sorted(nil)
	if offset >= len(all) {
		return []*domain.Question{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *memoryStore) SearchQuestions(ctx context.Context, term string) ([]*domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	term = strings.ToLower(term)
	return s.sorted(func(q domain.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), term)
	}), nil
}

func (s *memoryStore) GetQuestionsByCategory(ctx context.Context, categoryID int64) ([]*domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(q domain.Question) bool { return q.Category == categoryID }), nil
}

func (s *memoryStore) GetQuestionByID(ctx context.Context, id int64) (*domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (s *memoryStore) GetCandidateIDs(ctx context.Context, filter domain.CandidateFilter) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	excluded := make(map[int64]bool, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = true
	}
	ids := []int64{}
	for _, q := range s.sorted(nil) {
		if excluded[q.ID] {
			continue
		}
		if filter.CategoryID != nil && q.Category != *filter.CategoryID {
			continue
		}
		ids = append(ids, q.ID)
	}
	return ids, nil
}

func (s *memoryStore) SaveQuestion(ctx context.Context, question *domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	question.ID = s.nextID
	s.nextID++
	s.questions[question.ID] = *question
	return nil
}

func (s *memoryStore) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return false, nil
	}
	delete(s.questions, id)
	return true, nil
}

func (s *memoryStore) GetAllCategories(ctx context.Context) ([]*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Category, len(s.categories))
	for i := range s.categories {
		c := s.categories[i]
		out[i] = &c
	}
	return out, nil
}

func (s *memoryStore) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func referenceCategories() []domain.Category {
	return []domain.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
		{ID: 4, Type: "History"},
		{ID: 5, Type: "Entertainment"},
		{ID: 6, Type: "Sports"},
	}
}

func referenceQuestions() []domain.Question {
	return []domain.Question{
		{ID: 2, Question: "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", Answer: "Apollo 13", Category: 5, Difficulty: 4},
		{ID: 4, Question: "What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", Answer: "Tom Cruise", Category: 5, Difficulty: 4},
		{ID: 5, Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: 4, Difficulty: 2},
		{ID: 6, Question: "What was the title of the 1990 fantasy directed by Tim Burton about a young man with multi-bladed appendages?", Answer: "Edward Scissorhands", Category: 5, Difficulty: 3},
		{ID: 9, Question: "What boxer's original name is Cassius Clay?", Answer: "Muhammad Ali", Category: 4, Difficulty: 1},
		{ID: 10, Question: "Which is the only team to play in every soccer World Cup tournament?", Answer: "Brazil", Category: 6, Difficulty: 3},
		{ID: 11, Question: "Which country won the first ever soccer World Cup in 1930?", Answer: "Uruguay", Category: 6, Difficulty: 4},
		{ID: 12, Question: "Who invented Peanut Butter?", Answer: "George Washington Carver", Category: 4, Difficulty: 2},
		{ID: 13, Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Category: 3, Difficulty: 2},
		{ID: 14, Question: "In which royal palace would you find the Hall of Mirrors?", Answer: "The Palace of Versailles", Category: 3, Difficulty: 3},
		{ID: 15, Question: "The Taj Mahal is located in which Indian city?", Answer: "Agra", Category: 3, Difficulty: 2},
		{ID: 16, Question: "Which Dutch graphic artist-initials M C was a creator of optical illusions?", Answer: "Escher", Category: 2, Difficulty: 1},
		{ID: 17, Question: "La Giaconda is better known as what?", Answer: "Mona Lisa", Category: 2, Difficulty: 3},
		{ID: 18, Question: "How many paintings did Van Gogh sell in his lifetime?", Answer: "One", Category: 2, Difficulty: 4},
		{ID: 19, Question: "Which American artist was a pioneer of Abstract Expressionism, and a leading exponent of action painting?", Answer: "Jackson Pollock", Category: 2, Difficulty: 2},
		{ID: 20, Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4},
		{ID: 21, Question: "Who discovered penicillin?", Answer: "Alexander Fleming", Category: 1, Difficulty: 3},
		{ID: 22, Question: "Hematology is a branch of medicine involving the study of what?", Answer: "Blood", Category: 1, Difficulty: 4},
		{ID: 23, Question: "Which dung beetle was worshipped by the ancient Egyptians?", Answer: "Scarab", Category: 4, Difficulty: 4},
	}
}
