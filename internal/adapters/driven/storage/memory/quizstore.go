package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driven"
)

// Ensure QuizStore implements the interface.
var _ driven.QuizStore = (*QuizStore)(nil)

// QuizStore is an in-memory implementation of driven.QuizStore.
// Stored quizzes are copied in and out so callers cannot alias them.
type QuizStore struct {
	mu      sync.RWMutex
	quizzes map[string]*domain.Quiz
}

// NewQuizStore creates a new in-memory quiz store.
func NewQuizStore() *QuizStore {
	return &QuizStore{
		quizzes: make(map[string]*domain.Quiz),
	}
}

// Save stores or replaces a quiz.
func (s *QuizStore) Save(_ context.Context, quiz *domain.Quiz) error {
	if quiz == nil || quiz.ID == "" {
		return fmt.Errorf("%w: quiz id required", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = quiz.Clone()
	return nil
}

// Get retrieves a quiz by ID.
func (s *QuizStore) Get(_ context.Context, id string) (*domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return quiz.Clone(), nil
}

// List returns all quizzes, newest first.
func (s *QuizStore) List(_ context.Context) ([]domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Quiz, 0, len(s.quizzes))
	for _, quiz := range s.quizzes {
		result = append(result, *quiz.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a quiz.
func (s *QuizStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.quizzes, id)
	return nil
}
