package driven

import (
	"context"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

// QuizStore persists imported quizzes.
type QuizStore interface {
	// Save stores or replaces a quiz.
	Save(ctx context.Context, quiz *domain.Quiz) error

	// Get retrieves a quiz by ID.
	// Returns domain.ErrNotFound if the quiz does not exist.
	Get(ctx context.Context, id string) (*domain.Quiz, error)

	// List returns all quizzes, newest first.
	List(ctx context.Context) ([]domain.Quiz, error)

	// Delete removes a quiz.
	// Returns domain.ErrNotFound if the quiz does not exist.
	Delete(ctx context.Context, id string) error
}
