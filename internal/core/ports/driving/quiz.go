package driving

import (
	"context"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

// QuizService parses lesson documents and manages imported quizzes.
type QuizService interface {
	// Parse extracts questions from already decoded text without storing them.
	Parse(ctx context.Context, text string, class domain.DocumentClass) (*domain.ParseResult, error)

	// Import extracts, parses and stores one uploaded document.
	// A document that yields no questions is still stored, with its
	// diagnostics, so the author can see what went wrong.
	Import(ctx context.Context, raw *domain.RawDocument, class domain.DocumentClass) (*domain.Quiz, error)

	// ImportBatch imports documents concurrently. One failing document does
	// not stop the others; results are in input order.
	ImportBatch(ctx context.Context, raws []*domain.RawDocument, class domain.DocumentClass) []ImportResult

	// Get retrieves a stored quiz by ID.
	Get(ctx context.Context, id string) (*domain.Quiz, error)

	// List returns all stored quizzes, newest first.
	List(ctx context.Context) ([]domain.Quiz, error)

	// Delete removes a stored quiz.
	Delete(ctx context.Context, id string) error
}

// ImportResult is the outcome of importing one document of a batch.
type ImportResult struct {
	// URI identifies the input document.
	URI string

	// Quiz is set on success.
	Quiz *domain.Quiz

	// Err is set on failure.
	Err error
}
