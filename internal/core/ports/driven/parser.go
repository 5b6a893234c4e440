package driven

import (
	"context"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

// QuizParser turns decoded document text into class-shaped questions.
type QuizParser interface {
	// Parse never fails on an oddly formatted document; it returns an empty
	// result with diagnostics instead. The only error is
	// domain.ErrInvalidDocumentClass.
	Parse(ctx context.Context, text string, class domain.DocumentClass) (*domain.ParseResult, error)
}
