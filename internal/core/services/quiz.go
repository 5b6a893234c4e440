package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driven"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driving"
	"github.com/custodia-labs/lessonquiz/internal/logger"
)

// Ensure QuizService implements the interface.
var _ driving.QuizService = (*QuizService)(nil)

// QuizService extracts, parses and stores lesson documents.
type QuizService struct {
	registry    driven.NormaliserRegistry
	parser      driven.QuizParser
	store       driven.QuizStore
	concurrency int
	now         func() time.Time
}

// NewQuizService creates a new quiz service.
// Concurrency bounds ImportBatch; values below one use the default.
func NewQuizService(
	registry driven.NormaliserRegistry,
	parser driven.QuizParser,
	store driven.QuizStore,
	concurrency int,
) *QuizService {
	if concurrency < 1 {
		concurrency = domain.DefaultImportConcurrency
	}
	return &QuizService{
		registry:    registry,
		parser:      parser,
		store:       store,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Parse extracts questions from text without storing them.
func (s *QuizService) Parse(ctx context.Context, text string, class domain.DocumentClass) (*domain.ParseResult, error) {
	return s.parser.Parse(ctx, text, class)
}

// Import extracts, parses and stores one document.
func (s *QuizService) Import(
	ctx context.Context,
	raw *domain.RawDocument,
	class domain.DocumentClass,
) (*domain.Quiz, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}
	if !class.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDocumentClass, class)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("Import " + raw.URI)

	normalised, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", raw.URI, err)
	}
	doc := normalised.Document
	logger.Debug("extracted %d bytes from %s", len(doc.Content), raw.URI)

	result, err := s.parser.Parse(ctx, doc.Content, class)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", raw.URI, err)
	}

	quiz := &domain.Quiz{
		ID:          uuid.New().String(),
		Title:       doc.Title,
		SourceURI:   raw.URI,
		Class:       class,
		Questions:   result.Questions,
		Diagnostics: result.Diagnostics,
		CreatedAt:   s.now().UTC(),
	}
	if result.Reading != nil {
		quiz.Passage = result.Reading.Passage
	}

	if err := s.store.Save(ctx, quiz); err != nil {
		return nil, fmt.Errorf("save quiz: %w", err)
	}

	logger.Info("Imported %s as %s: %d question(s)", raw.URI, quiz.ID, len(quiz.Questions))
	return quiz, nil
}

// ImportBatch imports documents with at most concurrency in flight.
func (s *QuizService) ImportBatch(
	ctx context.Context,
	raws []*domain.RawDocument,
	class domain.DocumentClass,
) []driving.ImportResult {
	results := make([]driving.ImportResult, len(raws))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, raw := range raws {
		g.Go(func() error {
			quiz, err := s.Import(ctx, raw, class)
			results[i] = driving.ImportResult{URI: uriOf(raw), Quiz: quiz, Err: err}
			if err != nil {
				logger.Warn("import %s failed: %v", uriOf(raw), err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Get retrieves a stored quiz by ID.
func (s *QuizService) Get(ctx context.Context, id string) (*domain.Quiz, error) {
	return s.store.Get(ctx, id)
}

// List returns all stored quizzes, newest first.
func (s *QuizService) List(ctx context.Context) ([]domain.Quiz, error) {
	return s.store.List(ctx)
}

// Delete removes a stored quiz.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func uriOf(raw *domain.RawDocument) string {
	if raw == nil {
		return ""
	}
	return raw.URI
}
