package watch

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driving"
)

// mockQuizService records imports.
type mockQuizService struct {
	mu       sync.Mutex
	imported []*domain.RawDocument
	err      error
}

func (m *mockQuizService) Parse(_ context.Context, _ string, class domain.DocumentClass) (*domain.ParseResult, error) {
	return &domain.ParseResult{Class: class}, nil
}

func (m *mockQuizService) Import(_ context.Context, raw *domain.RawDocument, class domain.DocumentClass) (*domain.Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.imported = append(m.imported, raw)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Quiz{ID: "quiz-" + filepath.Base(raw.URI), Title: raw.FileName, Class: class}, nil
}

func (m *mockQuizService) ImportBatch(_ context.Context, _ []*domain.RawDocument, _ domain.DocumentClass) []driving.ImportResult {
	return nil
}

func (m *mockQuizService) Get(_ context.Context, _ string) (*domain.Quiz, error) {
	return nil, domain.ErrNotFound
}

func (m *mockQuizService) List(_ context.Context) ([]domain.Quiz, error) {
	return nil, nil
}

func (m *mockQuizService) Delete(_ context.Context, _ string) error {
	return nil
}

func (m *mockQuizService) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.imported)
}

func (m *mockQuizService) last() *domain.RawDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.imported) == 0 {
		return nil
	}
	return m.imported[len(m.imported)-1]
}
