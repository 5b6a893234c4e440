package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/lessonquiz/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driven"
)

// mockNormaliser returns its content unchanged and records how it is used.
type mockNormaliser struct {
	name       string
	mimeTypes  []string
	extensions []string
	priority   int
	err        error
	delay      time.Duration

	mu       sync.Mutex
	calls    int
	inFlight int
	maxSeen  int
}

func (m *mockNormaliser) SupportedMIMETypes() []string  { return m.mimeTypes }
func (m *mockNormaliser) SupportedExtensions() []string { return m.extensions }
func (m *mockNormaliser) Priority() int                 { return m.priority }

func (m *mockNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	m.mu.Lock()
	m.calls++
	m.inFlight++
	if m.inFlight > m.maxSeen {
		m.maxSeen = m.inFlight
	}
	m.mu.Unlock()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	m.mu.Lock()
	m.inFlight--
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return &driven.NormaliseResult{
		Document: domain.Document{URI: raw.URI, Title: m.name, Content: string(raw.Content)},
	}, nil
}

func (m *mockNormaliser) peak() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxSeen
}

// failingQuizStore fails every Save.
type failingQuizStore struct {
	*memory.QuizStore
	saveErr error
}

func (s *failingQuizStore) Save(_ context.Context, _ *domain.Quiz) error {
	return s.saveErr
}

// failingConfigStore fails Save.
type failingConfigStore struct {
	*memory.ConfigStore
	saveErr error
}

func (s *failingConfigStore) Save() error {
	return s.saveErr
}
