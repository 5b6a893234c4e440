package mcp

import (
	"context"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driving"
)

// mockQuizService is a mock implementation of driving.QuizService.
type mockQuizService struct {
	result  *domain.ParseResult
	quiz    *domain.Quiz
	quizzes []domain.Quiz
	err     error

	parsedText  string
	parsedClass domain.DocumentClass
}

func (m *mockQuizService) Parse(
	_ context.Context,
	text string,
	class domain.DocumentClass,
) (*domain.ParseResult, error) {
	m.parsedText = text
	m.parsedClass = class
	return m.result, m.err
}

func (m *mockQuizService) Import(
	_ context.Context,
	_ *domain.RawDocument,
	_ domain.DocumentClass,
) (*domain.Quiz, error) {
	return m.quiz, m.err
}

func (m *mockQuizService) ImportBatch(
	_ context.Context,
	raws []*domain.RawDocument,
	_ domain.DocumentClass,
) []driving.ImportResult {
	return make([]driving.ImportResult, len(raws))
}

func (m *mockQuizService) Get(_ context.Context, _ string) (*domain.Quiz, error) {
	return m.quiz, m.err
}

func (m *mockQuizService) List(_ context.Context) ([]domain.Quiz, error) {
	return m.quizzes, m.err
}

func (m *mockQuizService) Delete(_ context.Context, _ string) error {
	return m.err
}

func sampleQuiz() *domain.Quiz {
	return &domain.Quiz{
		ID:      "quiz-1",
		Title:   "Marie",
		Class:   domain.ClassReading,
		Passage: "Marie lives in Paris.",
		Questions: []domain.ParsedQuestion{
			{
				Ordinal:       1,
				QuestionText:  "Where does Marie live?",
				Options:       []domain.Option{{Key: "A", Text: "Paris"}, {Key: "B", Text: "Lyon"}},
				CorrectAnswer: "A",
			},
		},
	}
}
