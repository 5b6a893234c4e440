package quizparser

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

// Adapter shapes parser output for one document class.
type Adapter interface {
	// Class returns the document class this adapter serves.
	Class() domain.DocumentClass

	// Letters returns the class's option alphabet.
	Letters() *LetterSet

	// HasPassage reports whether documents lead with a reading passage.
	HasPassage() bool

	// Shape fills the class-specific fields of result.
	Shape(passage string, questions []domain.ParsedQuestion, result *domain.ParseResult)
}

// adapters is fixed at compile time and never written, so Lookup is safe
// for concurrent use.
var adapters = map[domain.DocumentClass]Adapter{
	domain.ClassVocabulary: VocabularyAdapter{},
	domain.ClassReading:    ReadingAdapter{},
}

// Lookup returns the adapter for a document class.
func Lookup(class domain.DocumentClass) (Adapter, bool) {
	a, ok := adapters[class]
	return a, ok
}

// VocabularyAdapter emits flat Q/options/answer records.
type VocabularyAdapter struct{}

// Class returns domain.ClassVocabulary.
func (VocabularyAdapter) Class() domain.DocumentClass { return domain.ClassVocabulary }

// Letters returns a-e.
func (VocabularyAdapter) Letters() *LetterSet { return VocabularyLetters }

// HasPassage returns false.
func (VocabularyAdapter) HasPassage() bool { return false }

// Shape sets result.Vocabulary.
func (VocabularyAdapter) Shape(_ string, questions []domain.ParsedQuestion, result *domain.ParseResult) {
	result.Vocabulary = ToVocabulary(questions)
}

// ToVocabulary converts parsed questions to vocabulary records.
func ToVocabulary(questions []domain.ParsedQuestion) []domain.VocabularyQuestion {
	out := make([]domain.VocabularyQuestion, 0, len(questions))
	for _, q := range questions {
		vq := domain.VocabularyQuestion{
			QuestionNumber: fmt.Sprintf("Q%d", q.Ordinal),
			Question:       q.QuestionText,
			Options:        append([]domain.Option{}, q.Options...),
		}
		if q.HasAnswer() {
			answer := q.CorrectAnswer
			vq.CorrectAnswer = &answer
		}
		out = append(out, vq)
	}
	return out
}

// ReadingAdapter emits optionA..optionD records and the passage.
type ReadingAdapter struct{}

// Class returns domain.ClassReading.
func (ReadingAdapter) Class() domain.DocumentClass { return domain.ClassReading }

// Letters returns A-D.
func (ReadingAdapter) Letters() *LetterSet { return ReadingLetters }

// HasPassage returns true.
func (ReadingAdapter) HasPassage() bool { return true }

// Shape sets result.Reading.
func (ReadingAdapter) Shape(passage string, questions []domain.ParsedQuestion, result *domain.ParseResult) {
	result.Reading = &domain.ReadingMaterial{
		Passage:   passage,
		Questions: ToReading(questions),
	}
}

// ToReading maps each question's options into four fixed slots. Keys past
// "d" have no slot and are ignored.
func ToReading(questions []domain.ParsedQuestion) []domain.ReadingQuestion {
	out := make([]domain.ReadingQuestion, 0, len(questions))
	for _, q := range questions {
		rq := domain.ReadingQuestion{
			Question:      q.QuestionText,
			CorrectAnswer: strings.ToUpper(string(q.CorrectAnswer)),
		}
		for _, o := range q.Options {
			switch strings.ToUpper(string(o.Key)) {
			case "A":
				rq.OptionA = o.Text
			case "B":
				rq.OptionB = o.Text
			case "C":
				rq.OptionC = o.Text
			case "D":
				rq.OptionD = o.Text
			}
		}
		out = append(out, rq)
	}
	return out
}

// Export shapes a stored quiz the way Parse shapes a fresh result.
func Export(quiz *domain.Quiz) (*domain.ParseResult, error) {
	a, ok := Lookup(quiz.Class)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDocumentClass, quiz.Class)
	}
	result := &domain.ParseResult{
		Class:       quiz.Class,
		Questions:   quiz.Questions,
		Diagnostics: quiz.Diagnostics,
	}
	a.Shape(quiz.Passage, quiz.Questions, result)
	return result, nil
}
