package domain

import (
	"fmt"
	"strings"
	"time"
)

// DocumentClass identifies the shape of a question document.
// It determines the option alphabet and the output field naming.
type DocumentClass string

// Supported document classes.
const (
	// ClassVocabulary is a flat quiz with options a-e and lowercase answers.
	ClassVocabulary DocumentClass = "vocabulary"

	// ClassReading is a reading-comprehension quiz with a leading passage,
	// options A-D and uppercase answers.
	ClassReading DocumentClass = "reading"
)

// IsValid returns true if the document class is recognised.
func (c DocumentClass) IsValid() bool {
	switch c {
	case ClassVocabulary, ClassReading:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c DocumentClass) String() string {
	return string(c)
}

// ParseDocumentClass converts user input into a DocumentClass.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseDocumentClass(s string) (DocumentClass, error) {
	c := DocumentClass(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDocumentClass, s)
	}
	return c, nil
}

// Letter is a single option key, such as "a" or "B".
type Letter string

// Option is one labelled answer choice of a question.
type Option struct {
	Key  Letter `json:"key"`
	Text string `json:"text"`
}

// ParsedQuestion is one question recovered from a document.
// Ordinal is stable and increases in output order.
type ParsedQuestion struct {
	Ordinal      int
	QuestionText string
	Options      []Option

	// CorrectAnswer is empty when no answer key was found.
	CorrectAnswer Letter
}

// HasAnswer reports whether an answer key was recovered.
func (q ParsedQuestion) HasAnswer() bool {
	return q.CorrectAnswer != ""
}

// Option returns the option with the given key.
func (q ParsedQuestion) Option(key Letter) (Option, bool) {
	for _, o := range q.Options {
		if strings.EqualFold(string(o.Key), string(key)) {
			return o, true
		}
	}
	return Option{}, false
}

// VocabularyQuestion is the output record of the vocabulary class.
type VocabularyQuestion struct {
	QuestionNumber string   `json:"questionNumber"`
	Question       string   `json:"question"`
	Options        []Option `json:"options"`
	CorrectAnswer  *Letter  `json:"correctAnswer"`
}

// ReadingQuestion is the output record of the reading class.
// Options are mapped into four fixed slots.
type ReadingQuestion struct {
	Question      string `json:"question"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correct_answer"`
}

// ReadingMaterial is the output of the reading class.
// Passage is empty, never absent, when no boundary could be found.
type ReadingMaterial struct {
	Passage   string            `json:"passage"`
	Questions []ReadingQuestion `json:"questions"`
}

// ParseResult is the class-shaped output of one parse call.
// Exactly one of Vocabulary or Reading is set, matching Class.
type ParseResult struct {
	Class       DocumentClass        `json:"class"`
	Vocabulary  []VocabularyQuestion `json:"vocabulary,omitempty"`
	Reading     *ReadingMaterial     `json:"reading,omitempty"`
	Questions   []ParsedQuestion     `json:"-"`
	Diagnostics []Diagnostic         `json:"diagnostics,omitempty"`
}

// QuestionCount returns the number of questions recovered.
func (r *ParseResult) QuestionCount() int {
	if r == nil {
		return 0
	}
	return len(r.Questions)
}

// IsEmpty reports whether no questions were found. Callers should present
// this as a formatting problem to the author, not as a system fault.
func (r *ParseResult) IsEmpty() bool {
	return r.QuestionCount() == 0
}

// Quiz is a persisted import: the parse output of one lesson document.
type Quiz struct {
	ID          string
	Title       string
	SourceURI   string
	Class       DocumentClass
	Passage     string
	Questions   []ParsedQuestion
	Diagnostics []Diagnostic
	CreatedAt   time.Time
}

// Clone returns a deep copy of the quiz.
func (q *Quiz) Clone() *Quiz {
	if q == nil {
		return nil
	}
	c := *q
	c.Questions = make([]ParsedQuestion, len(q.Questions))
	for i, pq := range q.Questions {
		pq.Options = append([]Option(nil), pq.Options...)
		c.Questions[i] = pq
	}
	c.Diagnostics = append([]Diagnostic(nil), q.Diagnostics...)
	return &c
}

// Body returns the class-shaped payload: the vocabulary records or the
// reading material.
func (r *ParseResult) Body() any {
	if r.Class == ClassReading {
		return r.Reading
	}
	if r.Vocabulary == nil {
		return []VocabularyQuestion{}
	}
	return r.Vocabulary
}
