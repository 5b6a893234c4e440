package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentClass_IsValid(t *testing.T) {
	assert.True(t, ClassVocabulary.IsValid())
	assert.True(t, ClassReading.IsValid())
	assert.False(t, DocumentClass("").IsValid())
	assert.False(t, DocumentClass("Reading").IsValid())
	assert.Equal(t, "reading", ClassReading.String())
}

func TestParseDocumentClass(t *testing.T) {
	tests := []struct {
		input   string
		want    DocumentClass
		wantErr bool
	}{
		{"vocabulary", ClassVocabulary, false},
		{"  Reading ", ClassReading, false},
		{"VOCABULARY", ClassVocabulary, false},
		{"grammar", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDocumentClass(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDocumentClass)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsedQuestion_Option(t *testing.T) {
	q := ParsedQuestion{
		Options: []Option{{Key: "a", Text: "Lyon"}, {Key: "b", Text: "Paris"}},
	}

	opt, ok := q.Option("B")
	assert.True(t, ok)
	assert.Equal(t, "Paris", opt.Text)

	_, ok = q.Option("c")
	assert.False(t, ok)
	assert.False(t, q.HasAnswer())

	q.CorrectAnswer = "b"
	assert.True(t, q.HasAnswer())
}

func TestParseResult_Counts(t *testing.T) {
	var nilResult *ParseResult
	assert.Equal(t, 0, nilResult.QuestionCount())
	assert.True(t, nilResult.IsEmpty())

	r := &ParseResult{Questions: []ParsedQuestion{{Ordinal: 1}}}
	assert.Equal(t, 1, r.QuestionCount())
	assert.False(t, r.IsEmpty())
}

func TestQuiz_Clone(t *testing.T) {
	original := &Quiz{
		ID:    "q-1",
		Class: ClassVocabulary,
		Questions: []ParsedQuestion{
			{Ordinal: 1, QuestionText: "Capital?", Options: []Option{{Key: "a", Text: "Paris"}}},
		},
		Diagnostics: []Diagnostic{{Code: DiagNoQuestions}},
		CreatedAt:   time.Now(),
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Questions[0].Options[0].Text = "Lyon"
	clone.Questions[0].QuestionText = "Changed"
	clone.Diagnostics[0].Code = DiagBlockDropped

	assert.Equal(t, "Paris", original.Questions[0].Options[0].Text)
	assert.Equal(t, "Capital?", original.Questions[0].QuestionText)
	assert.Equal(t, DiagNoQuestions, original.Diagnostics[0].Code)

	var nilQuiz *Quiz
	assert.Nil(t, nilQuiz.Clone())
}
