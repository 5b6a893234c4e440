package quizparser

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

const vocabularyDoc = "Q1. Where does she live?\na) Lyon\nb) Paris\nCorrect Answer: B\n\n" +
	"Q2. What is her job?\na) Teacher\nb) Doctor\nAnswer: A"

const readingDoc = "Reading Passage:\nMarie lives in Paris. She works as a nurse.\n\n" +
	"MCQ Questions:\n" +
	"1. Where does Marie live?\nA) Lyon\nB) Paris\nC) Nice\nD) Lille\nAnswer: B\n\n" +
	"2. What is her job?\nA) Teacher\nB) Nurse\nC) Doctor\nD) Pilot\nCorrect Answer: B"

func hasDiagnostic(diags []domain.Diagnostic, code domain.DiagnosticCode) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func parse(t *testing.T, text string, class domain.DocumentClass) *domain.ParseResult {
	t.Helper()
	res, err := Default().Parse(context.Background(), text, class)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestParse_Vocabulary(t *testing.T) {
	res := parse(t, vocabularyDoc, domain.ClassVocabulary)

	require.Len(t, res.Questions, 2)
	assert.Empty(t, res.Diagnostics)
	assert.Nil(t, res.Reading)

	assert.Equal(t, 1, res.Questions[0].Ordinal)
	assert.Equal(t, "Where does she live?", res.Questions[0].QuestionText)
	assert.Equal(t, opts("a", "Lyon", "b", "Paris"), res.Questions[0].Options)
	assert.Equal(t, domain.Letter("b"), res.Questions[0].CorrectAnswer)

	assert.Equal(t, 2, res.Questions[1].Ordinal)
	assert.Equal(t, domain.Letter("a"), res.Questions[1].CorrectAnswer)

	require.Len(t, res.Vocabulary, 2)
	assert.Equal(t, "Q1", res.Vocabulary[0].QuestionNumber)
	assert.Equal(t, "Q2", res.Vocabulary[1].QuestionNumber)
}

func TestParse_Reading(t *testing.T) {
	res := parse(t, readingDoc, domain.ClassReading)

	require.NotNil(t, res.Reading)
	assert.Nil(t, res.Vocabulary)
	assert.Equal(t, "Marie lives in Paris. She works as a nurse.", res.Reading.Passage)
	require.Len(t, res.Reading.Questions, 2)

	assert.Equal(t, domain.ReadingQuestion{
		Question:      "Where does Marie live?",
		OptionA:       "Lyon",
		OptionB:       "Paris",
		OptionC:       "Nice",
		OptionD:       "Lille",
		CorrectAnswer: "B",
	}, res.Reading.Questions[0])
	assert.Equal(t, "Nurse", res.Reading.Questions[1].OptionB)
	assert.Equal(t, "B", res.Reading.Questions[1].CorrectAnswer)
}

func TestParse_Idempotent(t *testing.T) {
	for _, class := range []domain.DocumentClass{domain.ClassVocabulary, domain.ClassReading} {
		t.Run(class.String(), func(t *testing.T) {
			first := parse(t, readingDoc, class)
			second := parse(t, readingDoc, class)
			assert.Equal(t, first, second)
		})
	}
}

func TestParse_NumberingStyles(t *testing.T) {
	body := " Where does she live?\na) Lyon\nb) Paris\nCorrect Answer: B"
	for _, marker := range []string{"Q1.", "1.", "Question 1:", "MCQ 1)", "1)"} {
		t.Run(marker, func(t *testing.T) {
			res := parse(t, marker+body, domain.ClassVocabulary)

			require.Len(t, res.Questions, 1)
			assert.Equal(t, 1, res.Questions[0].Ordinal)
			assert.Equal(t, "Where does she live?", res.Questions[0].QuestionText)
			assert.Equal(t, opts("a", "Lyon", "b", "Paris"), res.Questions[0].Options)
			assert.Equal(t, domain.Letter("b"), res.Questions[0].CorrectAnswer)
		})
	}
}

func TestParse_AnswerWordsInQuestion(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		question string
		options  []domain.Option
		answer   domain.Letter
	}{
		{
			name:     "answer is followed by an article",
			doc:      "Q1. Which answer is a synonym of happy?\na) glad\nb) sad\nAnswer: a",
			question: "Which answer is a synonym of happy?",
			options:  opts("a", "glad", "b", "sad"),
			answer:   "a",
		},
		{
			name:     "correct is followed by inline options",
			doc:      "Q1. Which sentence is correct: a) He go home b) He goes home\nAnswer: B",
			question: "Which sentence is correct:",
			options:  opts("a", "He go home", "b", "He goes home"),
			answer:   "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parse(t, tt.doc, domain.ClassVocabulary)

			require.Len(t, res.Questions, 1)
			assert.Equal(t, tt.question, res.Questions[0].QuestionText)
			assert.Equal(t, tt.options, res.Questions[0].Options)
			assert.Equal(t, tt.answer, res.Questions[0].CorrectAnswer)
		})
	}
}

func TestParse_DottedLetterInOption(t *testing.T) {
	res := parse(t, "Text.\n1. Pick one\nA) Vitamin C. B) Iron\nAnswer: A", domain.ClassReading)

	require.NotNil(t, res.Reading)
	require.Len(t, res.Reading.Questions, 1)
	q := res.Reading.Questions[0]
	assert.Equal(t, "Vitamin C.", q.OptionA)
	assert.Equal(t, "Iron", q.OptionB)
	assert.Empty(t, q.OptionC)
	assert.Equal(t, "A", q.CorrectAnswer)
}

func TestParse_Concurrent(t *testing.T) {
	docs := []struct {
		text  string
		class domain.DocumentClass
	}{
		{vocabularyDoc, domain.ClassVocabulary},
		{readingDoc, domain.ClassReading},
	}
	want := make([]*domain.ParseResult, len(docs))
	for i, d := range docs {
		want[i] = parse(t, d.text, d.class)
	}

	const workers = 16
	got := make([]*domain.ParseResult, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := docs[i%len(docs)]
			got[i], errs[i] = Default().Parse(context.Background(), d.text, d.class)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, want[i%len(docs)], got[i])
	}
}

func TestParse_OrdinalsIncrease(t *testing.T) {
	res := parse(t, "Q3. Third?\na) Cc\nb) Dd\nQ1. First?\na) Aa\nb) Bb", domain.ClassVocabulary)

	require.Len(t, res.Questions, 2)
	assert.Equal(t, 1, res.Questions[0].Ordinal)
	assert.Equal(t, 3, res.Questions[1].Ordinal)
}

func TestParse_UnnumberedFallback(t *testing.T) {
	doc := "What is X?\na) Apple\nb) Banana\nAnswer: a\n\nWhat is Y?\na) Cherry\nb) Date\nAnswer: b"
	res := parse(t, doc, domain.ClassVocabulary)

	require.Len(t, res.Questions, 2)
	assert.Equal(t, "What is X?", res.Questions[0].QuestionText)
	assert.Equal(t, domain.Letter("a"), res.Questions[0].CorrectAnswer)
	assert.Equal(t, "What is Y?", res.Questions[1].QuestionText)
	assert.Equal(t, domain.Letter("b"), res.Questions[1].CorrectAnswer)
	assert.Equal(t, []int{1, 2}, []int{res.Questions[0].Ordinal, res.Questions[1].Ordinal})
}

func TestParse_DroppedBlock(t *testing.T) {
	doc := "Q1. What?\na) Alpha\nb) Beta\nQ2.\nCorrect Answer: A\nQ3. Why?\na) Gamma\nb) Delta"
	res := parse(t, doc, domain.ClassVocabulary)

	require.Len(t, res.Questions, 2)
	assert.Equal(t, 1, res.Questions[0].Ordinal)
	assert.Equal(t, 3, res.Questions[1].Ordinal)
	assert.True(t, hasDiagnostic(res.Diagnostics, domain.DiagBlockDropped))
}

func TestParse_DuplicateOrdinal(t *testing.T) {
	res := parse(t, "Q1. First?\na) Aa\nb) Bb\nQ1. Again?\na) Cc\nb) Dd", domain.ClassVocabulary)

	require.Len(t, res.Questions, 1)
	assert.Equal(t, "Again?", res.Questions[0].QuestionText)
	assert.True(t, hasDiagnostic(res.Diagnostics, domain.DiagDuplicateOrdinal))
}

func TestParse_CRLF(t *testing.T) {
	lf := parse(t, vocabularyDoc, domain.ClassVocabulary)
	crlf := parse(t, strings.ReplaceAll(vocabularyDoc, "\n", "\r\n"), domain.ClassVocabulary)

	assert.Equal(t, lf, crlf)
}

func TestParse_Empty(t *testing.T) {
	t.Run("vocabulary", func(t *testing.T) {
		res := parse(t, "", domain.ClassVocabulary)

		assert.True(t, res.IsEmpty())
		assert.Empty(t, res.Vocabulary)
		assert.True(t, hasDiagnostic(res.Diagnostics, domain.DiagNoQuestions))
	})

	t.Run("reading", func(t *testing.T) {
		res := parse(t, "   ", domain.ClassReading)

		require.NotNil(t, res.Reading)
		assert.Empty(t, res.Reading.Passage)
		assert.NotNil(t, res.Reading.Questions)
		assert.Empty(t, res.Reading.Questions)
	})
}

func TestParse_ReadingMidpoint(t *testing.T) {
	res := parse(t, "Plain prose without any markers here", domain.ClassReading)

	assert.True(t, hasDiagnostic(res.Diagnostics, domain.DiagBoundaryMidpoint))
	assert.Equal(t, "Plain prose withou", res.Reading.Passage)
}

func TestParse_InvalidClass(t *testing.T) {
	res, err := Default().Parse(context.Background(), vocabularyDoc, "grammar")

	require.ErrorIs(t, err, domain.ErrInvalidDocumentClass)
	assert.Nil(t, res)
}

func TestParse_Truncated(t *testing.T) {
	res, err := New(Config{MaxInputBytes: 12}).Parse(context.Background(), vocabularyDoc, domain.ClassVocabulary)

	require.NoError(t, err)
	assert.True(t, hasDiagnostic(res.Diagnostics, domain.DiagInputTruncated))
	require.Len(t, res.Questions, 1)
	assert.Equal(t, "Where do", res.Questions[0].QuestionText)
}

func TestParse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Default().Parse(ctx, vocabularyDoc, domain.ClassVocabulary)

	require.NoError(t, err)
	assert.Empty(t, res.Questions)
	assert.True(t, hasDiagnostic(res.Diagnostics, domain.DiagParseInterrupted))
}

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "ab", truncateUTF8("abc", 2))
	assert.Equal(t, "a", truncateUTF8("aé", 2))
	assert.Equal(t, "abc", truncateUTF8("abc", 10))
}

func TestParseVocabulary_JSON(t *testing.T) {
	out := ParseVocabulary("Q1. Where?\na) Lyon\nb) Paris")

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"questionNumber": "Q1",
		"question": "Where?",
		"options": [{"key": "a", "text": "Lyon"}, {"key": "b", "text": "Paris"}],
		"correctAnswer": null
	}]`, string(data))
}

func TestParseReading_JSON(t *testing.T) {
	out := ParseReading("Text.\n1. Where?\nA) Lyon\nB) Paris\nAnswer: A")

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"passage": "Text.",
		"questions": [{
			"question": "Where?",
			"optionA": "Lyon",
			"optionB": "Paris",
			"optionC": "",
			"optionD": "",
			"correct_answer": "A"
		}]
	}`, string(data))
}
