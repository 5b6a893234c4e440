package quizparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBoundary(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		passage  string
		region   string
		strategy string
	}{
		{
			name:     "numbered marker",
			text:     "Some prose.\n\nQ1. What?\na) A\nb) B",
			passage:  "Some prose.",
			region:   "Q1. What?\na) A\nb) B",
			strategy: BoundaryNumberedMarker,
		},
		{
			name:     "headings stripped",
			text:     "Reading Passage:\nMarie lives in Paris.\n\nMCQ Questions:\n1. Where?\nA) Lyon\nB) Paris",
			passage:  "Marie lives in Paris.",
			region:   "1. Where?\nA) Lyon\nB) Paris",
			strategy: BoundaryNumberedMarker,
		},
		{
			name:     "option line",
			text:     "The sun is hot.\nWhat is hot?\nA) The sun\nB) The moon",
			passage:  "The sun is hot.\nWhat is hot?",
			region:   "A) The sun\nB) The moon",
			strategy: BoundaryOptionLine,
		},
		{
			name:     "section header then keyword",
			text:     "Passage: Cats sleep a lot. Question about cats follows\nWhy do cats sleep",
			passage:  "Cats sleep a lot.",
			region:   "Question about cats follows\nWhy do cats sleep",
			strategy: BoundarySectionHeader,
		},
		{
			name:     "region heading stripped",
			text:     "Text: Some story here.\nMCQ Questions:\nWhy is it so",
			passage:  "Some story here.",
			region:   "Why is it so",
			strategy: BoundarySectionHeader,
		},
		{
			name:     "midpoint",
			text:     "abcdefghij",
			passage:  "abcde",
			region:   "fghij",
			strategy: BoundaryMidpoint,
		},
		{
			name:     "midpoint counts characters",
			text:     "ééééé",
			passage:  "éé",
			region:   "ééé",
			strategy: BoundaryMidpoint,
		},
		{
			name:     "midpoint is verbatim",
			text:     "  hello  world ",
			passage:  "  hello",
			region:   "  world ",
			strategy: BoundaryMidpoint,
		},
		{
			name:     "empty",
			text:     " \n\t",
			strategy: BoundaryEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ResolveBoundary(tt.text)

			assert.Equal(t, tt.passage, b.Passage)
			assert.Equal(t, tt.region, b.QuestionsRegion)
			assert.Equal(t, tt.strategy, b.Strategy)
		})
	}
}

func TestResolveBoundary_Offset(t *testing.T) {
	text := "Some prose.\n\nQ1. What?"
	b := ResolveBoundary(text)

	assert.Equal(t, "Q1. What?", text[b.Offset:])
}
