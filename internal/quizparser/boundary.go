package quizparser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Boundary strategy names, in the order they are tried.
const (
	BoundaryNumberedMarker = "numbered_marker"
	BoundaryOptionLine     = "option_line"
	BoundarySectionHeader  = "section_header"
	BoundaryMidpoint       = "midpoint"
	BoundaryEmpty          = "empty"
)

// Boundary is the split between a reading passage and its questions.
type Boundary struct {
	Passage         string
	QuestionsRegion string

	// Offset is the byte offset of the split in the input text.
	Offset int

	// Strategy names the heuristic that located the split.
	Strategy string
}

var (
	boundaryOptionLine = regexp.MustCompile(`(?m)^[ \t]*\(?[a-dA-D][.)]`)
	sectionHeader      = regexp.MustCompile(`(?i)\b(?:reading\s+passage|passage|text|paragraph)\s*:`)
	questionKeyword    = regexp.MustCompile(`\b(?:MCQ|Question|Q)\b`)
	regionPrefix       = regexp.MustCompile(`(?i)^\s*(?:MCQ\s*)?(?:Questions|MCQs?)\s*:\s*`)
	passageSuffix      = regexp.MustCompile(`(?i)\s*(?:MCQ\s*)?(?:Questions|MCQs?)\s*:\s*$`)
	passageLabel       = regexp.MustCompile(`(?i)^\s*(?:reading\s+passage|passage|text|paragraph)\s*:\s*`)
)

// ResolveBoundary splits reading-class text into passage and questions.
//
// Heuristics, first success wins:
//
//  1. the first numbered question marker
//  2. the first line that begins with an option marker
//  3. a passage header ("Reading Passage:", "Passage:", "Text:",
//     "Paragraph:") followed later by "MCQ", "Question" or "Q"
//  4. the midpoint of the text, by character count
//
// A "Questions:" or "MCQ Questions:" heading is removed from the start of
// the region, and from the end of the passage when the split fell after it.
// A midpoint split is returned verbatim.
func ResolveBoundary(text string) Boundary {
	if strings.TrimSpace(text) == "" {
		return Boundary{Strategy: BoundaryEmpty}
	}

	offset, name, _ := firstMatch(text, []strategy[int]{
		{name: BoundaryNumberedMarker, run: firstNumberedMarker},
		{name: BoundaryOptionLine, run: firstOptionLine},
		{name: BoundarySectionHeader, run: headerThenKeyword},
		{name: BoundaryMidpoint, run: midpoint},
	})

	passage := text[:offset]
	if name != BoundaryMidpoint {
		passage = passageSuffix.ReplaceAllString(passage, "")
		passage = passageLabel.ReplaceAllString(passage, "")
		passage = strings.TrimSpace(passage)
	}

	return Boundary{
		Passage:         passage,
		QuestionsRegion: regionPrefix.ReplaceAllString(text[offset:], ""),
		Offset:          offset,
		Strategy:        name,
	}
}

func firstNumberedMarker(text string) (int, bool) {
	markers := findNumberedMarkers(text)
	if len(markers) == 0 {
		return 0, false
	}
	return markers[0].start, true
}

func firstOptionLine(text string) (int, bool) {
	loc := boundaryOptionLine.FindStringIndex(text)
	if loc == nil {
		return 0, false
	}
	return loc[0], true
}

func headerThenKeyword(text string) (int, bool) {
	h := sectionHeader.FindStringIndex(text)
	if h == nil {
		return 0, false
	}
	k := questionKeyword.FindStringIndex(text[h[1]:])
	if k == nil {
		return 0, false
	}
	return h[1] + k[0], true
}

// midpoint returns the byte offset of the middle character, rounding down.
func midpoint(text string) (int, bool) {
	half := utf8.RuneCountInString(text) / 2
	offset := 0
	for i := 0; i < half; i++ {
		_, size := utf8.DecodeRuneInString(text[offset:])
		offset += size
	}
	return offset, true
}
