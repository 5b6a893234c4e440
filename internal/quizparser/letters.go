package quizparser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

// LetterSet is the option alphabet of a document class together with the
// patterns compiled for it. A LetterSet is immutable and safe for
// concurrent use.
type LetterSet struct {
	last  rune
	upper bool

	inlineLower  *regexp.Regexp
	inlineUpper  *regexp.Regexp
	lineAnchored *regexp.Regexp
	optionLine   *regexp.Regexp
	trailing     *regexp.Regexp
	answers      []answerPattern
	answerStrip  []*regexp.Regexp
}

// Option alphabets of the two document classes.
var (
	// VocabularyLetters are a-e, stored lowercase.
	VocabularyLetters = NewLetterSet('e', false)

	// ReadingLetters are a-d, stored uppercase.
	ReadingLetters = NewLetterSet('d', true)
)

// NewLetterSet builds the alphabet a..last. When upper is true recovered
// keys and answers are stored uppercase, otherwise lowercase.
func NewLetterSet(last rune, upper bool) *LetterSet {
	if last < 'a' || last > 'z' {
		panic(fmt.Sprintf("quizparser: invalid last letter %q", last))
	}
	lo := fmt.Sprintf("a-%c", last)
	up := strings.ToUpper(lo)

	ls := &LetterSet{last: last, upper: upper}

	// Group 1 is the marker, group 2 the letter. The marker must start a
	// line or follow whitespace. The blank after a "." delimiter is checked
	// by inlineMarkers so that it stays available to the next marker.
	ls.inlineLower = regexp.MustCompile(fmt.Sprintf(`(?m)(?:^|\s)(\(?([%s])[.)])`, lo))
	ls.inlineUpper = regexp.MustCompile(fmt.Sprintf(`(?m)(?:^|\s)(\(?([%s])[.)])`, up))

	// Group 1 is the letter, group 2 the rest of the line.
	ls.lineAnchored = regexp.MustCompile(fmt.Sprintf(
		`(?mi)^[ \t]*\(?([%s])[.)\]][ \t]*(.*)$`, lo))

	ls.optionLine = regexp.MustCompile(fmt.Sprintf(`(?i)^[ \t]*\(?[%s][.)]`, lo))
	// Only ")" fragments are trailing markers; "Vitamin C." is option text.
	ls.trailing = regexp.MustCompile(fmt.Sprintf(`\s+\(?[%s%s]\)\s*$`, lo, up))

	ls.answers, ls.answerStrip = compileAnswerPatterns(lo)
	return ls
}

// Contains reports whether r, in either case, belongs to the alphabet.
func (ls *LetterSet) Contains(r rune) bool {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return r >= 'a' && r <= ls.last
}

// Canonical returns the letter in the class's storage case.
func (ls *LetterSet) Canonical(s string) domain.Letter {
	if ls.upper {
		return domain.Letter(strings.ToUpper(s))
	}
	return domain.Letter(strings.ToLower(s))
}

// Letters returns the alphabet in order, in storage case.
func (ls *LetterSet) Letters() []domain.Letter {
	out := make([]domain.Letter, 0, ls.last-'a'+1)
	for r := 'a'; r <= ls.last; r++ {
		out = append(out, ls.Canonical(string(r)))
	}
	return out
}

// isOptionLine reports whether line begins with an option marker of any
// letter of the alphabet.
func (ls *LetterSet) isOptionLine(line string) bool {
	return ls.optionLine.MatchString(line)
}

// Question numbering. Group 1 (or 3) is the marker, group 2 (or 4) the
// number. Bare numbers ("1.") must start a line; the keyword forms
// ("Q1.", "Question 1:", "MCQ 1)") may also follow whitespace mid-line
// when capitalised.
var numberingPattern = regexp.MustCompile(
	`(?im)(?:^[ \t]*((?:(?:question|mcq|q)[ \t]*)?(\d+)[ \t]*[.:)])` +
		`|[ \t]((?-i:Question|MCQ|Q)[ \t]*(\d+)[ \t]*[.:)]))`)

// numberingPrefix detects option text that is really a question marker.
var numberingPrefix = regexp.MustCompile(`(?i)^(?:(?:question|mcq|q)\s*)?\d+\s*[.:)]`)

// hasNumberingPrefix reports whether text opens with a question marker.
// "3.5" is a decimal, not a marker.
func hasNumberingPrefix(text string) bool {
	loc := numberingPrefix.FindStringIndex(text)
	if loc == nil {
		return false
	}
	return loc[1] >= len(text) || !isDigit(text[loc[1]])
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// numberedMarker is one numbering match, as byte offsets into the text.
type numberedMarker struct {
	start, end int
	ordinal    int
}

// findNumberedMarkers returns all question numbering markers in text.
func findNumberedMarkers(text string) []numberedMarker {
	matches := numberingPattern.FindAllStringSubmatchIndex(text, -1)
	out := make([]numberedMarker, 0, len(matches))
	for _, m := range matches {
		mStart, mEnd, nStart, nEnd := m[2], m[3], m[4], m[5]
		if mStart < 0 {
			mStart, mEnd, nStart, nEnd = m[6], m[7], m[8], m[9]
		}
		// "1.5" is a decimal, not a marker.
		if mEnd < len(text) && isDigit(text[mEnd]) {
			continue
		}
		n, ok := atoi(text[nStart:nEnd])
		if !ok {
			continue
		}
		out = append(out, numberedMarker{start: mStart, end: mEnd, ordinal: n})
	}
	return out
}

// atoi parses a short run of ASCII digits. Absurdly long numbers are
// rejected rather than overflowing.
func atoi(s string) (int, bool) {
	if s == "" || len(s) > 6 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
