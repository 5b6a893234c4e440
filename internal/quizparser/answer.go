package quizparser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

// AnswerResult is the output of ExtractAnswer.
type AnswerResult struct {
	// Answer is empty when no answer phrasing was found.
	Answer domain.Letter

	// Residual is the block with every answer phrasing removed.
	Residual string
}

// answerPattern is one answer-key phrasing. Group 1 is the letter.
type answerPattern struct {
	name string
	re   *regexp.Regexp
}

// letterEnd closes a phrasing after its letter. The letter must end its
// line or be followed by a separator, so prose like "answer is a synonym"
// and inline option markers like "correct: a) He go" are not answers.
const letterEnd = `[.)]?[ \t]*(?:$|[-=:,;(\[\x{2013}\x{2014}])`

// answerPhrasings are tried in priority order. %[1]s is the letter range.
var answerPhrasings = []struct {
	name   string
	format string
}{
	{"correct_answer", `(?im)\bcorrect[ \t]+answer[ \t]*(?:is[ \t]*:?|[:=\-])[ \t]*\(?([%[1]s])\)?` + letterEnd},
	{"answer", `(?im)\banswer[ \t]*[:=\-][ \t]*\(?([%[1]s])\)?` + letterEnd},
	{"answer_is", `(?im)\banswer[ \t]+is[ \t]*:?[ \t]*\(?([%[1]s])\)?` + letterEnd},
	{"ans", `(?im)\bans\.?[ \t]*:[ \t]*\(?([%[1]s])\)?` + letterEnd},
	{"is_correct", `(?i)\(([%[1]s])\)[ \t]*is[ \t]+correct\b`},
	{"correct", `(?im)\bcorrect[ \t]*:[ \t]*\(?([%[1]s])\)?` + letterEnd},
}

// compileAnswerPatterns builds the phrasings for a letter range. The strip
// patterns extend each phrasing to the end of its line.
func compileAnswerPatterns(letterRange string) ([]answerPattern, []*regexp.Regexp) {
	patterns := make([]answerPattern, 0, len(answerPhrasings))
	strip := make([]*regexp.Regexp, 0, len(answerPhrasings))
	for _, p := range answerPhrasings {
		expr := fmt.Sprintf(p.format, letterRange)
		patterns = append(patterns, answerPattern{name: p.name, re: regexp.MustCompile(expr)})
		strip = append(strip, regexp.MustCompile(expr+`[^\n]*`))
	}
	return patterns, strip
}

// ExtractAnswer recovers the correct-answer letter of a question block.
//
// The first phrasing that matches wins and its letter is stored in the
// class case. Every phrasing is stripped from the residual regardless of
// which one matched, so a block with two answer lines leaves neither
// behind.
func ExtractAnswer(block string, letters *LetterSet) AnswerResult {
	strategies := make([]strategy[domain.Letter], 0, len(letters.answers))
	for _, p := range letters.answers {
		strategies = append(strategies, strategy[domain.Letter]{
			name: p.name,
			run: func(s string) (domain.Letter, bool) {
				m := p.re.FindStringSubmatch(s)
				if m == nil {
					return "", false
				}
				return letters.Canonical(m[1]), true
			},
		})
	}

	answer, _, _ := firstMatch(block, strategies)
	return AnswerResult{
		Answer:   answer,
		Residual: stripAnswers(block, letters),
	}
}

// stripAnswers removes every answer phrasing, from its start to the end of
// its line. Lines left blank are dropped.
func stripAnswers(block string, letters *LetterSet) string {
	out := block
	stripped := false
	for _, re := range letters.answerStrip {
		if re.MatchString(out) {
			out = re.ReplaceAllString(out, "")
			stripped = true
		}
	}
	if !stripped {
		return block
	}

	lines := strings.Split(out, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	return strings.Join(kept, "\n")
}

// isAnswerLine reports whether line carries an answer phrasing.
func (ls *LetterSet) isAnswerLine(line string) bool {
	for _, p := range ls.answers {
		if p.re.MatchString(line) {
			return true
		}
	}
	return false
}
