package quizparser

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

// Assembly is the output of Assemble.
type Assembly struct {
	Question    domain.ParsedQuestion
	Diagnostics []domain.Diagnostic

	// Dropped is true when the block had neither question text nor options.
	Dropped bool
}

// Assemble turns one block into a question record.
//
// The answer line is removed first, then options are recovered from the
// residual, and the question text is whatever remains once the option
// spans are cut out. A block with at least one option is kept even when
// its text is empty.
func Assemble(block Block, letters *LetterSet) Assembly {
	ans := ExtractAnswer(block.Text, letters)
	ext := extractOptions(ans.Residual, letters)

	text := collapseWhitespace(removeSpans(ans.Residual, ext.spans))
	if text == "" {
		text = firstNonOptionLine(ans.Residual, letters)
	}

	if text == "" && len(ext.options) == 0 {
		return Assembly{
			Dropped: true,
			Diagnostics: []domain.Diagnostic{{
				Severity: domain.SeverityInfo,
				Code:     domain.DiagBlockDropped,
				Ordinal:  block.Ordinal,
				Message:  "no question text or options could be recovered",
			}},
		}
	}

	q := domain.ParsedQuestion{
		Ordinal:       block.Ordinal,
		QuestionText:  text,
		Options:       ext.options,
		CorrectAnswer: ans.Answer,
	}

	var diags []domain.Diagnostic
	if text == "" {
		diags = append(diags, domain.Diagnostic{
			Severity: domain.SeverityWarning,
			Code:     domain.DiagEmptyQuestionText,
			Ordinal:  block.Ordinal,
			Message:  fmt.Sprintf("%d option(s) found but no question text", len(ext.options)),
		})
	}
	if q.HasAnswer() {
		if _, ok := q.Option(q.CorrectAnswer); !ok {
			diags = append(diags, domain.Diagnostic{
				Severity: domain.SeverityWarning,
				Code:     domain.DiagAnswerNotInOptions,
				Ordinal:  block.Ordinal,
				Message:  fmt.Sprintf("answer %q does not match any option", q.CorrectAnswer),
			})
		}
	}

	return Assembly{Question: q, Diagnostics: diags}
}

// firstNonOptionLine returns the first non-blank line that does not begin
// with an option marker.
func firstNonOptionLine(residual string, letters *LetterSet) string {
	for _, line := range strings.Split(residual, "\n") {
		if strings.TrimSpace(line) == "" || letters.isOptionLine(line) {
			continue
		}
		return collapseWhitespace(line)
	}
	return ""
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
