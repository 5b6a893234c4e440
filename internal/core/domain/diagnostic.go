package domain

import "fmt"

// Severity grades a Diagnostic.
type Severity string

// Diagnostic severities.
const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// DiagnosticCode identifies what a Diagnostic reports.
type DiagnosticCode string

// Diagnostic codes emitted by the parser.
const (
	// DiagAnswerNotInOptions: the answer key names a letter no option uses.
	DiagAnswerNotInOptions DiagnosticCode = "answer_not_in_options"

	// DiagDuplicateOrdinal: two blocks share a number; the later one was kept.
	DiagDuplicateOrdinal DiagnosticCode = "duplicate_ordinal"

	// DiagEmptyQuestionText: options were found but no question text.
	DiagEmptyQuestionText DiagnosticCode = "empty_question_text"

	// DiagBlockDropped: a block had neither text nor options.
	DiagBlockDropped DiagnosticCode = "block_dropped"

	// DiagBoundaryMidpoint: no passage boundary marker was found.
	DiagBoundaryMidpoint DiagnosticCode = "boundary_midpoint"

	// DiagNoQuestions: the document yielded zero questions.
	DiagNoQuestions DiagnosticCode = "no_questions"

	// DiagInputTruncated: the input exceeded the configured size bound.
	DiagInputTruncated DiagnosticCode = "input_truncated"

	// DiagParseInterrupted: the context ended before all blocks were assembled.
	DiagParseInterrupted DiagnosticCode = "parse_interrupted"
)

// Diagnostic is a non-fatal observation made while parsing.
// Ordinal is zero when the diagnostic is not tied to one question.
type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Code     DiagnosticCode `json:"code"`
	Ordinal  int            `json:"ordinal,omitempty"`
	Message  string         `json:"message"`
}

// String formats the diagnostic for logs and CLI output.
func (d Diagnostic) String() string {
	if d.Ordinal > 0 {
		return fmt.Sprintf("%s: Q%d: %s", d.Code, d.Ordinal, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}
