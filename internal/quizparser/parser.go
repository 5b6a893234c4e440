package quizparser

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/logger"
)

// Config configures a Parser.
type Config struct {
	// MaxInputBytes truncates longer input. Zero disables the bound.
	MaxInputBytes int
}

// Parser turns document text into class-shaped question records.
// A Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	cfg Config
}

// New creates a parser.
func New(cfg Config) *Parser {
	if cfg.MaxInputBytes < 0 {
		cfg.MaxInputBytes = 0
	}
	return &Parser{cfg: cfg}
}

// Default returns a parser with the default input bound.
func Default() *Parser {
	return New(Config{MaxInputBytes: domain.DefaultMaxInputBytes})
}

// Parse extracts the questions of text for the given document class.
//
// The only error is domain.ErrInvalidDocumentClass. Documents that yield
// nothing produce an empty result with a no_questions diagnostic. When ctx
// ends mid-parse the questions assembled so far are returned with a
// parse_interrupted diagnostic.
func (p *Parser) Parse(ctx context.Context, text string, class domain.DocumentClass) (*domain.ParseResult, error) {
	adapter, ok := Lookup(class)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDocumentClass, class)
	}

	logger.Section("Parse")
	result := &domain.ParseResult{Class: class}

	text = normaliseNewlines(text)
	if p.cfg.MaxInputBytes > 0 && len(text) > p.cfg.MaxInputBytes {
		text = truncateUTF8(text, p.cfg.MaxInputBytes)
		result.Diagnostics = append(result.Diagnostics, domain.Diagnostic{
			Severity: domain.SeverityWarning,
			Code:     domain.DiagInputTruncated,
			Message:  fmt.Sprintf("input truncated to %d bytes", len(text)),
		})
	}

	region, passage := text, ""
	if adapter.HasPassage() {
		b := ResolveBoundary(text)
		logger.Debug("passage boundary at byte %d via %s", b.Offset, b.Strategy)
		region, passage = b.QuestionsRegion, b.Passage
		if b.Strategy == BoundaryMidpoint {
			result.Diagnostics = append(result.Diagnostics, domain.Diagnostic{
				Severity: domain.SeverityInfo,
				Code:     domain.DiagBoundaryMidpoint,
				Message:  "no question marker found; passage split at the midpoint",
			})
		}
	}

	letters := adapter.Letters()
	seg := Segment(region, letters)
	logger.Debug("segmented %d block(s) via %s", len(seg.Blocks), seg.Strategy)
	result.Diagnostics = append(result.Diagnostics, seg.Diagnostics...)

	result.Questions = make([]domain.ParsedQuestion, 0, len(seg.Blocks))
	for _, block := range seg.Blocks {
		if err := ctx.Err(); err != nil {
			result.Diagnostics = append(result.Diagnostics, domain.Diagnostic{
				Severity: domain.SeverityWarning,
				Code:     domain.DiagParseInterrupted,
				Message:  fmt.Sprintf("stopped after %d question(s): %v", len(result.Questions), err),
			})
			break
		}
		a := Assemble(block, letters)
		result.Diagnostics = append(result.Diagnostics, a.Diagnostics...)
		if a.Dropped {
			continue
		}
		result.Questions = append(result.Questions, a.Question)
	}

	if len(result.Questions) == 0 {
		result.Diagnostics = append(result.Diagnostics, domain.Diagnostic{
			Severity: domain.SeverityInfo,
			Code:     domain.DiagNoQuestions,
			Message:  "no questions found; check the document format",
		})
	}

	for _, d := range result.Diagnostics {
		if d.Severity == domain.SeverityWarning {
			logger.Warn("%s", d)
		} else {
			logger.Info("%s", d)
		}
	}

	adapter.Shape(passage, result.Questions, result)
	return result, nil
}

// ParseVocabulary parses a vocabulary-class document with the default parser.
func ParseVocabulary(text string) []domain.VocabularyQuestion {
	res, _ := Default().Parse(context.Background(), text, domain.ClassVocabulary)
	return res.Vocabulary
}

// ParseReading parses a reading-class document with the default parser.
func ParseReading(text string) domain.ReadingMaterial {
	res, _ := Default().Parse(context.Background(), text, domain.ClassReading)
	return *res.Reading
}

func normaliseNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
