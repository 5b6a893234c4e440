package markdown

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driven"
	"github.com/custodia-labs/lessonquiz/internal/normalisers"
	"github.com/custodia-labs/lessonquiz/internal/normalisers/plaintext"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts a markdown document to plain text.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text, err := plaintext.Decode(raw.Content)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	title := extractMarkdownTitle(text)
	if title == "" {
		title = normalisers.Title(raw)
	}

	return &driven.NormaliseResult{
		Document: normalisers.NewDocument(raw, title, stripMarkdown(text), "markdown"),
	}, nil
}

// extractMarkdownTitle returns the text of the first H1 heading.
func extractMarkdownTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(stripInline(strings.TrimPrefix(line, "#")))
		}
	}
	return ""
}

var (
	codeFence   = regexp.MustCompile("(?m)^[ \t]*```[^\n]*$\n?")
	inlineCode  = regexp.MustCompile("`([^`]+)`")
	images      = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings    = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	strongStar  = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
	strongUnder = regexp.MustCompile(`(^|[^_])__([^_\s](?:[^_\n]*[^_\s])?)__`)
	emStar      = regexp.MustCompile(`\*([^*\s][^*\n]*)\*`)
	emUnder     = regexp.MustCompile(`(^|[\s(])_([^_\s][^_\n]*)_`)
	blockquote  = regexp.MustCompile(`(?m)^>[ \t]?`)
	rule        = regexp.MustCompile(`(?m)^[ \t]*(?:-{3,}|\*{3,}|_{3,})[ \t]*$`)
	bullets     = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	tableRule   = regexp.MustCompile(`(?m)^[ \t]*\|?(?:[ \t]*:?-+:?[ \t]*\|)+[ \t]*:?-*:?[ \t]*$\n?`)
	tablePipes  = regexp.MustCompile(`[ \t]*\|[ \t]*`)
	hardBreak   = regexp.MustCompile(`(?m)(?:[ ]{2,}|\\)$`)
	manyNewline = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes markdown syntax but keeps question text intact:
// numbered markers ("1.", "Q1."), option markers ("a)", "(b)") and blanks
// written as underscores survive.
func stripMarkdown(content string) string {
	content = codeFence.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = blockquote.ReplaceAllString(content, "")
	content = rule.ReplaceAllString(content, "")
	content = tableRule.ReplaceAllString(content, "")
	content = bullets.ReplaceAllString(content, "")
	content = hardBreak.ReplaceAllString(content, "")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.Contains(line, "|") {
			line = strings.Trim(tablePipes.ReplaceAllString(line, " "), " ")
		}
		lines[i] = strings.TrimRight(stripInline(line), " \t")
	}
	content = strings.Join(lines, "\n")

	content = manyNewline.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

func stripInline(s string) string {
	s = inlineCode.ReplaceAllString(s, "$1")
	s = strongStar.ReplaceAllString(s, "$1")
	s = strongUnder.ReplaceAllString(s, "$1$2")
	s = emStar.ReplaceAllString(s, "$1")
	return emUnder.ReplaceAllString(s, "$1$2")
}
