package html

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driven"
	"github.com/custodia-labs/lessonquiz/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts an HTML document to plain text.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content, title := extractText(raw.Content)
	if title == "" {
		title = normalisers.Title(raw)
	}

	return &driven.NormaliseResult{
		Document: normalisers.NewDocument(raw, title, content, "html"),
	}, nil
}

// Elements whose content is never shown.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Head:     true,
	atom.Svg:      true,
	atom.Template: true,
}

// Elements that start and end a line.
var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Li: true, atom.Tr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Pre: true, atom.Table: true, atom.Section: true,
	atom.Article: true, atom.Ol: true, atom.Ul: true, atom.Dt: true, atom.Dd: true,
}

// list is an open <ol> or <ul>.
type list struct {
	ordered bool
	style   string
	next    int
}

var multiSpaces = regexp.MustCompile(`[ \t\p{Zs}]+`)

// extractText walks the token stream and returns the visible text and the
// <title>, if any.
func extractText(content []byte) (string, string) {
	z := html.NewTokenizer(bytes.NewReader(content))

	var (
		out     strings.Builder
		title   strings.Builder
		lists   []*list
		skip    int
		inTitle bool
	)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return cleanLines(out.String()), strings.TrimSpace(title.String())

		case html.TextToken:
			switch {
			case inTitle:
				title.Write(z.Text())
			case skip == 0:
				out.Write(z.Text())
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			a := tok.DataAtom
			if a == atom.Title {
				inTitle = tt == html.StartTagToken
				continue
			}
			if skipped[a] {
				if tt == html.StartTagToken {
					skip++
				}
				continue
			}
			if skip > 0 {
				continue
			}
			switch {
			case a == atom.Br || a == atom.Hr:
				out.WriteByte('\n')
			case a == atom.Td || a == atom.Th:
				out.WriteByte(' ')
			case a == atom.Ol || a == atom.Ul:
				lists = append(lists, newList(tok))
				out.WriteByte('\n')
			case a == atom.Li:
				out.WriteByte('\n')
				if len(lists) > 0 {
					out.WriteString(lists[len(lists)-1].marker())
				}
			case blocks[a]:
				out.WriteByte('\n')
			}

		case html.EndTagToken:
			tok := z.Token()
			a := tok.DataAtom
			if a == atom.Title {
				inTitle = false
				continue
			}
			if skipped[a] {
				if skip > 0 {
					skip--
				}
				continue
			}
			if skip > 0 {
				continue
			}
			if (a == atom.Ol || a == atom.Ul) && len(lists) > 0 {
				lists = lists[:len(lists)-1]
			}
			if blocks[a] {
				out.WriteByte('\n')
			}
		}
	}
}

func newList(tok html.Token) *list {
	l := &list{ordered: tok.DataAtom == atom.Ol, style: "1", next: 1}
	for _, attr := range tok.Attr {
		switch attr.Key {
		case "type":
			l.style = attr.Val
		case "start":
			if n, err := strconv.Atoi(attr.Val); err == nil {
				l.next = n
			}
		}
	}
	return l
}

// marker returns the rendered prefix of the next list item: "3. " for
// numbered lists, "c) " for lettered ones, nothing for bullets.
func (l *list) marker() string {
	if !l.ordered {
		return ""
	}
	n := l.next
	l.next++
	switch l.style {
	case "a", "A":
		if n < 1 || n > 26 {
			return fmt.Sprintf("%d. ", n)
		}
		return fmt.Sprintf("%c) ", rune(l.style[0])+rune(n-1))
	default:
		return fmt.Sprintf("%d. ", n)
	}
}

// cleanLines collapses runs of spaces, trims each line and drops empty ones.
func cleanLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(multiSpaces.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
