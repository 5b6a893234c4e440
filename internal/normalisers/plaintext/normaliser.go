package plaintext

import (
	"context"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driven"
	"github.com/custodia-labs/lessonquiz/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents, including text pasted by an
// author and "Unicode text" exports from word processors.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/plain"}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise decodes the text. A UTF-8 or UTF-16 byte order mark selects
// the encoding and is removed; without one the content is read as UTF-8
// and invalid bytes become U+FFFD. Line endings are normalised to "\n".
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content, err := Decode(raw.Content)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	return &driven.NormaliseResult{
		Document: normalisers.NewDocument(raw, normalisers.Title(raw), content, "plaintext"),
	}, nil
}

// Decode converts text bytes to a UTF-8 string with "\n" line endings.
func Decode(b []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), b)
	if err != nil {
		return "", err
	}
	s := strings.ReplaceAll(string(decoded), "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n"), nil
}
