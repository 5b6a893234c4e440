// Package legacydoc recognises binary Word 97-2003 (.doc) uploads and
// rejects them with a message the author can act on. The format is not
// decoded.
package legacydoc

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser claims legacy Word documents so they fail clearly instead of
// falling through to the plain text normaliser.
type Normaliser struct{}

// New creates a new legacy Word normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/msword"}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".doc"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise always fails with domain.ErrUnsupportedFormat.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, Message)
}

// Message is shown to authors who upload a .doc file.
const Message = "legacy Word (.doc) files cannot be read; save the document as .docx or paste its text"
