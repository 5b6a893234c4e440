package driven

import (
	"context"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

// Normaliser extracts plain text from one family of document formats.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// SupportedExtensions returns lowercase file extensions, dot included,
	// used when an upload carries no usable MIME type.
	SupportedExtensions() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts the text of a raw document.
	// Formats that can never be decoded fail with domain.ErrUnsupportedFormat;
	// corrupt input of a supported format fails with domain.ErrInvalidInput.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Document carries the extracted text in its Content field.
	Document domain.Document
}
