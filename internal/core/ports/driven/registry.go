package driven

import (
	"context"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for an upload.
// Selection is by MIME type first, then by file extension; among several
// candidates the highest priority wins.
type NormaliserRegistry interface {
	// Normalise extracts text using the best matching normaliser.
	// Returns domain.ErrUnsupportedFormat when nothing matches.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// Extract is the buffer form of Normalise and returns only the text.
	Extract(ctx context.Context, buffer []byte, mimeType, fileName string) (string, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string

	// SupportedExtensions returns all file extensions that can be normalised.
	SupportedExtensions() []string
}
