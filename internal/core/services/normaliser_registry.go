package services

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driven"
	"github.com/custodia-labs/lessonquiz/internal/normalisers/docx"
	"github.com/custodia-labs/lessonquiz/internal/normalisers/html"
	"github.com/custodia-labs/lessonquiz/internal/normalisers/legacydoc"
	"github.com/custodia-labs/lessonquiz/internal/normalisers/markdown"
	"github.com/custodia-labs/lessonquiz/internal/normalisers/plaintext"
)

// Ensure NormaliserRegistry implements the interface.
var _ driven.NormaliserRegistry = (*NormaliserRegistry)(nil)

// NormaliserRegistry selects a normaliser by MIME type, then by file
// extension. Among several matches the highest priority wins; ties go to
// the normaliser registered first.
type NormaliserRegistry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewNormaliserRegistry creates a registry holding the given normalisers.
func NewNormaliserRegistry(normalisers ...driven.Normaliser) *NormaliserRegistry {
	r := &NormaliserRegistry{}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// NewDefaultNormaliserRegistry creates a registry with the built-in
// normalisers: DOCX, legacy DOC, HTML, Markdown and plain text.
func NewDefaultNormaliserRegistry() *NormaliserRegistry {
	return NewNormaliserRegistry(
		docx.New(),
		legacydoc.New(),
		html.New(),
		markdown.New(),
		plaintext.New(),
	)
}

// Register adds a normaliser to the registry.
func (r *NormaliserRegistry) Register(normaliser driven.Normaliser) {
	if normaliser == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers = append(r.normalisers, normaliser)
}

// Normalise extracts text using the best matching normaliser.
func (r *NormaliserRegistry) Normalise(
	ctx context.Context,
	raw *domain.RawDocument,
) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}

	name := raw.FileName
	if name == "" {
		name = raw.URI
	}

	n := r.find(raw.MIMEType, name)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, describe(raw.MIMEType, name))
	}
	return n.Normalise(ctx, raw)
}

// Extract is the buffer form of Normalise and returns only the text.
func (r *NormaliserRegistry) Extract(ctx context.Context, buffer []byte, mimeType, fileName string) (string, error) {
	result, err := r.Normalise(ctx, &domain.RawDocument{
		URI:      fileName,
		FileName: fileName,
		MIMEType: mimeType,
		Content:  buffer,
	})
	if err != nil {
		return "", err
	}
	return result.Document.Content, nil
}

// SupportedMIMETypes returns all MIME types that can be normalised, sorted.
func (r *NormaliserRegistry) SupportedMIMETypes() []string {
	return r.collect(driven.Normaliser.SupportedMIMETypes)
}

// SupportedExtensions returns all file extensions that can be normalised, sorted.
func (r *NormaliserRegistry) SupportedExtensions() []string {
	return r.collect(driven.Normaliser.SupportedExtensions)
}

// Supports reports whether a file name has a registered extension.
func (r *NormaliserRegistry) Supports(fileName string) bool {
	return r.find("", fileName) != nil
}

func (r *NormaliserRegistry) collect(list func(driven.Normaliser) []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, n := range r.normalisers {
		for _, v := range list(n) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out
}

func (r *NormaliserRegistry) find(mimeType, fileName string) driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if mt := mediaType(mimeType); mt != "" {
		if n := r.best(mt, driven.Normaliser.SupportedMIMETypes); n != nil {
			return n
		}
	}
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != "" {
		return r.best(ext, driven.Normaliser.SupportedExtensions)
	}
	return nil
}

func (r *NormaliserRegistry) best(key string, list func(driven.Normaliser) []string) driven.Normaliser {
	var chosen driven.Normaliser
	for _, n := range r.normalisers {
		if !contains(list(n), key) {
			continue
		}
		if chosen == nil || n.Priority() > chosen.Priority() {
			chosen = n
		}
	}
	return chosen
}

// mediaType lowercases a MIME type and drops its parameters.
func mediaType(s string) string {
	if s == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(s); err == nil {
		return mt
	}
	mt, _, _ := strings.Cut(s, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func contains(values []string, key string) bool {
	for _, v := range values {
		if strings.EqualFold(v, key) {
			return true
		}
	}
	return false
}

func describe(mimeType, fileName string) string {
	switch {
	case mimeType != "" && fileName != "":
		return fmt.Sprintf("%s (%s)", fileName, mimeType)
	case fileName != "":
		return fileName
	case mimeType != "":
		return mimeType
	default:
		return "no MIME type or file name"
	}
}
