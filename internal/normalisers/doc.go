// Package normalisers provides implementations of the Normaliser interface
// for the document formats teachers upload. Each normaliser knows how to
// extract plain text from one format; the quiz parser only ever sees that
// text.
//
// Normalisers are registered with the NormaliserRegistry at startup.
// This package holds the helpers they share.
package normalisers

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

// NewDocument builds the extraction result for raw. The metadata is a copy
// of raw.Metadata with mime_type, format and file_name added.
func NewDocument(raw *domain.RawDocument, title, content, format string) domain.Document {
	meta := make(map[string]any, len(raw.Metadata)+3)
	for k, v := range raw.Metadata {
		meta[k] = v
	}
	meta["mime_type"] = raw.MIMEType
	meta["format"] = format
	if raw.FileName != "" {
		meta["file_name"] = raw.FileName
	}

	return domain.Document{
		ID:          uuid.New().String(),
		URI:         raw.URI,
		Title:       title,
		Content:     content,
		Metadata:    meta,
		ExtractedAt: time.Now(),
	}
}

// Title picks a human-readable title: Metadata["title"], then the file
// name, then the last element of the URI. Extensions are dropped and
// underscores and dashes become spaces.
func Title(raw *domain.RawDocument) string {
	if t, ok := raw.Metadata["title"].(string); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	name := raw.FileName
	if name == "" {
		name = raw.URI
	}
	if name == "" {
		return ""
	}
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}

// Extension returns the lowercase extension of the file name, or of the
// URI when the file name is empty.
func Extension(raw *domain.RawDocument) string {
	name := raw.FileName
	if name == "" {
		name = raw.URI
	}
	return strings.ToLower(filepath.Ext(name))
}
