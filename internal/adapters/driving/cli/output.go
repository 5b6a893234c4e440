package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/custodia-labs/lessonquiz/internal/adapters/driving/preview"
	"github.com/custodia-labs/lessonquiz/internal/adapters/driving/watch"
	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

// isTerminal reports whether w is an interactive terminal. Replaced in tests.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newRenderer sizes a preview renderer to the terminal behind w.
func newRenderer(w io.Writer) *preview.Renderer {
	width := preview.DefaultWidth
	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = cols
		}
	}
	return preview.NewRenderer(nil, width)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// readDocument loads a file from disk as an upload.
func readDocument(path string) (*domain.RawDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &domain.RawDocument{
		URI:      path,
		FileName: filepath.Base(path),
		MIMEType: watch.DetectMIMEType(path),
		Content:  content,
	}, nil
}
