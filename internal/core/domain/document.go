package domain

import "time"

// Document is the plain text extracted from a RawDocument.
// Its Content is what the quiz parser consumes.
type Document struct {
	// ID is the unique identifier for the extraction.
	ID string

	// URI is the original location (file path, URL, etc).
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the full UTF-8 text.
	Content string

	// Metadata contains arbitrary key-value pairs (mime_type, format).
	Metadata map[string]any

	// ExtractedAt is when the text was extracted.
	ExtractedAt time.Time
}
