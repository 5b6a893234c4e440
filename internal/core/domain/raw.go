package domain

// RawDocument represents the opaque bytes of an uploaded lesson document.
// It is the input of text extraction.
type RawDocument struct {
	// URI is the original location (file path, upload name, etc).
	URI string

	// FileName is the name the author uploaded the document under.
	FileName string

	// MIMEType is the declared content type (e.g., "text/plain").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains caller-specific key-value pairs.
	Metadata map[string]any
}
