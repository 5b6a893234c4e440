package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedFormat indicates the text extractor cannot decode a document.
	// Only extractors return it; the quiz parser always receives decoded text.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrInvalidDocumentClass indicates a document class other than
	// vocabulary or reading was requested. It is a caller contract violation.
	ErrInvalidDocumentClass = errors.New("invalid document class")
)
