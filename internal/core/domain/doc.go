// Package domain defines the core business entities for lessonquiz.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: Opaque bytes of an uploaded lesson document
//   - Document: The plain text extracted from a RawDocument
//   - ParsedQuestion: One multiple-choice question recovered by the parser
//   - ReadingMaterial: A passage plus its questions (reading class)
//   - Quiz: A persisted import result
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
