// Package quizparser recovers multiple-choice questions from the free-form
// text of lesson documents.
//
// The pipeline is a pure function of its input text and document class:
//
//	text -> ResolveBoundary (reading class only) -> Segment
//	     -> per block: ExtractAnswer -> ExtractOptions -> Assemble
//	     -> Adapter.Shape
//
// Every extraction step is an ordered list of strategies tried with a
// first-success combinator, so a new authoring convention is added by
// appending a strategy rather than editing a branch.
//
// The parser never fails on odd documents. It degrades to fewer or emptier
// results and reports what it noticed as diagnostics. The only error it
// returns is domain.ErrInvalidDocumentClass.
//
// All patterns use Go's regexp package (RE2), which runs in time linear in
// the input, so no pattern can backtrack catastrophically on adversarial text.
package quizparser
