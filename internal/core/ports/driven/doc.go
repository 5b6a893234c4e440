// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Normaliser: Extracts plain text from one document format
//   - NormaliserRegistry: Selects the normaliser for an upload
//   - QuizParser: Turns extracted text into question records
//   - QuizStore: Imported quiz persistence (SQLite or memory)
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
