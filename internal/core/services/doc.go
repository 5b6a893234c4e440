// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - QuizService: extract, parse and store lesson documents
//   - SettingsService: typed settings over the config store
//   - NormaliserRegistry: picks the text extractor for an upload
package services
