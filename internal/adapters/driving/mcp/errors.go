// Package mcp provides an MCP (Model Context Protocol) server adapter for lessonquiz.
// It lets AI assistants parse lesson documents and read imported quizzes.
package mcp

import "errors"

// ErrMissingQuizService is returned when the quiz service is not provided.
var ErrMissingQuizService = errors.New("mcp: quiz service is required")
