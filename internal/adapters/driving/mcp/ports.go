package mcp

import (
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Quiz parses documents and serves stored quizzes.
	Quiz driving.QuizService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Quiz == nil {
		return ErrMissingQuizService
	}
	return nil
}
