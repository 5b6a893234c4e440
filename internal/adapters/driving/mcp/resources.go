package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/quizparser"
)

const (
	// uriScheme is the custom URI scheme for lessonquiz resources.
	uriScheme = "lessonquiz://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing quizzes.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "quizzes",
		Name:        "quizzes",
		Description: "List of imported quizzes, newest first",
		MIMEType:    "application/json",
	}, s.handleQuizzesResource)

	// Template for one quiz.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "quizzes/{quizId}",
		Name:        "quiz",
		Description: "Questions of an imported quiz in its class shape",
		MIMEType:    "application/json",
	}, s.handleQuizResource)
}

// handleQuizzesResource returns a summary of all imported quizzes.
func (s *Server) handleQuizzesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	quizzes, err := s.ports.Quiz.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing quizzes: %w", err)
	}

	type quizInfo struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Class     string `json:"class"`
		Questions int    `json:"questions"`
		URI       string `json:"uri"`
	}

	infos := make([]quizInfo, len(quizzes))
	for i := range quizzes {
		infos[i] = quizInfo{
			ID:        quizzes[i].ID,
			Title:     quizzes[i].Title,
			Class:     quizzes[i].Class.String(),
			Questions: len(quizzes[i].Questions),
			URI:       uriScheme + "quizzes/" + quizzes[i].ID,
		}
	}

	return jsonResource(req.Params.URI, infos)
}

// handleQuizResource returns the class-shaped body of one quiz.
func (s *Server) handleQuizResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract quizId from URI: lessonquiz://quizzes/{quizId}
	quizID := extractQuizID(req.Params.URI)
	if quizID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	quiz, err := s.ports.Quiz.Get(ctx, quizID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting quiz: %w", err)
	}

	result, err := quizparser.Export(quiz)
	if err != nil {
		return nil, err
	}

	return jsonResource(req.Params.URI, result.Body())
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractQuizID extracts the quiz ID from a URI like lessonquiz://quizzes/{quizId}.
func extractQuizID(uri string) string {
	const prefix = uriScheme + "quizzes/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
