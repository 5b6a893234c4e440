package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/quizparser"
)

// ParseQuizInput is the input schema for the parse_quiz tool.
type ParseQuizInput struct {
	Text  string `json:"text" jsonschema:"the plain text of the lesson document"`
	Class string `json:"class,omitempty" jsonschema:"document class: vocabulary (default) or reading"`
}

// QuizOutput is the class-shaped output of parse_quiz and get_quiz.
type QuizOutput struct {
	ID          string                      `json:"id,omitempty"`
	Title       string                      `json:"title,omitempty"`
	Class       domain.DocumentClass        `json:"class"`
	Count       int                         `json:"count"`
	Vocabulary  []domain.VocabularyQuestion `json:"vocabulary,omitempty"`
	Reading     *domain.ReadingMaterial     `json:"reading,omitempty"`
	Diagnostics []string                    `json:"diagnostics,omitempty"`
}

// GetQuizInput is the input schema for the get_quiz tool.
type GetQuizInput struct {
	ID string `json:"id" jsonschema:"the ID of an imported quiz"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_quiz",
		Description: "Extract multiple-choice questions from lesson text",
	}, s.handleParseQuiz)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_quiz",
		Description: "Fetch an imported quiz by ID",
	}, s.handleGetQuiz)
}

// handleParseQuiz handles the parse_quiz tool invocation.
func (s *Server) handleParseQuiz(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParseQuizInput,
) (*mcp.CallToolResult, QuizOutput, error) {
	class := domain.ClassVocabulary
	if input.Class != "" {
		c, err := domain.ParseDocumentClass(input.Class)
		if err != nil {
			return nil, QuizOutput{}, err
		}
		class = c
	}

	result, err := s.ports.Quiz.Parse(ctx, input.Text, class)
	if err != nil {
		return nil, QuizOutput{}, err
	}

	return nil, toOutput(result), nil
}

// handleGetQuiz handles the get_quiz tool invocation.
func (s *Server) handleGetQuiz(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetQuizInput,
) (*mcp.CallToolResult, QuizOutput, error) {
	if input.ID == "" {
		return nil, QuizOutput{}, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}

	quiz, err := s.ports.Quiz.Get(ctx, input.ID)
	if err != nil {
		return nil, QuizOutput{}, fmt.Errorf("getting quiz %s: %w", input.ID, err)
	}

	result, err := quizparser.Export(quiz)
	if err != nil {
		return nil, QuizOutput{}, err
	}

	output := toOutput(result)
	output.ID = quiz.ID
	output.Title = quiz.Title
	return nil, output, nil
}

func toOutput(result *domain.ParseResult) QuizOutput {
	output := QuizOutput{
		Class:      result.Class,
		Count:      result.QuestionCount(),
		Vocabulary: result.Vocabulary,
		Reading:    result.Reading,
	}
	for _, d := range result.Diagnostics {
		output.Diagnostics = append(output.Diagnostics, d.String())
	}
	return output
}
