package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lessonquiz/internal/quizparser"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Manage imported quizzes",
	Long:  `List, show, or delete quizzes created by import and watch.`,
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported quizzes",
	Args:  cobra.NoArgs,
	RunE:  runQuizList,
}

var quizGetCmd = &cobra.Command{
	Use:   "get [quiz-id]",
	Short: "Show a quiz",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuizGet,
}

var quizDeleteCmd = &cobra.Command{
	Use:   "delete [quiz-id]",
	Short: "Delete a quiz",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuizDelete,
}

var quizJSON bool

// quizSummary is the JSON form of a listed quiz.
type quizSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Class     string `json:"class"`
	Questions int    `json:"questions"`
	Source    string `json:"source,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func init() {
	quizListCmd.Flags().BoolVar(&quizJSON, "json", false, "Print JSON")
	quizGetCmd.Flags().BoolVar(&quizJSON, "json", false, "Print JSON")

	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizGetCmd)
	quizCmd.AddCommand(quizDeleteCmd)
	rootCmd.AddCommand(quizCmd)
}

func runQuizList(cmd *cobra.Command, _ []string) error {
	if err := requireQuizService(); err != nil {
		return err
	}

	quizzes, err := quizService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list quizzes: %w", err)
	}

	if quizJSON {
		summaries := make([]quizSummary, 0, len(quizzes))
		for i := range quizzes {
			q := &quizzes[i]
			summaries = append(summaries, quizSummary{
				ID:        q.ID,
				Title:     q.Title,
				Class:     string(q.Class),
				Questions: len(q.Questions),
				Source:    q.SourceURI,
				CreatedAt: q.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			})
		}
		return writeJSON(cmd.OutOrStdout(), summaries)
	}

	if len(quizzes) == 0 {
		cmd.Println("No quizzes imported yet. Run 'lessonquiz import <file>' to add one.")
		return nil
	}

	r := newRenderer(cmd.OutOrStdout())
	for i := range quizzes {
		cmd.Println(r.Summary(&quizzes[i]))
	}
	cmd.Printf("\nTotal: %d quizzes\n", len(quizzes))
	return nil
}

func runQuizGet(cmd *cobra.Command, args []string) error {
	if err := requireQuizService(); err != nil {
		return err
	}

	quiz, err := quizService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get quiz: %w", err)
	}

	if quizJSON {
		result, err := quizparser.Export(quiz)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), result.Body())
	}

	cmd.Print(newRenderer(cmd.OutOrStdout()).Quiz(quiz))
	return nil
}

func runQuizDelete(cmd *cobra.Command, args []string) error {
	if err := requireQuizService(); err != nil {
		return err
	}

	if err := quizService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	cmd.Printf("Deleted quiz %s\n", args[0])
	return nil
}
