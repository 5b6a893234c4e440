package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import lesson documents as quizzes",
	Long: `Extract, parse and store one or more lesson documents.

Documents are imported concurrently. A document that fails does not stop the
others; the command exits with an error if any failed. A document without
questions is still stored so its diagnostics can be reviewed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

var importClass string

func init() {
	importCmd.Flags().StringVarP(&importClass, "class", "c", "", "Document class: vocabulary or reading (default from settings)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := requireQuizService(); err != nil {
		return err
	}

	class, err := resolveClass(importClass)
	if err != nil {
		return err
	}

	raws := make([]*domain.RawDocument, 0, len(args))
	for _, path := range args {
		raw, err := readDocument(path)
		if err != nil {
			return err
		}
		raws = append(raws, raw)
	}

	results := quizService.ImportBatch(cmd.Context(), raws, class)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			cmd.Printf("✗ %s: %v\n", r.URI, r.Err)
			continue
		}
		cmd.Printf("✓ %s → %s (%d questions", r.URI, r.Quiz.ID, len(r.Quiz.Questions))
		if n := len(r.Quiz.Diagnostics); n > 0 {
			cmd.Printf(", %d diagnostics", n)
		}
		cmd.Println(")")
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed to import", failed, len(results))
	}
	cmd.Printf("\nImported %d documents as %s quizzes.\n", len(results), class)
	return nil
}
