package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Preview the questions in a lesson document",
	Long: `Extract a lesson document and print the questions found, without storing them.

Output is a styled preview on a terminal and JSON otherwise. JSON has the
shape the document class produces: an array of questions for vocabulary, an
object with the passage and its questions for reading.

Examples:
  lessonquiz parse week1.docx
  lessonquiz parse marie-curie.txt --class reading --json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var (
	parseClass string
	parseJSON  bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseClass, "class", "c", "", "Document class: vocabulary or reading (default from settings)")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print JSON even on a terminal")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if err := requireQuizService(); err != nil {
		return err
	}
	if extractor == nil {
		return errors.New("extractor not configured")
	}

	class, err := resolveClass(parseClass)
	if err != nil {
		return err
	}

	raw, err := readDocument(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	text, err := extractor.Extract(ctx, raw.Content, raw.MIMEType, raw.FileName)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", raw.FileName, err)
	}

	result, err := quizService.Parse(ctx, text, class)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", raw.FileName, err)
	}

	out := cmd.OutOrStdout()
	if parseJSON || !isTerminal(out) {
		if len(result.Diagnostics) > 0 {
			cmd.PrintErr(newRenderer(cmd.ErrOrStderr()).Diagnostics(result.Diagnostics))
		}
		return writeJSON(out, result.Body())
	}

	title := strings.TrimSuffix(raw.FileName, filepath.Ext(raw.FileName))
	cmd.Print(newRenderer(out).Result(title, result))
	return nil
}
