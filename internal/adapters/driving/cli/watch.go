package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lessonquiz/internal/adapters/driving/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import documents dropped into a directory",
	Long: `Watch an inbox directory and import every supported document written to it.

Hidden files and subdirectories are ignored. Stop with Ctrl+C.

Examples:
  lessonquiz watch ~/lessons/inbox
  lessonquiz watch ./reading --class reading --existing`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchClass    string
	watchExisting bool
)

func init() {
	watchCmd.Flags().StringVarP(&watchClass, "class", "c", "", "Document class: vocabulary or reading (default from settings)")
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "Import files already in the directory first")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := requireQuizService(); err != nil {
		return err
	}

	class, err := resolveClass(watchClass)
	if err != nil {
		return err
	}

	opts := []watch.Option{
		watch.WithNotify(func(r watch.Result) {
			if r.Err != nil {
				cmd.Printf("✗ %s: %v\n", r.Path, r.Err)
				return
			}
			cmd.Printf("✓ %s → %s (%d questions)\n", r.Path, r.Quiz.ID, len(r.Quiz.Questions))
		}),
	}
	if extractor != nil {
		opts = append(opts, watch.WithFilter(extractor.Supports))
	}
	if watchExisting {
		opts = append(opts, watch.WithExisting())
	}

	ctx, stop := signal.NotifyContext(watchContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for %s documents (Ctrl+C to stop)\n", args[0], class)
	return watch.New(args[0], class, quizService, opts...).Run(ctx)
}

// watchContext is the parent context of a watch. Replaced in tests.
var watchContext = func(cmd *cobra.Command) context.Context {
	return cmd.Context()
}
