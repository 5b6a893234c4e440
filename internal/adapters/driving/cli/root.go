// Package cli implements the lessonquiz command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driving"
	"github.com/custodia-labs/lessonquiz/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// Extractor turns uploaded document bytes into plain text.
type Extractor interface {
	Extract(ctx context.Context, buffer []byte, mimeType, fileName string) (string, error)
	Supports(fileName string) bool
}

// Services are the core services the commands drive.
type Services struct {
	Quiz      driving.QuizService
	Settings  driving.SettingsService
	Extractor Extractor

	// Close releases storage. May be nil.
	Close func() error
}

// Options carries the global flags needed to build services.
type Options struct {
	// ConfigDir holds config.toml. Empty means ~/.lessonquiz and
	// ":memory:" keeps settings in memory.
	ConfigDir string

	// DataDir overrides storage.data_dir.
	DataDir string
}

// Bootstrap builds services once flags are parsed.
type Bootstrap func(Options) (*Services, error)

// offline marks commands that run without services.
const offline = "offline"

var (
	quizService     driving.QuizService
	settingsService driving.SettingsService
	extractor       Extractor

	bootstrap     Bootstrap
	closeServices func() error
)

// Global flags.
var (
	verbose   bool
	configDir string
	dataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "lessonquiz",
	Short: "Turn lesson documents into quizzes",
	Long: `lessonquiz extracts multiple-choice questions from lesson documents.

Vocabulary documents are lists of numbered questions with lettered options.
Reading documents lead with a passage followed by its questions. Documents may
be plain text, Markdown, HTML or Word (.docx) files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if cmd.Annotations[offline] == "true" {
			return nil
		}
		return connect()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", `Configuration directory (default ~/.lessonquiz, ":memory:" for none)`)
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Quiz database directory (overrides storage.data_dir)")
}

// SetServices installs services directly, bypassing Bootstrap.
func SetServices(s *Services) {
	if s == nil {
		quizService, settingsService, extractor, closeServices = nil, nil, nil, nil
		return
	}
	quizService = s.Quiz
	settingsService = s.Settings
	extractor = s.Extractor
	closeServices = s.Close
}

// Execute runs the root command. boot is called before the first command
// that needs services.
func Execute(ctx context.Context, boot Bootstrap) error {
	bootstrap = boot
	defer func() {
		if err := disconnect(); err != nil {
			logger.Warn("closing storage: %v", err)
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func connect() error {
	if bootstrap == nil || quizService != nil {
		return nil
	}
	s, err := bootstrap(Options{ConfigDir: configDir, DataDir: dataDir})
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(s)
	return nil
}

func disconnect() error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	SetServices(nil)
	return err
}

// resolveClass parses a --class flag, falling back to the configured
// default class.
func resolveClass(flag string) (domain.DocumentClass, error) {
	if flag != "" {
		return domain.ParseDocumentClass(flag)
	}
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings.Import.DefaultClass.IsValid() {
			return settings.Import.DefaultClass, nil
		}
	}
	return domain.ClassVocabulary, nil
}

func requireQuizService() error {
	if quizService == nil {
		return errors.New("quiz service not configured")
	}
	return nil
}
