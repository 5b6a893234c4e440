package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change storage, import, and parser settings.

Settings are stored in config.toml in the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change one setting and save the configuration.

Keys:
  storage.backend         sqlite or memory
  storage.data_dir        directory for the quiz database
  import.concurrency      documents parsed at once by import (1-64)
  import.default_class    vocabulary or reading
  parser.max_input_bytes  input bound in bytes (0 = unbounded)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend)
	if settings.Storage.DataDir != "" {
		cmd.Printf("  Data dir: %s\n", settings.Storage.DataDir)
	} else {
		cmd.Printf("  Data dir: (default)\n")
	}
	cmd.Println()

	cmd.Println("[Import]")
	cmd.Printf("  Concurrency: %d\n", settings.Import.Concurrency)
	cmd.Printf("  Default class: %s\n", settings.Import.DefaultClass)
	cmd.Println()

	cmd.Println("[Parser]")
	if settings.Parser.MaxInputBytes > 0 {
		cmd.Printf("  Max input: %d bytes\n", settings.Parser.MaxInputBytes)
	} else {
		cmd.Printf("  Max input: unbounded\n")
	}
	cmd.Println()

	if err := settingsService.Validate(settings); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if err := applySetting(settings, args[0], args[1]); err != nil {
		return err
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s to %s\n", args[0], args[1])
	return nil
}

// applySetting assigns one dotted key. Range checks are left to Save.
func applySetting(settings *domain.Settings, key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case "storage.backend":
		settings.Storage.Backend = domain.StorageBackend(strings.ToLower(value))
	case "storage.data_dir":
		settings.Storage.DataDir = value
	case "import.concurrency":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Import.Concurrency = n
	case "import.default_class":
		class, err := domain.ParseDocumentClass(value)
		if err != nil {
			return err
		}
		settings.Import.DefaultClass = class
	case "parser.max_input_bytes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Parser.MaxInputBytes = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return nil
}
