package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range settingsCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "show")
	assert.Contains(t, names, "set")
}

func TestSettingsShowCmd_Defaults(t *testing.T) {
	setupTestServices(t)

	out, _, err := run(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Backend: sqlite")
	assert.Contains(t, out, "Data dir: (default)")
	assert.Contains(t, out, "Concurrency: 4")
	assert.Contains(t, out, "Default class: vocabulary")
	assert.Contains(t, out, "Max input: 2097152 bytes")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_ShowsByDefault(t *testing.T) {
	setupTestServices(t)

	out, _, err := run(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
}

func TestSettingsSetCmd(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.Settings)
	}{
		{"storage.backend", "memory", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, domain.StorageMemory, s.Storage.Backend)
		}},
		{"storage.data_dir", "/srv/quizzes", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, "/srv/quizzes", s.Storage.DataDir)
		}},
		{"import.concurrency", "8", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, 8, s.Import.Concurrency)
		}},
		{"import.default_class", "Reading", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, domain.ClassReading, s.Import.DefaultClass)
		}},
		{"parser.max_input_bytes", "0", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, 0, s.Parser.MaxInputBytes)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			ts := setupTestServices(t)

			out, _, err := run(t, "settings", "set", tt.key, tt.value)

			require.NoError(t, err)
			assert.Contains(t, out, "Set "+tt.key)
			settings, err := ts.settings.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsSetCmd_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  error
	}{
		{"unknown key", "search.mode", "full", domain.ErrInvalidInput},
		{"bad backend", "storage.backend", "postgres", domain.ErrInvalidInput},
		{"non-numeric concurrency", "import.concurrency", "many", domain.ErrInvalidInput},
		{"concurrency out of range", "import.concurrency", "0", domain.ErrInvalidInput},
		{"bad class", "import.default_class", "grammar", domain.ErrInvalidDocumentClass},
		{"negative bytes", "parser.max_input_bytes", "-1", domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)

			_, _, err := run(t, "settings", "set", tt.key, tt.value)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSettingsSetCmd_RequiresTwoArgs(t *testing.T) {
	setupTestServices(t)

	_, _, err := run(t, "settings", "set", "storage.backend")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestSettingsCmds_ServiceNotConfigured(t *testing.T) {
	for _, args := range [][]string{
		{"settings", "show"},
		{"settings", "set", "storage.backend", "memory"},
	} {
		t.Run(args[1], func(t *testing.T) {
			setupTestServices(t)
			settingsService = nil

			_, _, err := run(t, args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "settings service not configured")
		})
	}
}

func TestSettingsCmds_ServiceError(t *testing.T) {
	setupTestServices(t)
	settingsService = failingSettingsService{}

	_, _, err := run(t, "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get settings")
}
