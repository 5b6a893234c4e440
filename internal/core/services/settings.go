package services

import (
	"fmt"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driven"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyStorageBackend      = "storage.backend"
	KeyStorageDataDir      = "storage.data_dir"
	KeyImportConcurrency   = "import.concurrency"
	KeyImportDefaultClass  = "import.default_class"
	KeyParserMaxInputBytes = "parser.max_input_bytes"
)

// maxImportConcurrency caps import.concurrency.
const maxImportConcurrency = 64

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(KeyStorageDataDir),
		},
		Import: domain.ImportSettings{
			Concurrency:  s.getConcurrency(defaults.Import.Concurrency),
			DefaultClass: s.getClass(defaults.Import.DefaultClass),
		},
		Parser: domain.ParserSettings{
			MaxInputBytes: s.getMaxInputBytes(defaults.Parser.MaxInputBytes),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := s.Validate(settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyStorageBackend, string(settings.Storage.Backend)},
		{KeyStorageDataDir, settings.Storage.DataDir},
		{KeyImportConcurrency, settings.Import.Concurrency},
		{KeyImportDefaultClass, settings.Import.DefaultClass.String()},
		{KeyParserMaxInputBytes, settings.Parser.MaxInputBytes},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Validate checks settings for unsupported values.
func (s *SettingsService) Validate(settings *domain.Settings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}
	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, settings.Storage.Backend)
	}
	if settings.Import.Concurrency < 1 || settings.Import.Concurrency > maxImportConcurrency {
		return fmt.Errorf("%w: import concurrency %d not in 1-%d",
			domain.ErrInvalidInput, settings.Import.Concurrency, maxImportConcurrency)
	}
	if !settings.Import.DefaultClass.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDocumentClass, settings.Import.DefaultClass)
	}
	if settings.Parser.MaxInputBytes < 0 {
		return fmt.Errorf("%w: parser max input bytes %d", domain.ErrInvalidInput, settings.Parser.MaxInputBytes)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(KeyStorageBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getConcurrency(defaultVal int) int {
	val := s.configStore.GetInt(KeyImportConcurrency)
	if val < 1 || val > maxImportConcurrency {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getClass(defaultVal domain.DocumentClass) domain.DocumentClass {
	class, err := domain.ParseDocumentClass(s.configStore.GetString(KeyImportDefaultClass))
	if err != nil {
		return defaultVal
	}
	return class
}

func (s *SettingsService) getMaxInputBytes(defaultVal int) int {
	raw, _ := s.configStore.Get(KeyParserMaxInputBytes)
	switch raw.(type) {
	case int, int64, float64:
	default:
		return defaultVal
	}
	val := s.configStore.GetInt(KeyParserMaxInputBytes)
	if val < 0 {
		return defaultVal
	}
	return val
}
