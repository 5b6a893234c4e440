// Command lessonquiz turns lesson documents into quizzes.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/lessonquiz/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lessonquiz/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lessonquiz/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lessonquiz/internal/adapters/driving/cli"
	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driven"
	"github.com/custodia-labs/lessonquiz/internal/core/services"
	"github.com/custodia-labs/lessonquiz/internal/quizparser"
)

// memoryDir selects in-memory configuration.
const memoryDir = ":memory:"

func main() {
	if err := cli.Execute(context.Background(), newServices); err != nil {
		os.Exit(1)
	}
}

// newServices wires the configured stores into the core services.
func newServices(opts cli.Options) (*cli.Services, error) {
	configStore, err := newConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	quizStore, closeStore, err := newQuizStore(settings, opts)
	if err != nil {
		return nil, err
	}

	registry := services.NewDefaultNormaliserRegistry()
	parser := quizparser.New(quizparser.Config{MaxInputBytes: settings.Parser.MaxInputBytes})

	return &cli.Services{
		Quiz:      services.NewQuizService(registry, parser, quizStore, settings.Import.Concurrency),
		Settings:  settingsService,
		Extractor: registry,
		Close:     closeStore,
	}, nil
}

func newConfigStore(dir string) (driven.ConfigStore, error) {
	if dir == memoryDir {
		return memory.NewConfigStore(), nil
	}
	return file.NewConfigStore(dir)
}

// newQuizStore opens the configured backend. The data directory comes from
// --data-dir, then storage.data_dir, then the config directory.
func newQuizStore(settings *domain.Settings, opts cli.Options) (driven.QuizStore, func() error, error) {
	if settings.Storage.Backend == domain.StorageMemory {
		return memory.NewQuizStore(), nil, nil
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = settings.Storage.DataDir
	}
	if dataDir == "" && opts.ConfigDir != "" && opts.ConfigDir != memoryDir {
		dataDir = filepath.Join(opts.ConfigDir, "data")
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening quiz store: %w", err)
	}
	return store.QuizStore(), store.Close, nil
}
