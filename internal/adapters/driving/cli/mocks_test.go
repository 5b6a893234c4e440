package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lessonquiz/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driving"
	"github.com/custodia-labs/lessonquiz/internal/core/services"
	"github.com/custodia-labs/lessonquiz/internal/quizparser"
)

const capitalsDoc = "Q1. Capital of France?\na) Lyon\nb) Paris\nAnswer: b\n\nQ2. Capital of Italy?\na) Rome\nb) Milan\nAnswer: a"

const marieDoc = "Reading Passage:\nMarie lives in Paris. She works as a nurse.\n\n" +
	"MCQ Questions:\n" +
	"1. Where does Marie live?\nA) Paris\nB) Lyon\nAnswer: A"

var errServiceFailed = errors.New("service failed")

// testServices wires real services over in-memory stores.
type testServices struct {
	quiz     *services.QuizService
	settings *services.SettingsService
	config   *memory.ConfigStore
}

// setupTestServices installs in-memory services and resets command flags.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	resetFlags()

	config := memory.NewConfigStore()
	registry := services.NewDefaultNormaliserRegistry()
	ts := &testServices{
		quiz:     services.NewQuizService(registry, quizparser.Default(), memory.NewQuizStore(), 2),
		settings: services.NewSettingsService(config),
		config:   config,
	}
	SetServices(&Services{Quiz: ts.quiz, Settings: ts.settings, Extractor: registry})

	t.Cleanup(func() {
		SetServices(nil)
		bootstrap = nil
		resetFlags()
	})
	return ts
}

func resetFlags() {
	verbose, configDir, dataDir = false, "", ""
	parseClass, parseJSON = "", false
	importClass = ""
	quizJSON = false
	watchClass, watchExisting = "", false
}

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func importFixture(t *testing.T, ts *testServices, name, content string, class domain.DocumentClass) *domain.Quiz {
	t.Helper()
	quiz, err := ts.quiz.Import(context.Background(), &domain.RawDocument{
		URI:      "/lessons/" + name,
		FileName: name,
		MIMEType: "text/plain",
		Content:  []byte(content),
	}, class)
	require.NoError(t, err)
	return quiz
}

// failingQuizService fails every call.
type failingQuizService struct{}

func (failingQuizService) Parse(context.Context, string, domain.DocumentClass) (*domain.ParseResult, error) {
	return nil, errServiceFailed
}

func (failingQuizService) Import(context.Context, *domain.RawDocument, domain.DocumentClass) (*domain.Quiz, error) {
	return nil, errServiceFailed
}

func (failingQuizService) ImportBatch(_ context.Context, raws []*domain.RawDocument, _ domain.DocumentClass) []driving.ImportResult {
	results := make([]driving.ImportResult, len(raws))
	for i, raw := range raws {
		results[i] = driving.ImportResult{URI: raw.URI, Err: errServiceFailed}
	}
	return results
}

func (failingQuizService) Get(context.Context, string) (*domain.Quiz, error) {
	return nil, errServiceFailed
}

func (failingQuizService) List(context.Context) ([]domain.Quiz, error) {
	return nil, errServiceFailed
}

func (failingQuizService) Delete(context.Context, string) error {
	return errServiceFailed
}

// failingSettingsService fails Get and Save.
type failingSettingsService struct{}

func (failingSettingsService) Get() (*domain.Settings, error) { return nil, errServiceFailed }

func (failingSettingsService) Save(*domain.Settings) error { return errServiceFailed }

func (failingSettingsService) Validate(*domain.Settings) error { return nil }

func (failingSettingsService) GetDefaults() domain.Settings { return domain.DefaultSettings() }
