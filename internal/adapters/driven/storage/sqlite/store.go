package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/lessonquiz/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driven"
)

// DatabaseFile is the file name of the database inside the data directory.
const DatabaseFile = "quizzes.db"

// Store is a SQLite-based storage for imported quizzes.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.lessonquiz/data/quizzes.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lessonquiz", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// QuizStore returns a QuizStore interface backed by this store.
func (s *Store) QuizStore() driven.QuizStore {
	return &quizStore{store: s}
}

// migrate runs all pending migrations and records each applied version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_quizzes.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(script); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ==================== Quiz Store ====================

// quizStore implements driven.QuizStore.
type quizStore struct {
	store *Store
}

var _ driven.QuizStore = (*quizStore)(nil)

// questionRecord is the JSON shape of a stored question.
type questionRecord struct {
	Ordinal       int             `json:"ordinal"`
	QuestionText  string          `json:"questionText"`
	Options       []domain.Option `json:"options"`
	CorrectAnswer domain.Letter   `json:"correctAnswer,omitempty"`
}

// Save stores or replaces a quiz.
func (s *quizStore) Save(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil || quiz.ID == "" {
		return fmt.Errorf("%w: quiz id required", domain.ErrInvalidInput)
	}

	records := make([]questionRecord, len(quiz.Questions))
	for i, q := range quiz.Questions {
		records[i] = questionRecord{
			Ordinal:       q.Ordinal,
			QuestionText:  q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		}
	}
	questionsJSON, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshalling questions: %w", err)
	}

	diagnostics := quiz.Diagnostics
	if diagnostics == nil {
		diagnostics = []domain.Diagnostic{}
	}
	diagnosticsJSON, err := json.Marshal(diagnostics)
	if err != nil {
		return fmt.Errorf("marshalling diagnostics: %w", err)
	}

	createdAt := quiz.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO quizzes (id, title, source_uri, class, passage, questions, diagnostics, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			source_uri = excluded.source_uri,
			class = excluded.class,
			passage = excluded.passage,
			questions = excluded.questions,
			diagnostics = excluded.diagnostics,
			created_at = excluded.created_at
	`, quiz.ID, quiz.Title, quiz.SourceURI, string(quiz.Class), quiz.Passage,
		string(questionsJSON), string(diagnosticsJSON), createdAt.UTC().UnixNano())
	if err != nil {
		return fmt.Errorf("saving quiz: %w", err)
	}
	return nil
}

// Get retrieves a quiz by ID.
func (s *quizStore) Get(ctx context.Context, id string) (*domain.Quiz, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, source_uri, class, passage, questions, diagnostics, created_at
		FROM quizzes WHERE id = ?
	`, id)

	quiz, err := scanQuiz(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

// List returns all quizzes, newest first.
func (s *quizStore) List(ctx context.Context) ([]domain.Quiz, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, source_uri, class, passage, questions, diagnostics, created_at
		FROM quizzes ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := []domain.Quiz{}
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *quiz)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quizzes: %w", err)
	}

	return quizzes, nil
}

// Delete removes a quiz.
func (s *quizStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM quizzes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting quiz: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting quiz: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (*domain.Quiz, error) {
	var quiz domain.Quiz
	var class, questionsJSON, diagnosticsJSON string
	var createdAt int64
	if err := row.Scan(&quiz.ID, &quiz.Title, &quiz.SourceURI, &class, &quiz.Passage,
		&questionsJSON, &diagnosticsJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning quiz: %w", err)
	}

	var records []questionRecord
	if err := json.Unmarshal([]byte(questionsJSON), &records); err != nil {
		return nil, fmt.Errorf("unmarshaling questions: %w", err)
	}
	quiz.Questions = make([]domain.ParsedQuestion, len(records))
	for i, r := range records {
		quiz.Questions[i] = domain.ParsedQuestion{
			Ordinal:       r.Ordinal,
			QuestionText:  r.QuestionText,
			Options:       r.Options,
			CorrectAnswer: r.CorrectAnswer,
		}
	}

	if err := json.Unmarshal([]byte(diagnosticsJSON), &quiz.Diagnostics); err != nil {
		return nil, fmt.Errorf("unmarshaling diagnostics: %w", err)
	}
	if len(quiz.Diagnostics) == 0 {
		quiz.Diagnostics = nil
	}

	quiz.Class = domain.DocumentClass(class)
	quiz.CreatedAt = time.Unix(0, createdAt).UTC()
	return &quiz, nil
}
