package domain

// StorageBackend selects where imported quizzes are kept.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite persists quizzes in a local SQLite database.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps quizzes for the lifetime of the process only.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the storage backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StorageMemory:
		return true
	default:
		return false
	}
}

// Default setting values.
const (
	DefaultImportConcurrency = 4
	DefaultMaxInputBytes     = 2 << 20
)

// Settings holds the user-configurable application settings.
type Settings struct {
	// Storage configures quiz persistence.
	Storage StorageSettings

	// Import configures document ingestion.
	Import ImportSettings

	// Parser configures the quiz parser.
	Parser ParserSettings
}

// StorageSettings configures quiz persistence.
type StorageSettings struct {
	Backend StorageBackend
	// DataDir is empty for the default location.
	DataDir string
}

// ImportSettings configures document ingestion.
type ImportSettings struct {
	// Concurrency bounds how many documents a batch import parses at once.
	Concurrency int
	// DefaultClass is used when a command does not name a class.
	DefaultClass DocumentClass
}

// ParserSettings configures the quiz parser.
type ParserSettings struct {
	// MaxInputBytes truncates larger inputs. Zero disables the bound.
	MaxInputBytes int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Storage: StorageSettings{Backend: StorageSQLite},
		Import: ImportSettings{
			Concurrency:  DefaultImportConcurrency,
			DefaultClass: ClassVocabulary,
		},
		Parser: ParserSettings{MaxInputBytes: DefaultMaxInputBytes},
	}
}
