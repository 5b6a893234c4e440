package watch

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
	"github.com/custodia-labs/lessonquiz/internal/core/ports/driving"
	"github.com/custodia-labs/lessonquiz/internal/logger"
)

// DefaultDebounce is how long a file must be quiet before it is imported.
const DefaultDebounce = 500 * time.Millisecond

// Result reports the import of one inbox file.
type Result struct {
	Path string
	Quiz *domain.Quiz
	Err  error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithFilter restricts imports to files for which accept returns true,
// typically the extensions the normaliser registry supports.
func WithFilter(accept func(path string) bool) Option {
	return func(w *Watcher) { w.accept = accept }
}

// WithNotify registers a callback invoked after every import attempt.
func WithNotify(notify func(Result)) Option {
	return func(w *Watcher) { w.notify = notify }
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithExisting imports the files already in the inbox when Run starts.
func WithExisting() Option {
	return func(w *Watcher) { w.existing = true }
}

// Watcher imports documents written to an inbox directory.
type Watcher struct {
	root     string
	class    domain.DocumentClass
	quizzes  driving.QuizService
	accept   func(path string) bool
	notify   func(Result)
	debounce time.Duration
	existing bool

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher for root. It does not start watching until Run.
func New(root string, class domain.DocumentClass, quizzes driving.QuizService, opts ...Option) *Watcher {
	w := &Watcher{
		root:     filepath.Clean(root),
		class:    class,
		quizzes:  quizzes,
		debounce: DefaultDebounce,
		pending:  make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the inbox until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: %w: not a directory", w.root, domain.ErrInvalidInput)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	logger.Info("Watching %s for %s documents", w.root, w.class)

	// Pending timers give up once Run returns.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ready := make(chan string)
	defer w.stopPending()

	if w.existing {
		w.scanExisting(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.shouldImport(event) {
				w.schedule(ctx, event.Name, ready)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)
		case path := <-ready:
			w.importFile(ctx, path)
		}
	}
}

// shouldImport reports whether an event names a file worth importing.
func (w *Watcher) shouldImport(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	return w.eligible(event.Name)
}

func (w *Watcher) eligible(path string) bool {
	if isHidden(w.relative(path)) {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if w.accept != nil && !w.accept(path) {
		logger.Debug("skipping unsupported file %s", path)
		return false
	}
	return true
}

// schedule restarts the quiet timer for path.
func (w *Watcher) schedule(ctx context.Context, path string, ready chan<- string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		select {
		case ready <- path:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) scanExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		logger.Warn("scan %s: %v", w.root, err)
		return
	}
	for _, entry := range entries {
		path := filepath.Join(w.root, entry.Name())
		if w.eligible(path) {
			w.importFile(ctx, path)
		}
	}
}

func (w *Watcher) importFile(ctx context.Context, path string) {
	raw, err := readDocument(path)
	var quiz *domain.Quiz
	if err == nil {
		quiz, err = w.quizzes.Import(ctx, raw, w.class)
	}
	if err != nil {
		logger.Warn("import %s failed: %v", path, err)
	}
	if w.notify != nil {
		w.notify(Result{Path: path, Quiz: quiz, Err: err})
	}
}

func (w *Watcher) relative(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return rel
}

// readDocument loads a file as a RawDocument.
func readDocument(path string) (*domain.RawDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &domain.RawDocument{
		URI:      path,
		FileName: filepath.Base(path),
		MIMEType: DetectMIMEType(path),
		Content:  content,
	}, nil
}

// DetectMIMEType guesses a MIME type from the file extension, without
// parameters. Unknown extensions are application/octet-stream.
func DetectMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "", ".txt", ".text":
		return "text/plain"
	case ".html", ".htm":
		return "text/html"
	case ".md", ".markdown":
		return "text/markdown"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".doc":
		return "application/msword"
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		if base, _, err := mime.ParseMediaType(mt); err == nil {
			return base
		}
		return mt
	}
	return "application/octet-stream"
}

// isHidden reports whether any element of a relative path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." || part == "" {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
