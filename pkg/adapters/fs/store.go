// Package fs implements core.Store on the local filesystem: one JSON file per
// key, atomic replace on write, optional git history and fsnotify watching.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/git"
)

// FileExt is the extension of every document file.
const FileExt = ".json"

// staleTempAge is how old an orphaned temp file must be before Initialize removes it.
const staleTempAge = 10 * time.Minute

// Config holds the configuration for the filesystem store.
type Config struct {
	Path         string
	AutoInit     bool // git init when Versioning is on and Path is not a repository
	Versioning   bool // commit every write to git
	MustExist    bool
	ReadOnly     bool
	EventBuffer  int
	Logger       *slog.Logger
	ErrorHandler func(error) // called for watcher and commit failures
}

// Store implements core.Store and core.Watchable on a directory.
type Store struct {
	Path   string
	git    *git.Client
	config Config

	mu            sync.RWMutex
	watchers      int
	watcherActive bool
	writes        int
	lastWrite     *time.Time
}

// NewStore creates a new filesystem-backed store.
func NewStore(config Config) *Store {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = core.DefaultEventBuffer
	}
	return &Store{
		Path:   config.Path,
		git:    git.NewClient(config.Path, "", config.Logger),
		config: config,
	}
}

// Initialize prepares the directory (and git repository when versioning).
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat data path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Path)
		}
	} else if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if s.config.ReadOnly {
		return nil
	}

	if n, err := removeStaleTemps(s.Path, staleTempAge); err == nil && n > 0 {
		s.config.Logger.Info("removed stale temp files", "count", n, "path", s.Path)
	}

	if !s.config.Versioning {
		return nil
	}

	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}

	wasNewRepo := false
	if !s.git.IsRepo() {
		if !s.config.AutoInit {
			return fmt.Errorf("path is not a git repository: %s", s.Path)
		}
		if err := s.git.Init(); err != nil {
			return fmt.Errorf("failed to git init: %w", err)
		}
		wasNewRepo = true
	}

	mod, err := s.ensureIgnore()
	if err != nil {
		return fmt.Errorf("failed to ensure .gitignore: %w", err)
	}

	if mod && wasNewRepo {
		if err := s.git.Stage(".gitignore"); err != nil {
			return fmt.Errorf("failed to add .gitignore: %w", err)
		}
		if err := s.git.Commit(git.FormatCommitMessage(git.CommitTypeChore, "", "configure ignores", "")); err != nil {
			return fmt.Errorf("failed to commit .gitignore: %w", err)
		}
	}

	return nil
}

// ensureIgnore keeps the lock and temp files out of the history.
func (s *Store) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(s.Path, ".gitignore")
	wanted := []string{s.git.LockName(), TempFilePrefix + "*"}

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	present := make(map[string]bool)
	for _, line := range strings.Split(string(content), "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var missing []string
	for _, w := range wanted {
		if !present[w] {
			missing = append(missing, w)
		}
	}
	if len(missing) == 0 {
		return false, nil
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}
	if _, err := f.WriteString(strings.Join(missing, "\n") + "\n"); err != nil {
		return false, err
	}
	return true, nil
}

// Get reads the document stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filename, err := s.filename(key)
	if err != nil {
		return nil, err
	}
	return readFile(filename)
}

// Set atomically replaces the document stored under key and, when versioning,
// commits it. The commit message comes from core.ChangeReasonKey if present.
// Once the file is in place the write has happened: a failed commit is reported
// to the ErrorHandler and logged, never returned.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	filename, err := s.filename(key)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(filename, value, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	s.recordWrite()
	s.config.Logger.Debug("document written", "key", key, "bytes", len(value))

	s.commitOrReport(ctx, filename, "update "+key)
	return nil
}

// Delete removes the document stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	filename, err := s.filename(key)
	if err != nil {
		return err
	}

	if err := os.Remove(filename); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.recordWrite()
	s.config.Logger.Debug("document deleted", "key", key)

	s.commitOrReport(ctx, filename, "delete "+key)
	return nil
}

// Watch streams changes of keys matching pattern, including changes made by
// other processes. The channel is closed when ctx is done.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	events := make(chan core.Event, s.config.EventBuffer)
	w := newWatchWorker(s, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

// Close implements core.Store. Watchers stop with their contexts.
func (s *Store) Close() error { return nil }

func (s *Store) commitOrReport(ctx context.Context, filename, subject string) {
	err := s.commit(ctx, filename, subject)
	if err == nil {
		return
	}
	s.config.Logger.Warn("document saved but not committed", "file", filepath.Base(filename), "error", err)
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}

func (s *Store) commit(ctx context.Context, filename, subject string) error {
	if !s.config.Versioning {
		return nil
	}

	unlock, err := s.git.Lock(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	rel := filepath.Base(filename)
	if err := s.git.Stage(rel); err != nil {
		return fmt.Errorf("failed to git add: %w", err)
	}
	changed, err := s.git.HasStagedChanges(rel)
	if err != nil {
		return fmt.Errorf("failed to git status: %w", err)
	}
	if !changed {
		return nil
	}

	msg := git.FormatCommitMessage(git.CommitTypeDocs, "data", subject, "")
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
		msg = git.AppendFooter(val)
	}
	if err := s.git.Commit(msg); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}
	return nil
}

// filename maps a key to its file. Keys are path-escaped so every key lives
// directly inside the data directory.
func (s *Store) filename(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty key")
	}
	return filepath.Join(s.Path, url.PathEscape(key)+FileExt), nil
}

// keyFor is the inverse of filename for watcher events.
func (s *Store) keyFor(path string) (string, bool) {
	if filepath.Dir(path) != filepath.Clean(s.Path) {
		return "", false
	}
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || !strings.HasSuffix(base, FileExt) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimSuffix(base, FileExt))
	if err != nil {
		return "", false
	}
	return key, true
}

func (s *Store) recordWrite() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.writes++
	s.lastWrite = &now
}

var _ core.Store = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
