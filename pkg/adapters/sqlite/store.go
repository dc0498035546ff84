// Package sqlite implements core.Store on a single SQLite file using the pure
// Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aretw0/ideastash/pkg/core"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// Open opens (or creates) a SQLite database at path with WAL journal mode.
func Open(path string) (*sql.DB, error) {
	// the parent directory must exist or the driver fails with SQLITE_CANTOPEN
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Store implements core.Store on a kv table.
type Store struct {
	path   string
	db     *sql.DB
	logger *slog.Logger
}

// New creates a store for the database file at path. The file is opened by Initialize.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{path: path, logger: logger}
}

// Initialize opens the database and creates the schema.
func (s *Store) Initialize(ctx context.Context) error {
	if s.db != nil {
		return nil
	}
	db, err := Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite %s: %w", s.path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db
	s.logger.Debug("sqlite store ready", "path", s.path)
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.db == nil {
		return nil, errNotInitialized
	}
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.db == nil {
		return errNotInitialized
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	s.logger.Debug("document written", "key", key, "bytes", len(value))
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.db == nil {
		return errNotInitialized
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, errNotInitialized
	}
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

var errNotInitialized = errors.New("sqlite store not initialized")

var _ core.Store = (*Store)(nil)
