package ideastash

import (
	"context"
	"log/slog"

	"github.com/aretw0/ideastash/internal/platform"
	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/ideas"
)

// --- Types ---

// App is a wired journal: ideas, preferences and subscription over one store.
type App = platform.App

// Idea is a single journal entry.
type Idea = core.Idea

// IdeaFields are the user supplied fields of a new idea.
type IdeaFields = core.IdeaFields

// IdeaPatch is a partial update of an idea.
type IdeaPatch = core.IdeaPatch

// Category is one of the fixed idea categories.
type Category = core.Category

// Preferences is the user preferences record.
type Preferences = core.Preferences

// Store is the key-value port every adapter implements.
type Store = core.Store

// SeedFunc builds the ideas installed on first run.
type SeedFunc = ideas.SeedFunc

// ErrWatchUnsupported is returned by App.Watch and App.Source when the store
// cannot report changes.
var ErrWatchUnsupported = platform.ErrWatchUnsupported

// --- Configuration ---

// Option defines a functional option for configuring Open.
type Option = platform.Option

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = platform.AdapterFS
	AdapterMemory = platform.AdapterMemory
	AdapterRedis  = platform.AdapterRedis
	AdapterSQLite = platform.AdapterSQLite
)

// WithAdapter selects the storage adapter (fs, memory, redis or sqlite).
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithStore injects an already built store; adapter options are ignored.
func WithStore(store Store) Option {
	return platform.WithStore(store)
}

// WithLogger sets the logger used by every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithDataDir sets the directory of the fs adapter and the default sqlite file.
func WithDataDir(dir string) Option {
	return platform.WithDataDir(dir)
}

// WithSQLitePath sets the database file of the sqlite adapter.
func WithSQLitePath(path string) Option {
	return platform.WithSQLitePath(path)
}

// WithRedis sets the connection of the redis adapter.
func WithRedis(addr, password string, db int) Option {
	return platform.WithRedis(addr, password, db)
}

// WithKeyPrefix namespaces the keys of the redis adapter.
func WithKeyPrefix(prefix string) Option {
	return platform.WithKeyPrefix(prefix)
}

// WithVersioning commits every fs write to git.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithAutoInit creates the data directory when missing.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithReadOnly rejects every write to the fs adapter.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp redirects the data directory to a temporary one.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety toggles the temporary data directory used under go run and go test.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithEventBuffer sets the channel size of Watch subscriptions.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithEntitlement selects the entitlement provider (local or stub).
func WithEntitlement(kind string) Option {
	return platform.WithEntitlement(kind)
}

// WithSeed installs seed when no ideas have ever been persisted.
func WithSeed(seed SeedFunc) Option {
	return platform.WithSeed(seed)
}

// WithWatcherErrorHandler receives errors raised by background watchers.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// Open wires an App over the configured store. The caller loads it with
// App.Load and releases it with App.Close.
func Open(ctx context.Context, opts ...Option) (*App, error) {
	return platform.Open(ctx, opts...)
}

// SampleIdeas is the seed of the ideastash command.
var SampleIdeas SeedFunc = ideas.SampleSet

// --- Safety & Utils ---

// ResolveDataDir determines the directory actually used for dir.
func ResolveDataDir(dir string, forceTemp bool) string {
	return platform.ResolveDataDir(dir, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindDataDir looks upwards from startDir for a .ideastash directory.
func FindDataDir(startDir string) (string, error) {
	return platform.FindDataDir(startDir)
}

// DefaultDataDir returns the nearest project data directory, else ~/.ideastash.
func DefaultDataDir() string {
	return platform.DefaultDataDir()
}
