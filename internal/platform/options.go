package platform

import (
	"log/slog"

	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/ideas"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterMemory = "memory"
	AdapterRedis  = "redis"
	AdapterSQLite = "sqlite"
)

// options holds the internal configuration of an App.
type options struct {
	store        core.Store
	logger       *slog.Logger
	adapter      string
	dataDir      string
	sqlitePath   string
	redisAddr    string
	redisPass    string
	redisDB      int
	keyPrefix    string
	versioning   bool
	autoInit     bool
	readOnly     bool
	forceTemp    bool
	devSafety    bool
	eventBuffer  int
	entitlement  string
	seed         ideas.SeedFunc
	errorHandler func(error)
}

// Option configures Open.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		adapter:     AdapterFS,
		autoInit:    true,
		devSafety:   true,
		entitlement: "local",
	}
}

// WithStore injects a ready store. Adapter options are then ignored.
func WithStore(store core.Store) Option {
	return func(o *options) { o.store = store }
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithAdapter selects the storage adapter by name. Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) { o.adapter = name }
}

// WithDataDir sets the directory of the fs adapter (and the default location
// of the sqlite database).
func WithDataDir(dir string) Option {
	return func(o *options) { o.dataDir = dir }
}

// WithSQLitePath sets the database file of the sqlite adapter.
func WithSQLitePath(path string) Option {
	return func(o *options) { o.sqlitePath = path }
}

// WithRedis sets the connection of the redis adapter.
func WithRedis(addr, password string, db int) Option {
	return func(o *options) {
		o.redisAddr = addr
		o.redisPass = password
		o.redisDB = db
	}
}

// WithKeyPrefix sets the key prefix of the redis adapter.
func WithKeyPrefix(prefix string) Option {
	return func(o *options) { o.keyPrefix = prefix }
}

// WithVersioning commits every write of the fs adapter to git.
func WithVersioning(enabled bool) Option {
	return func(o *options) { o.versioning = enabled }
}

// WithAutoInit controls whether a missing data directory (and git repository,
// when versioning) is created. Enabled by default.
func WithAutoInit(auto bool) Option {
	return func(o *options) { o.autoInit = auto }
}

// WithReadOnly makes every write fail with core.ErrReadOnly. The dev
// sandbox is bypassed in this mode.
func WithReadOnly(enabled bool) Option {
	return func(o *options) { o.readOnly = enabled }
}

// WithForceTemp re-roots the data directory into the system temp directory.
func WithForceTemp(force bool) Option {
	return func(o *options) { o.forceTemp = force }
}

// WithDevSafety controls the sandbox applied under `go run` and `go test`.
// Enabled by default.
func WithDevSafety(enabled bool) Option {
	return func(o *options) { o.devSafety = enabled }
}

// WithEventBuffer sets the per-watcher buffer. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) { o.eventBuffer = size }
}

// WithEntitlement selects the entitlement provider ("local" or "stub").
func WithEntitlement(kind string) Option {
	return func(o *options) { o.entitlement = kind }
}

// WithSeed installs seed on the first load. By default the journal starts empty.
func WithSeed(seed ideas.SeedFunc) Option {
	return func(o *options) { o.seed = seed }
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// (e.g. permission denied) which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) { o.errorHandler = fn }
}
