package platform

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/ideastash/pkg/adapters/fs"
	"github.com/aretw0/ideastash/pkg/adapters/memory"
	"github.com/aretw0/ideastash/pkg/adapters/redis"
	"github.com/aretw0/ideastash/pkg/adapters/sqlite"
	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/entitlement"
	"github.com/aretw0/ideastash/pkg/ideas"
	"github.com/aretw0/ideastash/pkg/prefs"
)

// SQLiteFile is the database name used when no sqlite path is given.
const SQLiteFile = "ideastash.db"

// Open builds and initializes the store selected by opts and wires every
// component on top of it. Nothing is loaded yet; call App.Load.
func Open(ctx context.Context, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	store, err := OpenStore(ctx, o)
	if err != nil {
		return nil, err
	}

	provider, err := entitlement.NewProvider(o.entitlement, store, o.logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	repoOpts := []ideas.Option{ideas.WithLogger(o.logger)}
	if o.seed != nil {
		repoOpts = append(repoOpts, ideas.WithSeed(o.seed))
	}

	return &App{
		Store:        store,
		Ideas:        ideas.New(store, repoOpts...),
		Preferences:  prefs.New(store, o.logger),
		Provider:     provider,
		Subscription: entitlement.NewSubscription(provider, o.logger),
		logger:       o.logger,
	}, nil
}

// OpenStore creates and initializes the store described by o.
func OpenStore(ctx context.Context, o *options) (core.Store, error) {
	if o.store != nil {
		if err := o.store.Initialize(ctx); err != nil {
			return nil, err
		}
		return o.store, nil
	}

	var store core.Store
	switch o.adapter {
	case AdapterFS, "":
		store = newFS(o)
	case AdapterMemory:
		store = memory.NewWithBuffer(o.eventBuffer)
	case AdapterRedis:
		store = redis.New(redis.Config{
			Addr:        o.redisAddr,
			Password:    o.redisPass,
			DB:          o.redisDB,
			Prefix:      o.keyPrefix,
			EventBuffer: o.eventBuffer,
			Logger:      o.logger,
		})
	case AdapterSQLite:
		store = sqlite.New(sqlitePath(o), o.logger)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := store.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize %s store: %w", o.adapter, err)
	}
	o.logger.Debug("store ready", "adapter", o.adapter)
	return store, nil
}

// useTemp reports whether the sandbox applies.
// Read-only stores cannot damage data and bypass it.
func useTemp(o *options) bool {
	return o.forceTemp || (IsDevRun() && o.devSafety && !o.readOnly)
}

func dataDir(o *options) string {
	dir := o.dataDir
	if dir == "" {
		dir = DefaultDataDir()
	}
	return ResolveDataDir(dir, useTemp(o))
}

func newFS(o *options) *fs.Store {
	path := dataDir(o)
	if useTemp(o) && path != filepath.Clean(o.dataDir) {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", o.dataDir, "resolved_path", path)
	}

	return fs.NewStore(fs.Config{
		Path:         path,
		AutoInit:     o.autoInit,
		Versioning:   o.versioning,
		MustExist:    !o.autoInit,
		ReadOnly:     o.readOnly,
		EventBuffer:  o.eventBuffer,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	})
}

func sqlitePath(o *options) string {
	if o.sqlitePath == "" {
		return filepath.Join(dataDir(o), SQLiteFile)
	}
	dir, file := filepath.Split(o.sqlitePath)
	if dir == "" {
		dir = "."
	}
	return filepath.Join(ResolveDataDir(dir, useTemp(o)), file)
}
