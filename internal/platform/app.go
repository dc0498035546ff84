package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/lifecycle"

	lcadapter "github.com/aretw0/ideastash/pkg/adapters/lifecycle"
	"github.com/aretw0/ideastash/pkg/archive"
	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/entitlement"
	"github.com/aretw0/ideastash/pkg/ideas"
	"github.com/aretw0/ideastash/pkg/prefs"
)

// ErrWatchUnsupported is returned when the store cannot report changes.
var ErrWatchUnsupported = errors.New("store does not support watching")

// App is the wired journal: one store shared by every component.
type App struct {
	Store        core.Store
	Ideas        *ideas.Repository
	Preferences  *prefs.Store
	Provider     entitlement.Provider
	Subscription *entitlement.Subscription

	logger *slog.Logger
}

// Load reads ideas and preferences and resolves the subscription.
// Failures are not fatal: every component falls back to its defaults and the
// failures are returned joined.
func (a *App) Load(ctx context.Context) error {
	var errs []error
	if err := a.Ideas.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.Preferences.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.Subscription.Refresh(ctx); err != nil {
		errs = append(errs, err)
	}
	err := errors.Join(errs...)
	if err != nil {
		a.logger.Warn("journal loaded with errors", "error", err)
	}
	return err
}

// Export writes ideas and preferences to w in format.
func (a *App) Export(w io.Writer, format string) error {
	p := a.Preferences.Get()
	snap := archive.New(a.Ideas.Snapshot().Ideas, &p, time.Now())
	return archive.Export(w, format, snap)
}

// Import replaces the journal with the archive read from r.
// Preferences are replaced only when the archive carries them.
func (a *App) Import(ctx context.Context, r io.Reader, format string) (archive.Snapshot, error) {
	snap, err := archive.Import(r, format)
	if err != nil {
		return archive.Snapshot{}, err
	}
	ctx = context.WithValue(ctx, core.ChangeReasonKey, fmt.Sprintf("chore(ideas): import %d ideas", len(snap.Ideas)))
	if err := a.Ideas.Replace(ctx, snap.Ideas); err != nil {
		return archive.Snapshot{}, err
	}
	if snap.Preferences != nil {
		if err := a.Preferences.Replace(ctx, *snap.Preferences); err != nil {
			return archive.Snapshot{}, err
		}
	}
	a.logger.Info("archive imported", "ideas", len(snap.Ideas))
	return snap, nil
}

// Clear deletes every idea and restores the default preferences.
func (a *App) Clear(ctx context.Context) error {
	if err := a.Ideas.Clear(ctx); err != nil {
		return err
	}
	return a.Preferences.Reset(ctx)
}

// Watch streams changes of keys matching pattern, if the store supports it.
func (a *App) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	w, ok := a.Store.(core.Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx, pattern)
}

// Source exposes the changes of keys matching pattern as a lifecycle.Source.
func (a *App) Source(pattern string) (lifecycle.Source, error) {
	w, ok := a.Store.(core.Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return lcadapter.NewSource(w, pattern), nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}
