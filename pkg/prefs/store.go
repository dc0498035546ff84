// Package prefs persists the user preferences record.
package prefs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/typed"
)

// Store holds the preferences in memory and writes the whole record through
// on every change.
type Store struct {
	doc    *typed.Document[core.Preferences]
	logger *slog.Logger

	mu      sync.Mutex
	prefs   core.Preferences
	loadErr error
	subs    map[int]func(core.Preferences)
	nextSub int
}

// New creates a preferences store persisting under core.KeyPreferences.
func New(store core.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		doc:    typed.NewDocument[core.Preferences](store, core.KeyPreferences),
		logger: logger,
		prefs:  core.DefaultPreferences(),
		subs:   make(map[int]func(core.Preferences)),
	}
}

// Load reads the persisted record. An absent record yields the defaults.
// An unreadable one also yields the defaults; the failure is returned and
// kept in LoadError but is not fatal.
func (s *Store) Load(ctx context.Context) error {
	p, found, err := s.doc.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load preferences, using defaults", "error", err)
		s.set(core.DefaultPreferences(), err)
		return err
	}
	if !found {
		p = core.DefaultPreferences()
	}
	s.set(p.Normalize(), nil)
	return nil
}

// LoadError returns the failure of the last Load, if any.
func (s *Store) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Get returns the current preferences.
func (s *Store) Get() core.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// SetOnboardingComplete records that onboarding was completed.
func (s *Store) SetOnboardingComplete(ctx context.Context) error {
	return s.save(ctx, func(p *core.Preferences) { p.HasCompletedOnboarding = true })
}

// SetSortOrder changes the sort order.
func (s *Store) SetSortOrder(ctx context.Context, order core.SortOrder) error {
	if !order.Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidSortOrder, order)
	}
	return s.save(ctx, func(p *core.Preferences) { p.SortOrder = order })
}

// SetViewMode changes the view mode.
func (s *Store) SetViewMode(ctx context.Context, mode core.ViewMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", core.ErrInvalidViewMode, mode)
	}
	return s.save(ctx, func(p *core.Preferences) { p.ViewMode = mode })
}

// Replace persists p as the whole record.
func (s *Store) Replace(ctx context.Context, p core.Preferences) error {
	return s.save(ctx, func(cur *core.Preferences) { *cur = p.Normalize() })
}

// Reset restores the defaults.
func (s *Store) Reset(ctx context.Context) error {
	return s.Replace(ctx, core.DefaultPreferences())
}

// Subscribe registers fn to receive the record after every change.
func (s *Store) Subscribe(fn func(core.Preferences)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) save(ctx context.Context, change func(*core.Preferences)) error {
	next := s.Get()
	change(&next)

	ctx = context.WithValue(ctx, core.ChangeReasonKey, "chore(prefs): update preferences")
	if err := s.doc.Save(ctx, next); err != nil {
		s.logger.Warn("failed to persist preferences", "error", err)
		return err
	}
	s.set(next, nil)
	return nil
}

func (s *Store) set(p core.Preferences, loadErr error) {
	s.mu.Lock()
	s.prefs = p
	s.loadErr = loadErr
	subs := make([]func(core.Preferences), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(p)
	}
}
