package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path          string     `json:"path"`
	Versioning    bool       `json:"versioning"`
	ReadOnly      bool       `json:"read_only"`
	WatcherActive bool       `json:"watcher_active"`
	Watchers      int        `json:"watchers"`
	Writes        int        `json:"writes"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Path:          s.Path,
		Versioning:    s.config.Versioning,
		ReadOnly:      s.config.ReadOnly,
		WatcherActive: s.watcherActive,
		Watchers:      s.watchers,
		Writes:        s.writes,
		LastWrite:     s.lastWrite,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "fs-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if active {
		s.watchers++
	} else if s.watchers > 0 {
		s.watchers--
	}
	s.watcherActive = s.watchers > 0
}
