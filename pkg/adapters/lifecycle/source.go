// Package lifecycle exposes store change streams as lifecycle sources, so a
// watched data directory can drive a lifecycle-managed application.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/ideastash/pkg/core"
)

type watchSource struct {
	store   core.Watchable
	pattern string
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source emitting the changes of keys matching
// pattern. The subscription is opened by Start and ends with its context.
func NewSource(store core.Watchable, pattern string) lifecycle.Source {
	return &watchSource{
		store:   store,
		pattern: pattern,
		out:     make(chan lifecycle.Event),
	}
}

func (s *watchSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *watchSource) Start(ctx context.Context) error {
	events, err := s.store.Watch(ctx, s.pattern)
	if err != nil {
		return fmt.Errorf("failed to watch %q: %w", s.pattern, err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
