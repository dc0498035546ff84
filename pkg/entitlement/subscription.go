package entitlement

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/introspection"
)

// SubscriptionState is the observable state of a Subscription.
type SubscriptionState struct {
	IsPro     bool `json:"isPro"`
	IsLoading bool `json:"isLoading"`
}

// Subscription tracks the entitlement of the current user on top of a
// Provider. isPro only ever moves from false to true.
type Subscription struct {
	provider Provider
	logger   *slog.Logger

	mu      sync.Mutex
	state   SubscriptionState
	subs    map[int]func(SubscriptionState)
	nextSub int
}

// NewSubscription creates a subscription in the loading state. Call Refresh
// to resolve it.
func NewSubscription(provider Provider, logger *slog.Logger) *Subscription {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Subscription{
		provider: provider,
		logger:   logger,
		state:    SubscriptionState{IsLoading: true},
		subs:     make(map[int]func(SubscriptionState)),
	}
}

// Provider returns the underlying provider.
func (s *Subscription) Provider() Provider {
	return s.provider
}

// Refresh re-reads the entitlement. A failure is logged and returned; the
// subscription still leaves the loading state.
func (s *Subscription) Refresh(ctx context.Context) error {
	pro, err := s.provider.IsEntitled(ctx)
	if err != nil {
		s.logger.Warn("failed to check subscription", "error", err)
		s.update(func(st *SubscriptionState) { st.IsLoading = false })
		return err
	}
	s.update(func(st *SubscriptionState) {
		st.IsPro = st.IsPro || pro
		st.IsLoading = false
	})
	return nil
}

// Offerings returns the provider catalog.
func (s *Subscription) Offerings(ctx context.Context) (Offering, error) {
	return s.provider.Offerings(ctx)
}

// Purchase buys pkg. It returns ErrAlreadyEntitled when the user is already pro.
func (s *Subscription) Purchase(ctx context.Context, pkg Package) (bool, error) {
	if s.Snapshot().IsPro {
		return false, ErrAlreadyEntitled
	}
	ok, err := s.provider.Purchase(ctx, pkg)
	if err != nil {
		return false, err
	}
	if ok {
		s.update(func(st *SubscriptionState) { st.IsPro = true })
	}
	return ok, nil
}

// Restore looks for a prior purchase. A negative result keeps the current state.
func (s *Subscription) Restore(ctx context.Context) (bool, error) {
	restored, err := s.provider.Restore(ctx)
	if err != nil {
		return false, err
	}
	if restored {
		s.update(func(st *SubscriptionState) { st.IsPro = true })
	}
	return restored, nil
}

// Snapshot returns the current state.
func (s *Subscription) Snapshot() SubscriptionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive the state after every change.
func (s *Subscription) Subscribe(fn func(SubscriptionState)) (unsubscribe func()) {
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

func (s *Subscription) update(fn func(*SubscriptionState)) {
	s.mu.Lock()
	fn(&s.state)
	st := s.state
	subs := make([]func(SubscriptionState), 0, len(s.subs))
	for _, f := range s.subs {
		subs = append(subs, f)
	}
	s.mu.Unlock()

	for _, f := range subs {
		f(st)
	}
}

// State implements introspection.Introspectable.
func (s *Subscription) State() any {
	return s.Snapshot()
}

// ComponentType implements introspection.Component.
func (s *Subscription) ComponentType() string {
	return "subscription"
}

var _ introspection.Introspectable = (*Subscription)(nil)
var _ introspection.Component = (*Subscription)(nil)
