// Package memory implements core.Store in process memory.
// Nothing survives the process; it backs tests and the no-persistence mode.
package memory

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/aretw0/ideastash/pkg/core"
)

// Store is a map-backed core.Store that also implements core.Watchable.
type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	broker *core.Broker

	// FailWrites, when set, makes Set and Delete return it. Used to simulate
	// persistence write failures.
	FailWrites error
}

// New creates an empty in-memory store.
func New() *Store {
	return NewWithBuffer(0)
}

// NewWithBuffer creates an empty store whose watchers use the given buffer size.
func NewWithBuffer(buffer int) *Store {
	return &Store{
		data:   make(map[string][]byte),
		broker: core.NewBroker(buffer),
	}
}

func (s *Store) Initialize(ctx context.Context) error { return nil }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return bytes.Clone(v), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if s.FailWrites != nil {
		s.mu.Unlock()
		return s.FailWrites
	}
	_, existed := s.data[key]
	s.data[key] = bytes.Clone(value)
	s.mu.Unlock()

	eType := core.EventCreate
	if existed {
		eType = core.EventModify
	}
	s.broker.Publish(core.Event{Type: eType, Key: key, Timestamp: time.Now().Unix()})
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if s.FailWrites != nil {
		s.mu.Unlock()
		return s.FailWrites
	}
	_, existed := s.data[key]
	delete(s.data, key)
	s.mu.Unlock()

	if existed {
		s.broker.Publish(core.Event{Type: core.EventDelete, Key: key, Timestamp: time.Now().Unix()})
	}
	return nil
}

// Watch implements core.Watchable.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	return s.broker.Subscribe(ctx, pattern)
}

// Keys returns the number of stored keys.
func (s *Store) Keys() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *Store) Close() error {
	s.broker.Close()
	return nil
}

var _ core.Store = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
