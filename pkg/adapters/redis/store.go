// Package redis implements core.Store on a Redis server.
//
// Every document is a plain string value under Prefix+key. Writes are
// announced on a Pub/Sub channel so Watch also sees changes made by other
// processes sharing the same server.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	goredis "github.com/redis/go-redis/v9"

	"github.com/aretw0/ideastash/pkg/core"
)

const (
	// DefaultPrefix namespaces every key written by the store.
	DefaultPrefix = "ideastash:"
	eventsChannel = "events"
)

// Config holds the configuration for the redis store.
type Config struct {
	Addr        string
	Password    string
	DB          int
	Prefix      string
	EventBuffer int
	Logger      *slog.Logger

	// Client, when set, is used instead of dialing Addr. The store does not
	// close a client it did not create.
	Client *goredis.Client
}

// Store implements core.Store and core.Watchable.
type Store struct {
	client *goredis.Client
	owned  bool
	prefix string
	buffer int
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// New creates a redis-backed store. The connection is verified by Initialize.
func New(config Config) *Store {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Prefix == "" {
		config.Prefix = DefaultPrefix
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = core.DefaultEventBuffer
	}

	s := &Store{
		client: config.Client,
		prefix: config.Prefix,
		buffer: config.EventBuffer,
		logger: config.Logger,
	}
	if s.client == nil {
		s.client = goredis.NewClient(&goredis.Options{
			Addr:     config.Addr,
			Password: config.Password,
			DB:       config.DB,
		})
		s.owned = true
	}
	return s
}

// Initialize pings the server.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	var exists *goredis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		exists = pipe.Exists(ctx, s.prefix+key)
		pipe.Set(ctx, s.prefix+key, value, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	s.logger.Debug("document written", "key", key, "bytes", len(value))

	eType := core.EventCreate
	if exists.Val() > 0 {
		eType = core.EventModify
	}
	s.publish(ctx, core.Event{Type: eType, Key: key, Timestamp: time.Now().Unix()})
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, s.prefix+key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	if n > 0 {
		s.logger.Debug("document deleted", "key", key)
		s.publish(ctx, core.Event{Type: core.EventDelete, Key: key, Timestamp: time.Now().Unix()})
	}
	return nil
}

// publish announces a change. A failed announcement does not fail the write.
func (s *Store) publish(ctx context.Context, e core.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		return
	}
	if err := s.client.Publish(ctx, s.prefix+eventsChannel, payload).Err(); err != nil {
		s.logger.Warn("failed to publish change", "key", e.Key, "error", err)
	}
}

// Watch subscribes to change announcements for keys matching pattern.
// The channel is closed when ctx is done.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	sub := s.client.Subscribe(ctx, s.prefix+eventsChannel)
	// wait for the confirmation so no write after Watch returns is missed
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan core.Event, s.buffer)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer sub.Close()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-messages:
				if !ok {
					return nil
				}
				var e core.Event
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					s.logger.Warn("ignoring malformed change event", "error", err)
					continue
				}
				if match, _ := doublestar.Match(pattern, e.Key); !match {
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("redis watcher failed", "error", err)
	}))

	return out, nil
}

// Close closes the client if the store created it.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.owned {
		return nil
	}
	s.closed = true
	return s.client.Close()
}

var _ core.Store = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
