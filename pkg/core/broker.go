package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
)

// DefaultEventBuffer is the per-subscriber buffer used when none is configured.
const DefaultEventBuffer = 100

// Broker fans events out to any number of watchers.
// Slow watchers never block publishers: when a watcher buffer is full the event
// is dropped for that watcher and counted.
type Broker struct {
	mu      sync.Mutex
	buffer  int
	nextID  int
	subs    map[int]*subscription
	dropped int
}

type subscription struct {
	pattern string
	ch      chan Event
}

// NewBroker creates a broker. A buffer <= 0 means DefaultEventBuffer.
func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	return &Broker{
		buffer: buffer,
		subs:   make(map[int]*subscription),
	}
}

// Subscribe returns a channel receiving events whose key matches pattern.
// The channel is closed once ctx is done.
func (b *Broker) Subscribe(ctx context.Context, pattern string) (<-chan Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	sub := &subscription{pattern: pattern, ch: make(chan Event, b.buffer)}
	b.subs[id] = sub
	b.mu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		b.remove(id)
		return nil
	})

	return sub.ch, nil
}

// Publish delivers e to every matching subscriber without blocking.
func (b *Broker) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if ok, _ := doublestar.Match(sub.pattern, e.Key); !ok {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			b.dropped++
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Dropped returns how many events were discarded because of full buffers.
func (b *Broker) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Close terminates every subscription.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, sub := range b.subs {
		close(sub.ch)
		delete(b.subs, id)
	}
}

func (b *Broker) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub, ok := b.subs[id]; ok {
		close(sub.ch)
		delete(b.subs, id)
	}
}
