package fs

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/ideastash/pkg/core"
)

// debounceDelay coalesces the burst of events produced by one atomic write.
const debounceDelay = 50 * time.Millisecond

type watchWorker struct {
	*worker.BaseWorker
	store     *Store
	pattern   string
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(store *Store, pattern string, events chan core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		store:      store,
		pattern:    pattern,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !doublestar.ValidatePattern(w.pattern) {
		return fmt.Errorf("invalid watch pattern %q", w.pattern)
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(w.store.Path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.store.Path, err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(debounceDelay)
	w.store.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
			"pattern":           w.pattern,
		}
	})
}

// run is the worker body. It owns the events channel and closes it on exit.
func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.store.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			// stack only at debug level
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.loop(ctx)
	w.cancel()

	// All pending timers must be done before the channel is closed.
	w.debouncer.stopAndWait(5 * time.Second)
	close(w.events)

	return err
}

func (w *watchWorker) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.process(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.store.config.Logger.Error("fsnotify error", "error", wErr)
			if w.store.config.ErrorHandler != nil {
				w.store.config.ErrorHandler(wErr)
			}
		}
	}
}

// process filters, maps and debounces one filesystem event.
func (w *watchWorker) process(ctx context.Context, event fsnotify.Event) {
	key, ok := w.store.keyFor(event.Name)
	if !ok {
		return
	}
	if match, _ := doublestar.Match(w.pattern, key); !match {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}
	w.store.config.Logger.Debug("event received", "key", key, "op", event.Op.String())

	w.debouncer.add(core.Event{Type: eType, Key: key, Timestamp: time.Now().Unix()}, func(e core.Event) {
		// the channel may already be closed if stopAndWait timed out
		defer func() { _ = recover() }()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}

// debouncer delivers at most one event per key per quiet period.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*pendingEvent
	wg      sync.WaitGroup
	stopped bool
}

type pendingEvent struct {
	event core.Event
	fn    func(core.Event)
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]*pendingEvent),
	}
}

func (d *debouncer) add(e core.Event, fn func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if p, ok := d.pending[e.Key]; ok && p.timer.Stop() {
		p.event = merge(p.event, e)
		p.fn = fn
		p.timer.Reset(d.delay)
		return
	}

	p := &pendingEvent{event: e, fn: fn}
	d.wg.Add(1)
	p.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		if d.pending[e.Key] == p {
			delete(d.pending, e.Key)
		}
		ev, cb := p.event, p.fn
		d.mu.Unlock()
		cb(ev)
	})
	d.pending[e.Key] = p
}

// merge keeps CREATE when a new file is written again within the window;
// otherwise the latest type wins.
func merge(prev, next core.Event) core.Event {
	if prev.Type == core.EventCreate && next.Type == core.EventModify {
		next.Type = core.EventCreate
	}
	return next
}

func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, p := range d.pending {
		if p.timer.Stop() {
			d.wg.Done()
		}
		delete(d.pending, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
