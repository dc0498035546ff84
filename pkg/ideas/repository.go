// Package ideas owns the in-memory idea collection and keeps the persisted
// copy in sync by writing the whole collection through after every mutation.
//
// Mutations follow one path: snapshot the collection, compute the new one,
// persist it, then swap the in-memory copy. The state lock is never held
// while persisting, so two overlapping mutations both start from the same
// snapshot and the later write wins.
package ideas

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/query"
	"github.com/aretw0/ideastash/pkg/typed"
)

// LoadErrorMessage is the State.Error set when the collection cannot be read.
const LoadErrorMessage = "failed to load ideas"

// State is the observable state of the repository.
type State struct {
	Ideas            []core.Idea
	SelectedCategory *core.Category
	SearchQuery      string
	IsLoading        bool
	Error            string
}

func (s State) clone() State {
	out := s
	out.Ideas = cloneIdeas(s.Ideas)
	if s.SelectedCategory != nil {
		c := *s.SelectedCategory
		out.SelectedCategory = &c
	}
	return out
}

// Repository manages the idea collection.
type Repository struct {
	doc    *typed.Document[[]core.Idea]
	seed   SeedFunc
	now    func() time.Time
	newID  func() string
	logger *slog.Logger

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
	writes  int
}

// Option configures a Repository.
type Option func(*Repository)

// WithSeed installs seed when Load finds no persisted collection.
// Without it the repository starts empty.
func WithSeed(seed SeedFunc) Option {
	return func(r *Repository) { r.seed = seed }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDGenerator overrides the id generator (UUIDv7 by default).
func WithIDGenerator(gen func() string) Option {
	return func(r *Repository) { r.newID = gen }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// New creates a repository persisting to store under core.KeyIdeas.
func New(store core.Store, opts ...Option) *Repository {
	r := &Repository{
		doc:    typed.NewDocument[[]core.Idea](store, core.KeyIdeas),
		now:    time.Now,
		newID:  newUUID,
		logger: slog.New(slog.DiscardHandler),
		state:  State{Ideas: []core.Idea{}},
		subs:   make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Load reads the persisted collection into memory.
//
// An absent collection is replaced by the seed (persisted) or left empty.
// A collection that cannot be read or decoded leaves the repository empty
// with State.Error set; the returned error is a core.PersistenceError.
func (r *Repository) Load(ctx context.Context) error {
	r.update(func(s *State) {
		s.IsLoading = true
		s.Error = ""
	})

	ideas, found, err := r.doc.Load(ctx)
	if err == nil && !found && r.seed != nil {
		ideas = cloneIdeas(r.seed(r.stamp()))
		err = r.doc.Save(withReason(ctx, "chore(ideas): install sample ideas"), ideas)
		if err == nil {
			r.logger.Info("installed seed ideas", "count", len(ideas))
		}
	}

	if err != nil {
		r.logger.Warn("failed to load ideas", "error", err)
		r.update(func(s *State) {
			s.Ideas = []core.Idea{}
			s.IsLoading = false
			s.Error = LoadErrorMessage
		})
		return err
	}

	if ideas == nil {
		ideas = []core.Idea{}
	}
	r.update(func(s *State) {
		s.Ideas = ideas
		s.IsLoading = false
	})
	r.logger.Debug("ideas loaded", "count", len(ideas), "found", found)
	return nil
}

// Add creates an idea from fields and prepends it. Fields are stored as given;
// validation is the caller's job (see core.ValidateFields).
func (r *Repository) Add(ctx context.Context, fields core.IdeaFields) (core.Idea, error) {
	now := r.stamp()
	idea := core.Idea{
		ID:          r.newID(),
		Title:       fields.Title,
		Description: fields.Description,
		Category:    fields.Category,
		Tags:        slices.Clone(fields.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if idea.Tags == nil {
		idea.Tags = []string{}
	}

	err := r.mutate(withReason(ctx, "feat(ideas): add "+idea.ID), func(ideas []core.Idea) ([]core.Idea, bool) {
		return append([]core.Idea{idea}, ideas...), true
	})
	if err != nil {
		return core.Idea{}, err
	}
	return idea.Clone(), nil
}

// Update applies patch to the idea with id. Unknown ids are ignored.
func (r *Repository) Update(ctx context.Context, id string, patch core.IdeaPatch) error {
	return r.modify(withReason(ctx, "fix(ideas): update "+id), id, patch.Apply)
}

// Delete removes the idea with id. Unknown ids are ignored.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.mutate(withReason(ctx, "chore(ideas): delete "+id), func(ideas []core.Idea) ([]core.Idea, bool) {
		i := indexOf(ideas, id)
		if i < 0 {
			return nil, false
		}
		return slices.Delete(ideas, i, i+1), true
	})
}

// ToggleFavorite flips the favorite flag of the idea with id.
func (r *Repository) ToggleFavorite(ctx context.Context, id string) error {
	return r.modify(withReason(ctx, "fix(ideas): toggle favorite "+id), id, func(i core.Idea) core.Idea {
		i.IsFavorite = !i.IsFavorite
		return i
	})
}

// ToggleImplemented flips the implemented flag of the idea with id.
func (r *Repository) ToggleImplemented(ctx context.Context, id string) error {
	return r.modify(withReason(ctx, "fix(ideas): toggle implemented "+id), id, func(i core.Idea) core.Idea {
		i.IsImplemented = !i.IsImplemented
		return i
	})
}

// Replace persists ideas as the whole collection. Missing tag lists are
// stored as empty ones.
func (r *Repository) Replace(ctx context.Context, ideas []core.Idea) error {
	next := cloneIdeas(ideas)
	if next == nil {
		next = []core.Idea{}
	}
	for i := range next {
		if next[i].Tags == nil {
			next[i].Tags = []string{}
		}
	}
	return r.mutate(withReason(ctx, "chore(ideas): replace collection"), func([]core.Idea) ([]core.Idea, bool) {
		return next, true
	})
}

// Clear persists an empty collection.
func (r *Repository) Clear(ctx context.Context) error {
	return r.Replace(withReason(ctx, "chore(ideas): clear all ideas"), nil)
}

// SetSelectedCategory sets the category filter; nil selects every category.
func (r *Repository) SetSelectedCategory(category *core.Category) {
	var c *core.Category
	if category != nil {
		v := *category
		c = &v
	}
	r.update(func(s *State) { s.SelectedCategory = c })
}

// SetSearchQuery sets the search filter.
func (r *Repository) SetSearchQuery(q string) {
	r.update(func(s *State) { s.SearchQuery = q })
}

// ClearError resets State.Error.
func (r *Repository) ClearError() {
	r.update(func(s *State) { s.Error = "" })
}

// Get returns a copy of the idea with id.
func (r *Repository) Get(id string) (core.Idea, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := indexOf(r.state.Ideas, id)
	if i < 0 {
		return core.Idea{}, false
	}
	return r.state.Ideas[i].Clone(), true
}

// Snapshot returns a deep copy of the current state.
func (r *Repository) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.clone()
}

// Visible returns the ideas matching the selected category and search query.
func (r *Repository) Visible() []core.Idea {
	s := r.Snapshot()
	return query.Filter(s.Ideas, query.Criteria{Query: s.SearchQuery, Category: s.SelectedCategory})
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs synchronously on the goroutine that changed the state.
func (r *Repository) Subscribe(fn func(State)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// modify replaces the idea with id by fn(idea) and bumps its updatedAt.
func (r *Repository) modify(ctx context.Context, id string, fn func(core.Idea) core.Idea) error {
	return r.mutate(ctx, func(ideas []core.Idea) ([]core.Idea, bool) {
		i := indexOf(ideas, id)
		if i < 0 {
			return nil, false
		}
		prev := ideas[i]
		next := fn(prev.Clone())
		next.ID = prev.ID
		next.CreatedAt = prev.CreatedAt
		next.UpdatedAt = r.stampAfter(prev.UpdatedAt)
		ideas[i] = next
		return ideas, true
	})
}

// mutate runs the write path. fn receives a private copy of the collection
// and reports whether anything changed; unchanged collections are not written.
// On a write failure the in-memory state is left as it was.
func (r *Repository) mutate(ctx context.Context, fn func([]core.Idea) ([]core.Idea, bool)) error {
	r.mu.Lock()
	current := cloneIdeas(r.state.Ideas)
	r.mu.Unlock()

	next, changed := fn(current)
	if !changed {
		return nil
	}

	if err := r.doc.Save(ctx, next); err != nil {
		r.logger.Warn("failed to persist ideas", "error", err)
		return err
	}

	r.mu.Lock()
	r.writes++
	r.mu.Unlock()
	r.update(func(s *State) { s.Ideas = next })
	return nil
}

// update changes the state under the lock and notifies subscribers outside it.
func (r *Repository) update(fn func(*State)) {
	r.mu.Lock()
	fn(&r.state)
	snap := r.state.clone()
	subs := make([]func(State), 0, len(r.subs))
	for _, s := range r.subs {
		subs = append(subs, s)
	}
	r.mu.Unlock()

	for _, s := range subs {
		s(snap.clone())
	}
}

func (r *Repository) stamp() time.Time {
	return r.now().UTC()
}

// stampAfter returns the current time, or prev plus one nanosecond when the
// clock has not moved past prev.
func (r *Repository) stampAfter(prev time.Time) time.Time {
	t := r.stamp()
	if !t.After(prev) {
		t = prev.Add(time.Nanosecond)
	}
	return t
}

func indexOf(ideas []core.Idea, id string) int {
	return slices.IndexFunc(ideas, func(i core.Idea) bool { return i.ID == id })
}

func cloneIdeas(ideas []core.Idea) []core.Idea {
	if ideas == nil {
		return nil
	}
	out := make([]core.Idea, len(ideas))
	for i, idea := range ideas {
		out[i] = idea.Clone()
	}
	return out
}

// withReason attaches a change reason for versioned stores unless the caller
// already supplied one.
func withReason(ctx context.Context, reason string) context.Context {
	if v, ok := ctx.Value(core.ChangeReasonKey).(string); ok && v != "" {
		return ctx
	}
	return context.WithValue(ctx, core.ChangeReasonKey, reason)
}
