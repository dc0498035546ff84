package ideas

import "github.com/aretw0/introspection"

// RepositoryState is the introspection view of the repository.
type RepositoryState struct {
	Ideas       int    `json:"ideas"`
	Loading     bool   `json:"loading"`
	Error       string `json:"error,omitempty"`
	Subscribers int    `json:"subscribers"`
	Writes      int    `json:"writes"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RepositoryState{
		Ideas:       len(r.state.Ideas),
		Loading:     r.state.IsLoading,
		Error:       r.state.Error,
		Subscribers: len(r.subs),
		Writes:      r.writes,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "idea-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
