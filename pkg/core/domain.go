// Package core holds the IdeaStash domain: ideas, preferences, the persistence
// port and the events emitted by watchable stores.
package core

import "fmt"

// EventType represents the type of change observed on a key.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of a persisted document.
type Event struct {
	Type      EventType `json:"type"`
	Key       string    `json:"key"`
	Timestamp int64     `json:"timestamp"` // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Key)
}

type contextKey string

// ChangeReasonKey is the context key for passing the commit message/change reason
// to versioned stores.
const ChangeReasonKey contextKey = "change_reason"

// Persistence keys, one document each.
const (
	KeyIdeas       = "@ideastash_ideas"
	KeyPreferences = "@ideastash_preferences"
	KeyProStatus   = "@ideastash_pro_status"
)
