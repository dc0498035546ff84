package core

import "context"

// Store defines the contract of the persistence adapter: a key-value store of
// serialized documents. Writes replace the whole document.
// Adhering to this interface keeps the repositories independent of the
// underlying storage mechanism (files, Redis, SQLite, memory).
type Store interface {
	// Initialize ensures the underlying storage is ready (e.g. create directories, schema).
	Initialize(ctx context.Context) error

	// Get returns the document stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the document stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// Watchable is implemented by stores that can report changes of their keys.
type Watchable interface {
	// Watch streams events for keys matching the glob pattern until ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
