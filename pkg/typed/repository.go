// Package typed binds keys of a core.Store to Go types using JSON documents.
package typed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/ideastash/pkg/core"
)

// Document is a type-safe view over a single key of a store.
// Reads and writes always cover the whole document.
type Document[T any] struct {
	store core.Store
	key   string
}

// NewDocument creates a typed document bound to key.
func NewDocument[T any](store core.Store, key string) *Document[T] {
	return &Document[T]{store: store, key: key}
}

// Load reads and decodes the document.
// found is false (and err nil) when the key does not exist.
// Any other failure is returned as a core.PersistenceError with Op "read".
func (d *Document[T]) Load(ctx context.Context) (value T, found bool, err error) {
	data, err := d.store.Get(ctx, d.key)
	if errors.Is(err, core.ErrNotFound) {
		return value, false, nil
	}
	if err != nil {
		return value, false, &core.PersistenceError{Op: core.OpRead, Key: d.key, Err: err}
	}

	if err := json.Unmarshal(data, &value); err != nil {
		var zero T
		return zero, true, &core.PersistenceError{Op: core.OpRead, Key: d.key, Err: fmt.Errorf("decode: %w", err)}
	}
	return value, true, nil
}

// Save encodes and writes the document, replacing the stored one.
func (d *Document[T]) Save(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &core.PersistenceError{Op: core.OpWrite, Key: d.key, Err: fmt.Errorf("encode: %w", err)}
	}
	if err := d.store.Set(ctx, d.key, data); err != nil {
		return &core.PersistenceError{Op: core.OpWrite, Key: d.key, Err: err}
	}
	return nil
}

// Delete removes the document.
func (d *Document[T]) Delete(ctx context.Context) error {
	if err := d.store.Delete(ctx, d.key); err != nil {
		return &core.PersistenceError{Op: core.OpWrite, Key: d.key, Err: err}
	}
	return nil
}
