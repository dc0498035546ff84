// Package storetest provides a compliance suite for core.Store implementations.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ideastash/pkg/core"
)

// Run exercises the core.Store contract. makeStore must return a clean,
// isolated store; Run initializes it and closes it when done.
func Run(t *testing.T, makeStore func(t *testing.T) core.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()
	require.NoError(t, s.Initialize(ctx))
	t.Cleanup(func() { _ = s.Close() })

	t.Run("Missing Key", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("Set And Get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, core.KeyIdeas, []byte(`[{"id":"1"}]`)))
		got, err := s.Get(ctx, core.KeyIdeas)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, string(got))
	})

	t.Run("Whole Document Replace", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, core.KeyPreferences, []byte(`{"sortOrder":"newest","viewMode":"list"}`)))
		require.NoError(t, s.Set(ctx, core.KeyPreferences, []byte(`{}`)))
		got, err := s.Get(ctx, core.KeyPreferences)
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(got))
	})

	t.Run("Keys Are Independent", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, core.KeyProStatus, []byte("true")))
		got, err := s.Get(ctx, core.KeyIdeas)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, string(got))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, core.KeyProStatus))
		_, err := s.Get(ctx, core.KeyProStatus)
		assert.ErrorIs(t, err, core.ErrNotFound)

		// absent key
		assert.NoError(t, s.Delete(ctx, core.KeyProStatus))
	})

	t.Run("Returned Bytes Are Not Aliased", func(t *testing.T) {
		value := []byte("abc")
		require.NoError(t, s.Set(ctx, "alias", value))
		value[0] = 'x'
		got, err := s.Get(ctx, "alias")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))
	})
}
