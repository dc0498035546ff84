package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lcadapter "github.com/aretw0/ideastash/pkg/adapters/lifecycle"
	"github.com/aretw0/ideastash/pkg/adapters/memory"
	"github.com/aretw0/ideastash/pkg/core"
)

func TestSource_BridgesEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := memory.New()
	src := lcadapter.NewSource(store, core.KeyIdeas)
	require.NoError(t, src.Start(ctx))

	require.NoError(t, store.Set(ctx, core.KeyPreferences, []byte("{}")))
	require.NoError(t, store.Set(ctx, core.KeyIdeas, []byte("[]")))

	select {
	case e := <-src.Events():
		assert.Equal(t, "CREATE @ideastash_ideas", e.String())
		ev, ok := e.(core.Event)
		require.True(t, ok)
		assert.Equal(t, core.EventCreate, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-src.Events():
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestSource_InvalidPattern(t *testing.T) {
	src := lcadapter.NewSource(memory.New(), "[")
	assert.Error(t, src.Start(context.Background()))
}
