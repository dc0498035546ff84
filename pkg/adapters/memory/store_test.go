package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/ideastash/pkg/adapters/memory"
	"github.com/aretw0/ideastash/pkg/adapters/storetest"
	"github.com/aretw0/ideastash/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) core.Store {
		return memory.New()
	})
}

func TestStore_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := memory.New()
	events, err := s.Watch(ctx, "@ideastash_*")
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, core.KeyIdeas, []byte("[]")))
	require.NoError(t, s.Set(ctx, core.KeyIdeas, []byte("[1]")))
	require.NoError(t, s.Delete(ctx, core.KeyIdeas))
	require.NoError(t, s.Set(ctx, "other", []byte("x")))

	want := []core.EventType{core.EventCreate, core.EventModify, core.EventDelete}
	for _, w := range want {
		select {
		case e := <-events:
			assert.Equal(t, w, e.Type)
			assert.Equal(t, core.KeyIdeas, e.Key)
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for %s", w)
		}
	}
	assert.Len(t, events, 0)
}

func TestStore_FailWrites(t *testing.T) {
	s := memory.New()
	s.FailWrites = errors.New("boom")
	err := s.Set(context.Background(), "k", []byte("v"))
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 0, s.Keys())
}
