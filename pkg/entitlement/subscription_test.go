package entitlement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ideastash/pkg/adapters/memory"
	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/entitlement"
)

func TestSubscription_Purchase(t *testing.T) {
	ctx := context.Background()
	sub := entitlement.NewSubscription(entitlement.NewLocalProvider(memory.New(), nil), nil)
	assert.True(t, sub.Snapshot().IsLoading)

	require.NoError(t, sub.Refresh(ctx))
	assert.Equal(t, entitlement.SubscriptionState{}, sub.Snapshot())

	var seen []entitlement.SubscriptionState
	unsubscribe := sub.Subscribe(func(s entitlement.SubscriptionState) { seen = append(seen, s) })
	defer unsubscribe()

	ok, err := sub.Purchase(ctx, monthly(t))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, sub.Snapshot().IsPro)
	require.Len(t, seen, 1)
	assert.True(t, seen[0].IsPro)

	_, err = sub.Purchase(ctx, monthly(t))
	assert.ErrorIs(t, err, entitlement.ErrAlreadyEntitled)
}

func TestSubscription_StubDeclines(t *testing.T) {
	ctx := context.Background()
	sub := entitlement.NewSubscription(entitlement.NewStubProvider(), nil)
	require.NoError(t, sub.Refresh(ctx))

	ok, err := sub.Purchase(ctx, monthly(t))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, sub.Snapshot().IsPro)
}

func TestSubscription_Restore(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	sub := entitlement.NewSubscription(entitlement.NewLocalProvider(store, nil), nil)
	require.NoError(t, sub.Refresh(ctx))

	restored, err := sub.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, restored)

	require.NoError(t, store.Set(ctx, core.KeyProStatus, []byte("true")))
	restored, err = sub.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, restored)
	assert.True(t, sub.Snapshot().IsPro)

	// a later negative restore does not revoke
	require.NoError(t, store.Delete(ctx, core.KeyProStatus))
	restored, err = sub.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, restored)
	assert.True(t, sub.Snapshot().IsPro)
}

func TestSubscription_RefreshFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Set(ctx, core.KeyProStatus, []byte("{")))
	sub := entitlement.NewSubscription(entitlement.NewLocalProvider(store, nil), nil)

	assert.Error(t, sub.Refresh(ctx))
	assert.False(t, sub.Snapshot().IsLoading)
	assert.False(t, sub.Snapshot().IsPro)
	assert.Equal(t, "subscription", sub.ComponentType())
	assert.Equal(t, sub.Snapshot(), sub.State())
}
