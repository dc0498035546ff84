package entitlement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ideastash/pkg/adapters/memory"
	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/entitlement"
)

func monthly(t *testing.T) entitlement.Package {
	t.Helper()
	pkg, ok := entitlement.DefaultCatalog().Package("monthly")
	require.True(t, ok)
	return pkg
}

func TestDefaultCatalog(t *testing.T) {
	o := entitlement.DefaultCatalog()
	assert.Equal(t, "default", o.Identifier)
	assert.Equal(t, "Default premium plans", o.ServerDescription)
	require.Len(t, o.AvailablePackages, 2)

	annual, ok := o.Package("annual")
	require.True(t, ok)
	assert.Equal(t, entitlement.PackageAnnual, annual.PackageType)
	assert.Equal(t, "$39.99/yr", annual.StoreProduct.LocalizedPriceString)
	assert.Equal(t, "com.ideastash.premium.annual", annual.StoreProduct.ProductID)

	_, ok = o.Package("lifetime")
	assert.False(t, ok)

	// callers cannot alter the catalog
	o.AvailablePackages[0].Identifier = "changed"
	assert.Equal(t, "monthly", entitlement.DefaultCatalog().AvailablePackages[0].Identifier)
}

func TestLocalProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("Purchase Then Entitled", func(t *testing.T) {
		store := memory.New()
		p := entitlement.NewLocalProvider(store, nil)

		pro, err := p.IsEntitled(ctx)
		require.NoError(t, err)
		assert.False(t, pro)

		ok, err := p.Purchase(ctx, monthly(t))
		require.NoError(t, err)
		assert.True(t, ok)

		pro, err = p.IsEntitled(ctx)
		require.NoError(t, err)
		assert.True(t, pro)

		raw, err := store.Get(ctx, core.KeyProStatus)
		require.NoError(t, err)
		assert.Equal(t, "true", string(raw))

		info, err := p.CustomerInfo(ctx)
		require.NoError(t, err)
		assert.True(t, info.IsPremium())
		assert.Equal(t, entitlement.EntitlementInfo{Identifier: "premium", IsActive: true, WillRenew: true}, info.Active["premium"])
	})

	t.Run("Restore On Fresh Store", func(t *testing.T) {
		p := entitlement.NewLocalProvider(memory.New(), nil)
		restored, err := p.Restore(ctx)
		require.NoError(t, err)
		assert.False(t, restored)

		info, err := p.CustomerInfo(ctx)
		require.NoError(t, err)
		assert.Empty(t, info.Active)
	})

	t.Run("Restore After Purchase Elsewhere", func(t *testing.T) {
		store := memory.New()
		require.NoError(t, store.Set(ctx, core.KeyProStatus, []byte("true")))
		restored, err := entitlement.NewLocalProvider(store, nil).Restore(ctx)
		require.NoError(t, err)
		assert.True(t, restored)
	})

	t.Run("Unknown Package", func(t *testing.T) {
		store := memory.New()
		p := entitlement.NewLocalProvider(store, nil)
		ok, err := p.Purchase(ctx, entitlement.Package{Identifier: "lifetime"})
		assert.False(t, ok)

		var perr *entitlement.PurchaseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "lifetime", perr.Package)
		assert.ErrorIs(t, err, entitlement.ErrUnknownPackage)
		assert.Equal(t, 0, store.Keys())
	})

	t.Run("Write Failure", func(t *testing.T) {
		store := memory.New()
		store.FailWrites = errors.New("disk full")
		_, err := entitlement.NewLocalProvider(store, nil).Purchase(ctx, monthly(t))

		var perr *entitlement.PurchaseError
		require.ErrorAs(t, err, &perr)
		assert.True(t, core.IsWriteError(err))
	})

	t.Run("Unreadable Flag", func(t *testing.T) {
		store := memory.New()
		require.NoError(t, store.Set(ctx, core.KeyProStatus, []byte("maybe")))
		_, err := entitlement.NewLocalProvider(store, nil).Restore(ctx)

		var rerr *entitlement.RestoreError
		require.ErrorAs(t, err, &rerr)
		assert.True(t, core.IsReadError(err))
	})
}

func TestStubProvider(t *testing.T) {
	ctx := context.Background()
	p := entitlement.NewStubProvider()

	o, err := p.Offerings(ctx)
	require.NoError(t, err)
	assert.Len(t, o.AvailablePackages, 2)

	ok, err := p.Purchase(ctx, monthly(t))
	require.NoError(t, err)
	assert.False(t, ok, "stub purchases are declined")

	pro, err := p.IsEntitled(ctx)
	require.NoError(t, err)
	assert.False(t, pro)

	restored, err := p.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, restored)
}

func TestNewProvider(t *testing.T) {
	p, err := entitlement.NewProvider(entitlement.KindLocal, memory.New(), nil)
	require.NoError(t, err)
	assert.IsType(t, &entitlement.LocalProvider{}, p)

	p, err = entitlement.NewProvider(entitlement.KindStub, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &entitlement.StubProvider{}, p)

	_, err = entitlement.NewProvider("appstore", nil, nil)
	assert.Error(t, err)
}
