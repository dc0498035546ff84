package typed_test

import (
	"context"
	"testing"

	"github.com/aretw0/ideastash/pkg/adapters/memory"
	"github.com/aretw0/ideastash/pkg/core"
	"github.com/aretw0/ideastash/pkg/typed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestDocument(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	doc := typed.NewDocument[profile](store, "profile")

	// 1. Missing
	_, found, err := doc.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	// 2. Save + Load
	require.NoError(t, doc.Save(ctx, profile{Name: "Alice", Age: 30}))
	got, found, err := doc.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, profile{Name: "Alice", Age: 30}, got)

	raw, err := store.Get(ctx, "profile")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Alice","age":30}`, string(raw))

	// 3. Delete
	require.NoError(t, doc.Delete(ctx))
	_, found, err = doc.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDocument_CorruptData(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Set(ctx, "profile", []byte("{not json")))

	doc := typed.NewDocument[profile](store, "profile")
	_, found, err := doc.Load(ctx)
	assert.True(t, found)
	assert.True(t, core.IsReadError(err))
}
