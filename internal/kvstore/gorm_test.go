package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Gorm {
	t.Helper()
	g, err := Open(context.Background(), "", filepath.Join(t.TempDir(), "snap.db"))
	require.NoError(t, err)
	return g
}

func TestGorm_SaveLoadDelete(t *testing.T) {
	t.Parallel()
	g := openTestStore(t)
	ctx := context.Background()

	_, ok, err := g.Load(ctx, KeyCartItems)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, g.Save(ctx, KeyCartItems, []byte(`[{"id":1}]`)))

	raw, ok, err := g.Load(ctx, KeyCartItems)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":1}]`, string(raw))

	require.NoError(t, g.Delete(ctx, KeyCartItems))
	_, ok, err = g.Load(ctx, KeyCartItems)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGorm_SaveOverwrites(t *testing.T) {
	t.Parallel()
	g := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, g.Save(ctx, KeyAuthSession, []byte("true")))
	require.NoError(t, g.Save(ctx, KeyAuthSession, []byte("false")))

	raw, ok, err := g.Load(ctx, KeyAuthSession)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "false", string(raw))
}

func TestGorm_KeysAreIndependent(t *testing.T) {
	t.Parallel()
	g := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, g.Save(ctx, KeyCartItems, []byte("[]")))
	require.NoError(t, g.Save(ctx, KeyOrderHistory, []byte("[1]")))

	raw, ok, err := g.Load(ctx, KeyOrderHistory)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[1]", string(raw))
}
