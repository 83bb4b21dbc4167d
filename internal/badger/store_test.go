package badger

import (
	"context"
	"testing"

	"github.com/rpggio/slabstock/internal/domain/slab"
	"github.com/rpggio/slabstock/internal/repository"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_SetGetKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, slab.BlockNumbersKey, `["A"]`))
	require.NoError(t, store.Set(ctx, slab.BlockNumbersKey, `["B","A"]`))
	require.NoError(t, store.Set(ctx, slab.SlabsKey, `[]`))

	value, err := store.Get(ctx, slab.BlockNumbersKey)
	require.NoError(t, err)
	require.Equal(t, `["B","A"]`, value)

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{slab.BlockNumbersKey, slab.SlabsKey}, keys)
}

func TestStore_CanceledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Set(ctx, "k", "v"), context.Canceled)
	_, err := store.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
}

func TestStore_PersistsOnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := Open(dir)
	require.NoError(t, err)
	svc := slab.NewService(store, slab.Options{}, nil)
	svc.Load(ctx)
	_, err = svc.Add(ctx, slab.AddRequest{Color: "Red Galaxy", Width: 30, BlockNumber: "RG-7", Length: "120"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	reloaded := slab.NewService(store, slab.Options{}, nil)
	reloaded.Load(ctx)
	require.Len(t, reloaded.List(), 1)
	require.Equal(t, 25.0, reloaded.List()[0].SqFt)
}
