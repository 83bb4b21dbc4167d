package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rpggio/slabstock/internal/domain/slab"
	"github.com/rpggio/slabstock/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestKVStore_GetMissing(t *testing.T) {
	db := NewTestDB(t)
	store := NewKVStore(db)

	_, err := store.Get(context.Background(), "missing")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestKVStore_SetOverwrites(t *testing.T) {
	db := NewTestDB(t)
	store := NewKVStore(db)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, slab.SlabsKey, `[]`))
	require.NoError(t, store.Set(ctx, slab.SlabsKey, `[{"id":"a"}]`))

	value, err := store.Get(ctx, slab.SlabsKey)
	require.NoError(t, err)
	require.Equal(t, `[{"id":"a"}]`, value)

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{slab.SlabsKey}, keys)
}

func TestKVStore_InventoryPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slabs.db")
	ctx := context.Background()

	db, err := New(path)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	svc := slab.NewService(NewKVStore(db), slab.Options{}, nil)
	svc.Load(ctx)
	added, err := svc.Add(ctx, slab.AddRequest{Color: "Fantasy", Width: 24, BlockNumber: "B-1", Length: "72"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	reloaded := slab.NewService(NewKVStore(db), slab.Options{}, nil)
	reloaded.Load(ctx)
	list := reloaded.List()
	require.Len(t, list, 1)
	require.Equal(t, added.ID, list[0].ID)
	require.Equal(t, 12.0, list[0].SqFt)
	require.Equal(t, []string{"B-1"}, reloaded.BlockNumbers())
}
