package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFSImageStore_PutGetDelete(t *testing.T) {
	store, err := NewFSImageStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "leaf.jpg", []byte("raw")))

	data, err := store.Get(ctx, "leaf.jpg")
	require.NoError(t, err)
	require.Equal(t, []byte("raw"), data)

	require.NoError(t, store.Delete(ctx, "leaf.jpg"))
	_, err = store.Get(ctx, "leaf.jpg")
	require.Error(t, err)
}

func TestFSImageStore_List(t *testing.T) {
	store, err := NewFSImageStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "b.jpg", []byte("b")))
	require.NoError(t, store.Put(ctx, "a.jpg", []byte("a")))

	names, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a.jpg", "b.jpg"}, names)
}

func TestFSImageStore_StripsPathComponents(t *testing.T) {
	store, err := NewFSImageStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "../escape.jpg", []byte("x")))
	data, err := store.Get(ctx, "escape.jpg")
	require.NoError(t, err)
	require.Equal(t, []byte("x"), data)
}
