package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todos/internal/model"
	"github.com/idilsaglam/todos/internal/store"
)

func openTestStore(t *testing.T, path, ns string) *Store {
	t.Helper()
	s, err := Open(context.Background(), path, ns)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RoundTripKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, filepath.Join(t.TempDir(), "todos.sqlite"), "")

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		id, err := s.Create(ctx, model.Item{Title: title})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, s.Update(ctx, ids[1], model.Item{Title: "two!", Done: true}))
	require.NoError(t, s.Delete(ctx, ids[0]))

	items, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Item{
		{ID: ids[1], Title: "two!", Done: true},
		{ID: ids[2], Title: "three"},
	}, items)
}

func TestStore_UnknownID(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, filepath.Join(t.TempDir(), "todos.sqlite"), "")

	assert.ErrorIs(t, s.Update(ctx, "missing", model.Item{Title: "x"}), store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "missing"), store.ErrNotFound)
}

func TestStore_NamespacesShareFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todos.sqlite")
	a := openTestStore(t, path, "a")
	b := openTestStore(t, path, "b")

	id, err := a.Create(ctx, model.Item{Title: "in a"})
	require.NoError(t, err)

	items, err := b.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.ErrorIs(t, b.Delete(ctx, id), store.ErrNotFound)

	items, err = a.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todos.sqlite")

	s, err := Open(ctx, path, "")
	require.NoError(t, err)
	_, err = s.Create(ctx, model.Item{Title: "survives"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2 := openTestStore(t, path, "")
	items, err := s2.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "survives", items[0].Title)
}
