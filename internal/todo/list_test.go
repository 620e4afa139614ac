package todo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todos/internal/model"
	"github.com/idilsaglam/todos/internal/store/jsonstore"
)

var errDisk = errors.New("disk full")

// memBackend is an in-memory Backend whose next write can be made to fail.
type memBackend struct {
	recs []model.Item
	seq  int
	fail bool
}

func (m *memBackend) Create(_ context.Context, it model.Item) (string, error) {
	if m.fail {
		return "", errDisk
	}
	m.seq++
	it.ID = fmt.Sprintf("id-%d", m.seq)
	m.recs = append(m.recs, it)
	return it.ID, nil
}

func (m *memBackend) ReadAll(context.Context) ([]model.Item, error) {
	if m.fail {
		return nil, errDisk
	}
	return append([]model.Item(nil), m.recs...), nil
}

func (m *memBackend) Update(_ context.Context, id string, it model.Item) error {
	if m.fail {
		return errDisk
	}
	for i := range m.recs {
		if m.recs[i].ID == id {
			it.ID = id
			m.recs[i] = it
			return nil
		}
	}
	return errors.New("not found")
}

func (m *memBackend) Delete(_ context.Context, id string) error {
	if m.fail {
		return errDisk
	}
	for i := range m.recs {
		if m.recs[i].ID == id {
			m.recs = append(m.recs[:i], m.recs[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func newTestList(t *testing.T) (*List, *memBackend) {
	t.Helper()
	b := &memBackend{}
	l := NewList(b, nil)
	require.NoError(t, l.Fetch(context.Background()))
	return l, b
}

func assertPartition(t *testing.T, l *List) {
	t.Helper()
	assert.Equal(t, l.Len(), len(l.Done())+len(l.Remaining()))
}

func TestCreate_Defaults(t *testing.T) {
	l, b := newTestList(t)

	it, err := l.Create(context.Background(), Attributes{Title: "Buy milk"})
	require.NoError(t, err)

	assert.NotEmpty(t, it.ID())
	assert.Equal(t, "Buy milk", it.Title())
	assert.False(t, it.Done())
	assert.Equal(t, []model.Item{{ID: it.ID(), Title: "Buy milk"}}, b.recs)

	blank, err := l.Create(context.Background(), Attributes{})
	require.NoError(t, err)
	assert.Equal(t, "", blank.Title())
	assert.False(t, blank.Done())
}

func TestFetch_LoadsPersistedItemsInOrder(t *testing.T) {
	ctx := context.Background()
	backend := jsonstore.Store{Dir: t.TempDir()}
	first := NewList(backend, nil)
	require.NoError(t, first.Fetch(ctx))
	_, err := first.Create(ctx, Attributes{Title: "a"})
	require.NoError(t, err)
	b, err := first.Create(ctx, Attributes{Title: "b"})
	require.NoError(t, err)
	require.NoError(t, b.SetDone(ctx, true))

	second := NewList(backend, nil)
	require.NoError(t, second.Fetch(ctx))
	require.Equal(t, 2, second.Len())
	items := second.Items()
	assert.Equal(t, "a", items[0].Title())
	assert.Equal(t, "b", items[1].Title())
	assert.True(t, items[1].Done())

	// Fetch again: same contents, no duplicates.
	require.NoError(t, second.Fetch(ctx))
	assert.Equal(t, 2, second.Len())
}

func TestPartitionHoldsAcrossCreateAndDestroy(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestList(t)

	var created []*Item
	for i := 0; i < 6; i++ {
		it, err := l.Create(ctx, Attributes{Title: fmt.Sprintf("t%d", i), Done: i%2 == 0})
		require.NoError(t, err)
		created = append(created, it)
		assertPartition(t, l)
	}
	for _, i := range []int{0, 3, 5} {
		require.NoError(t, created[i].Destroy(ctx))
		assertPartition(t, l)
	}
	assert.Equal(t, 3, l.Len())
}

func TestToggleMovesBetweenViewsOnce(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestList(t)
	it, err := l.Create(ctx, Attributes{Title: "x"})
	require.NoError(t, err)
	_, err = l.Create(ctx, Attributes{Title: "y"})
	require.NoError(t, err)

	require.NoError(t, it.SetDone(ctx, true))
	assert.Equal(t, []*Item{it}, l.Done())
	assert.Len(t, l.Remaining(), 1)
	assert.NotContains(t, l.Remaining(), it)

	require.NoError(t, it.SetDone(ctx, false))
	assert.Empty(t, l.Done())
	assert.Len(t, l.Remaining(), 2)
	assertPartition(t, l)
}

func TestToggleAll(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestList(t)
	for _, title := range []string{"a", "b", "c"} {
		_, err := l.Create(ctx, Attributes{Title: title})
		require.NoError(t, err)
	}

	require.NoError(t, l.ToggleAll(ctx, true))
	assert.Empty(t, l.Remaining())
	assert.Len(t, l.Done(), 3)

	require.NoError(t, l.ToggleAll(ctx, false))
	assert.Empty(t, l.Done())
}

func TestClearCompletedLeavesRemaining(t *testing.T) {
	ctx := context.Background()
	l, b := newTestList(t)
	for i := 0; i < 5; i++ {
		_, err := l.Create(ctx, Attributes{Title: fmt.Sprint(i), Done: i < 3})
		require.NoError(t, err)
	}
	before := l.Remaining()

	n, err := l.ClearCompleted(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Empty(t, l.Done())
	assert.Equal(t, before, l.Remaining())
	assert.Len(t, b.recs, 2)
}

func TestEachIteratesSnapshot(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestList(t)
	for i := 0; i < 4; i++ {
		_, err := l.Create(ctx, Attributes{Title: fmt.Sprint(i)})
		require.NoError(t, err)
	}

	var seen []string
	l.Each(func(it *Item) {
		seen = append(seen, it.Title())
		// Destroying the current item and adding new ones must not
		// shift or extend the iteration.
		require.NoError(t, it.Destroy(ctx))
		_, err := l.Create(ctx, Attributes{Title: "new"})
		require.NoError(t, err)
	})

	assert.Equal(t, []string{"0", "1", "2", "3"}, seen)
	assert.Equal(t, 4, l.Len())
	for _, it := range l.Items() {
		assert.Equal(t, "new", it.Title())
	}
}

func TestDestroyedItemFailsFast(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestList(t)
	it, err := l.Create(ctx, Attributes{Title: "gone"})
	require.NoError(t, err)
	require.NoError(t, it.Destroy(ctx))

	assert.True(t, it.Destroyed())
	assert.ErrorIs(t, it.SetTitle(ctx, "x"), ErrDestroyed)
	assert.ErrorIs(t, it.SetDone(ctx, true), ErrDestroyed)
	assert.ErrorIs(t, it.Destroy(ctx), ErrDestroyed)
	assert.Nil(t, l.Get(it.ID()))
}

func TestPersistFailureLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	l, b := newTestList(t)
	it, err := l.Create(ctx, Attributes{Title: "keep"})
	require.NoError(t, err)

	var events []Event
	l.Subscribe(func(e Event) { events = append(events, e) })
	b.fail = true

	assert.ErrorIs(t, it.SetTitle(ctx, "changed"), errDisk)
	assert.ErrorIs(t, it.SetDone(ctx, true), errDisk)
	assert.ErrorIs(t, it.Destroy(ctx), errDisk)
	_, err = l.Create(ctx, Attributes{Title: "new"})
	assert.ErrorIs(t, err, errDisk)
	assert.Error(t, l.Fetch(ctx))

	assert.Equal(t, "keep", it.Title())
	assert.False(t, it.Done())
	assert.False(t, it.Destroyed())
	assert.Equal(t, 1, l.Len())
	assert.Empty(t, events)
}

func TestEventsFireAfterMutation(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestList(t)

	var listEvents, itemEvents []Event
	l.Subscribe(func(e Event) {
		listEvents = append(listEvents, e)
		// Observers always see post-mutation state.
		if e.Kind == Added {
			assert.NotNil(t, l.Get(e.ItemID))
		}
		if e.Kind == Removed {
			assert.Nil(t, l.Get(e.ItemID))
		}
	})

	it, err := l.Create(ctx, Attributes{Title: "a"})
	require.NoError(t, err)
	it.Subscribe(func(e Event) {
		itemEvents = append(itemEvents, e)
		if e.Kind == Changed {
			assert.Equal(t, "b", it.Title())
		}
	})

	require.NoError(t, it.SetTitle(ctx, "b"))
	require.NoError(t, it.SetTitle(ctx, "b")) // unchanged: no event
	require.NoError(t, it.Destroy(ctx))

	id := it.ID()
	assert.Equal(t, []Event{
		{Kind: Added, ItemID: id},
		{Kind: Changed, ItemID: id},
		{Kind: Removed, ItemID: id},
	}, listEvents)
	assert.Equal(t, []Event{
		{Kind: Changed, ItemID: id},
		{Kind: Removed, ItemID: id},
	}, itemEvents)
}

func TestSaveSetsBothFields(t *testing.T) {
	ctx := context.Background()
	l, b := newTestList(t)
	it, err := l.Create(ctx, Attributes{Title: "a"})
	require.NoError(t, err)

	require.NoError(t, it.Save(ctx, Attributes{Title: "b", Done: true}))

	assert.Equal(t, model.Item{ID: it.ID(), Title: "b", Done: true}, it.Record())
	assert.Equal(t, it.Record(), b.recs[0])
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "add", Added.String())
	assert.Equal(t, "reset", Reset.String())
	assert.Equal(t, "EventKind(42)", EventKind(42).String())
}
