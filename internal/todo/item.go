package todo

import (
	"context"
	"errors"
	"fmt"

	"github.com/idilsaglam/todos/internal/model"
	"github.com/idilsaglam/todos/internal/notify"
)

// ErrDestroyed is returned by every mutator of an Item after Destroy.
var ErrDestroyed = errors.New("todo: item destroyed")

// Attributes are the user-settable fields of an Item. The zero value is an
// untitled, not-done item.
type Attributes struct {
	Title string
	Done  bool
}

// Item is a single todo owned by a List.
type Item struct {
	rec       model.Item
	list      *List
	destroyed bool
	hub       notify.Hub[Event]
}

func (it *Item) ID() string         { return it.rec.ID }
func (it *Item) Title() string      { return it.rec.Title }
func (it *Item) Done() bool         { return it.rec.Done }
func (it *Item) Destroyed() bool    { return it.destroyed }
func (it *Item) Record() model.Item { return it.rec }
func (it *Item) Observers() int     { return it.hub.Len() }

// Subscribe watches every change to this item, including its removal.
func (it *Item) Subscribe(fn func(Event)) (unsubscribe func()) {
	return it.hub.Subscribe(fn)
}

func (it *Item) SetTitle(ctx context.Context, title string) error {
	next := it.rec
	next.Title = title
	return it.commit(ctx, next)
}

func (it *Item) SetDone(ctx context.Context, done bool) error {
	next := it.rec
	next.Done = done
	return it.commit(ctx, next)
}

// Save writes title and done in one update.
func (it *Item) Save(ctx context.Context, a Attributes) error {
	next := it.rec
	next.Title = a.Title
	next.Done = a.Done
	return it.commit(ctx, next)
}

func (it *Item) commit(ctx context.Context, next model.Item) error {
	if it.destroyed {
		return ErrDestroyed
	}
	if next == it.rec {
		return nil
	}
	if err := it.list.backend.Update(ctx, it.rec.ID, next); err != nil {
		it.list.logger.Error("persist failed", "op", "update", "id", it.rec.ID, "err", err)
		return fmt.Errorf("update item %s: %w", it.rec.ID, err)
	}
	it.rec = next
	it.emit(Event{Kind: Changed, ItemID: it.rec.ID})
	return nil
}

// Destroy deletes the item from storage and from its list.
func (it *Item) Destroy(ctx context.Context) error {
	if it.destroyed {
		return ErrDestroyed
	}
	if err := it.list.backend.Delete(ctx, it.rec.ID); err != nil {
		it.list.logger.Error("persist failed", "op", "delete", "id", it.rec.ID, "err", err)
		return fmt.Errorf("delete item %s: %w", it.rec.ID, err)
	}
	it.list.remove(it)
	it.destroyed = true
	it.emit(Event{Kind: Removed, ItemID: it.rec.ID})
	return nil
}

// emit notifies item observers first, then the owning list.
func (it *Item) emit(e Event) {
	it.hub.Emit(e)
	it.list.hub.Emit(e)
}
