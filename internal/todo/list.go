package todo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todos/internal/notify"
)

// List is the ordered collection of Items. It is the single source of truth
// for the views; build one per process and pass it down.
type List struct {
	backend Backend
	logger  *log.Logger
	items   []*Item
	hub     notify.Hub[Event]
}

// NewList returns an empty list over b. Call Fetch before first render.
// A nil logger discards.
func NewList(b Backend, logger *log.Logger) *List {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &List{backend: b, logger: logger}
}

// Fetch replaces the in-memory items with everything in the backend.
// On error the current items are kept.
func (l *List) Fetch(ctx context.Context) error {
	recs, err := l.backend.ReadAll(ctx)
	if err != nil {
		l.logger.Error("fetch failed", "err", err)
		return fmt.Errorf("fetch: %w", err)
	}
	items := make([]*Item, 0, len(recs))
	for _, r := range recs {
		items = append(items, &Item{rec: r, list: l})
	}
	l.items = items
	l.logger.Debug("fetched", "items", len(items))
	l.hub.Emit(Event{Kind: Reset})
	return nil
}

// Create persists a new item built from a and appends it.
func (l *List) Create(ctx context.Context, a Attributes) (*Item, error) {
	it := &Item{list: l}
	it.rec.Title = a.Title
	it.rec.Done = a.Done
	id, err := l.backend.Create(ctx, it.rec)
	if err != nil {
		l.logger.Error("persist failed", "op", "create", "err", err)
		return nil, fmt.Errorf("create item: %w", err)
	}
	it.rec.ID = id
	l.items = append(l.items, it)
	l.logger.Debug("created", "id", id)
	l.hub.Emit(Event{Kind: Added, ItemID: id})
	return it, nil
}

// Subscribe watches the list and every item in it.
func (l *List) Subscribe(fn func(Event)) (unsubscribe func()) {
	return l.hub.Subscribe(fn)
}

// Observers reports how many subscribers watch the list itself.
func (l *List) Observers() int { return l.hub.Len() }

func (l *List) Len() int { return len(l.items) }

// Items returns a snapshot of the items in display order.
func (l *List) Items() []*Item {
	out := make([]*Item, len(l.items))
	copy(out, l.items)
	return out
}

// Get returns the item with id, or nil.
func (l *List) Get(id string) *Item {
	for _, it := range l.items {
		if it.rec.ID == id {
			return it
		}
	}
	return nil
}

// Done returns the finished items.
func (l *List) Done() []*Item { return l.where(true) }

// Remaining returns the items still to do.
func (l *List) Remaining() []*Item { return l.where(false) }

func (l *List) where(done bool) []*Item {
	var out []*Item
	for _, it := range l.items {
		if it.rec.Done == done {
			out = append(out, it)
		}
	}
	return out
}

// Each calls fn for every item present when Each was called, even if fn
// adds or destroys items along the way.
func (l *List) Each(fn func(*Item)) {
	for _, it := range l.Items() {
		fn(it)
	}
}

// ToggleAll marks every item done (or not done). Items that fail to persist
// keep their old state; their errors are joined.
func (l *List) ToggleAll(ctx context.Context, done bool) error {
	var errs []error
	l.Each(func(it *Item) {
		if it.destroyed {
			return
		}
		if err := it.SetDone(ctx, done); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

// ClearCompleted destroys every done item and reports how many went away.
func (l *List) ClearCompleted(ctx context.Context) (int, error) {
	var errs []error
	n := 0
	for _, it := range l.Done() {
		if err := it.Destroy(ctx); err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}

func (l *List) remove(it *Item) {
	for i, cur := range l.items {
		if cur == it {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return
		}
	}
}
