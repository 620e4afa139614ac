// Package notify is a tiny observer list. Each resource that wants to be
// watched embeds a Hub and emits on every mutation.
package notify

// Hub holds the subscribers of one resource. The zero value is ready to use.
// Not safe for concurrent use; callers mutate from a single event loop.
type Hub[E any] struct {
	next uint64
	subs []subscriber[E]
}

type subscriber[E any] struct {
	id uint64
	fn func(E)
}

// Subscribe registers fn and returns a func that removes it again.
// Calling the returned func more than once is a no-op.
func (h *Hub[E]) Subscribe(fn func(E)) (unsubscribe func()) {
	h.next++
	id := h.next
	h.subs = append(h.subs, subscriber[E]{id: id, fn: fn})
	return func() { h.remove(id) }
}

func (h *Hub[E]) remove(id uint64) {
	for i, s := range h.subs {
		if s.id == id {
			// Copy so an Emit iterating the old slice is not disturbed.
			out := make([]subscriber[E], 0, len(h.subs)-1)
			out = append(out, h.subs[:i]...)
			out = append(out, h.subs[i+1:]...)
			h.subs = out
			return
		}
	}
}

// Emit calls every subscriber registered at the time of the call, in
// subscription order.
func (h *Hub[E]) Emit(e E) {
	snapshot := h.subs
	for _, s := range snapshot {
		s.fn(e)
	}
}

// Len reports the number of live subscribers.
func (h *Hub[E]) Len() int { return len(h.subs) }
