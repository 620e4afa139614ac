package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todos/internal/todo"
)

// resourceChangedMsg tells the program that some watched resource changed
// and the tree should re-derive from the store.
type resourceChangedMsg struct{}

// resource is anything a component can watch: the list or a single item.
type resource interface {
	Subscribe(fn func(todo.Event)) (unsubscribe func())
}

// bridge turns model events into re-renders. Every event is counted; wake-ups
// are coalesced into a one-slot channel drained by wait. Whether the screen
// actually changes is left to Bubble Tea's renderer.
type bridge struct {
	wake     chan struct{}
	notified int
	stopped  bool
}

func newBridge() *bridge {
	return &bridge{wake: make(chan struct{}, 1)}
}

// mount subscribes to every event on r; call the returned func on unmount.
func (b *bridge) mount(r resource) (unmount func()) {
	return r.Subscribe(func(todo.Event) {
		if b.stopped {
			return
		}
		b.notified++
		select {
		case b.wake <- struct{}{}:
		default:
		}
	})
}

// wait blocks (off the Update loop) until the next notification.
func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-b.wake; !ok {
			return nil
		}
		return resourceChangedMsg{}
	}
}

// pending reports whether a wake-up is queued.
func (b *bridge) pending() bool { return len(b.wake) > 0 }

func (b *bridge) stop() {
	if b.stopped {
		return
	}
	b.stopped = true
	close(b.wake)
}
