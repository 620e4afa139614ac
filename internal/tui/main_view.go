package tui

import (
	"strings"

	"github.com/idilsaglam/todos/internal/todo"
)

// Main holds the toggle-all control, the list and the footer. It renders
// nothing while the store is empty.
type Main struct {
	list List
}

func (m *Main) View(store *todo.List, listFocused bool) string {
	if store.Len() == 0 {
		return ""
	}
	parts := []string{
		toggleAllView(store),
		m.list.View(store, listFocused),
		"",
		footerView(len(store.Remaining()), len(store.Done())),
	}
	return strings.Join(parts, "\n")
}
