package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todos/internal/todo"
	"github.com/idilsaglam/todos/internal/ui"
)

// List renders one row per item and owns the editing state: at most one id
// is in edit mode at a time. editingID == "" means nothing is being edited.
type List struct {
	rows      map[string]*ListItem
	editingID string
	cursor    int
	maxTitle  int
}

func newList(maxTitle int) List {
	return List{rows: map[string]*ListItem{}, maxTitle: maxTitle}
}

// reconcile mounts rows for new items and unmounts rows whose item left the store.
func (l *List) reconcile(store *todo.List, b *bridge) {
	live := make(map[string]bool, store.Len())
	for _, it := range store.Items() {
		live[it.ID()] = true
		if _, ok := l.rows[it.ID()]; !ok {
			l.rows[it.ID()] = newListItem(it, b, l.maxTitle)
		}
	}
	for id, row := range l.rows {
		if live[id] {
			continue
		}
		row.unmount()
		delete(l.rows, id)
		if l.editingID == id {
			l.editingID = ""
		}
	}
	l.clamp(store.Len())
}

func (l *List) unmountAll() {
	for id, row := range l.rows {
		row.unmount()
		delete(l.rows, id)
	}
	l.editingID = ""
}

func (l *List) clamp(n int) {
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Editing returns the id in edit mode, if any.
func (l *List) Editing() (string, bool) {
	return l.editingID, l.editingID != ""
}

// startEditing puts id into edit mode. If another row is editing it is
// stopped first, so two rows are never editing together.
func (l *List) startEditing(store *todo.List, b *bridge, id string) tea.Cmd {
	it := store.Get(id)
	if it == nil {
		return nil
	}
	if l.editingID == id {
		return nil
	}
	if l.editingID != "" {
		l.stopEditing(l.editingID)
	}
	row, ok := l.rows[id]
	if !ok {
		row = newListItem(it, b, l.maxTitle)
		l.rows[id] = row
	}
	l.editingID = id
	return row.enterEdit()
}

// stopEditing leaves edit mode. A stop for any id other than the current
// one is a stale callback and ignored.
func (l *List) stopEditing(id string) {
	if id == "" || id != l.editingID {
		return
	}
	if row, ok := l.rows[id]; ok {
		row.exitEdit()
	}
	l.editingID = ""
}

// selected returns the item under the cursor.
func (l *List) selected(store *todo.List) *todo.Item {
	items := store.Items()
	if l.cursor < 0 || l.cursor >= len(items) {
		return nil
	}
	return items[l.cursor]
}

func (l *List) move(delta int, n int) {
	l.cursor += delta
	l.clamp(n)
}

func (l *List) View(store *todo.List, focused bool) string {
	items := store.Items()
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(items))
	for i, it := range items {
		sel := focused && i == l.cursor
		if row, ok := l.rows[it.ID()]; ok {
			lines = append(lines, row.View(sel))
			continue
		}
		lines = append(lines, readView(it, sel))
	}
	return strings.Join(lines, "\n")
}

// toggleAllView is the "mark all as complete" control.
func toggleAllView(store *todo.List) string {
	t := ui.Current()
	box := t.Muted.Render(t.BoxUnchecked)
	if len(store.Remaining()) == 0 {
		box = t.Success.Render(t.BoxChecked)
	}
	return box + " " + t.Muted.Render("Mark all as complete")
}
