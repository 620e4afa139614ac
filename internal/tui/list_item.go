package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todos/internal/todo"
	"github.com/idilsaglam/todos/internal/ui"
)

// ListItem is one row: a read view (checkbox + title) or, while its id is
// the list's editing id, a focused text input.
type ListItem struct {
	item    *todo.Item
	editing bool
	input   textinput.Model
	unmount func()
}

func newListItem(it *todo.Item, b *bridge, maxTitle int) *ListItem {
	ti := textinput.New()
	ti.Prompt = "  ✎ "
	ti.Placeholder = "Edit item title..."
	ti.CharLimit = maxTitle
	return &ListItem{
		item:    it,
		input:   ti,
		unmount: b.mount(it),
	}
}

// enterEdit switches to the edit view and moves focus to the input.
func (r *ListItem) enterEdit() tea.Cmd {
	r.editing = true
	r.input.SetValue(r.item.Title())
	r.input.CursorEnd()
	return r.input.Focus()
}

func (r *ListItem) exitEdit() {
	r.editing = false
	r.input.Blur()
}

// updateInput feeds a key to the edit input and pushes the new text to the
// item. On a failed write the input snaps back to the stored title.
func (r *ListItem) updateInput(ctx context.Context, msg tea.Msg) (tea.Cmd, error) {
	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	if r.input.Value() == r.item.Title() {
		return cmd, nil
	}
	if err := r.item.SetTitle(ctx, r.input.Value()); err != nil {
		r.input.SetValue(r.item.Title())
		r.input.CursorEnd()
		return cmd, err
	}
	return cmd, nil
}

func (r *ListItem) View(selected bool) string {
	if r.editing {
		return r.input.View()
	}
	return readView(r.item, selected)
}

// readView renders an item's read-only row. It is also used for items whose
// row has not been mounted yet.
func readView(it *todo.Item, selected bool) string {
	t := ui.Current()
	box := t.Muted.Render(t.BoxUnchecked)
	title := it.Title()
	if it.Done() {
		box = t.Success.Render(t.BoxChecked)
		title = t.DoneText.Render(title)
	}
	prefix := "  "
	suffix := ""
	if selected {
		prefix = t.Selected.Render(">") + " "
		suffix = "  " + t.Muted.Render("(d) delete")
	}
	return fmt.Sprintf("%s%s %s%s", prefix, box, strings.TrimRight(title, "\n"), suffix)
}
