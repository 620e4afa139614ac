package tui

import (
	"fmt"

	"github.com/idilsaglam/todos/internal/ui"
)

// footerView shows how many items are left and, only when something is done,
// the clear-completed control.
func footerView(remaining, done int) string {
	t := ui.Current()
	left := fmt.Sprintf("%s %s left",
		t.Title.Render(fmt.Sprint(remaining)),
		ui.Plural(remaining, "item", "items"))
	if done == 0 {
		return left
	}
	clearCtl := t.Accent.Render(fmt.Sprintf("(c) Clear %d completed %s", done, ui.Plural(done, "item", "items")))
	return left + "   " + clearCtl
}
