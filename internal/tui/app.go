// Package tui is the interactive view of a todo.List, built on Bubble Tea.
//
// The tree is App -> Main -> List -> ListItem, plus the footer. Views never
// change model state themselves; they call List/Item operations and re-derive
// their output from the store when the bridge reports a change.
package tui

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todos/internal/todo"
	"github.com/idilsaglam/todos/internal/ui"
)

type focusArea int

const (
	focusNewItem focusArea = iota
	focusList
)

// Options tune the App.
type Options struct {
	MaxTitleLength int
	Logger         *log.Logger
}

// App is the root component. It owns the store reference, the header input
// and which area has focus.
type App struct {
	ctx    context.Context
	store  *todo.List
	logger *log.Logger

	bridge  *bridge
	unmount func()

	input textinput.Model
	focus focusArea
	main  Main

	keys keyMap
	help help.Model

	err    string
	closed bool
}

// NewApp builds the tree over an already fetched list.
func NewApp(ctx context.Context, store *todo.List, opts Options) *App {
	if opts.MaxTitleLength <= 0 {
		opts.MaxTitleLength = 200
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = opts.MaxTitleLength
	ti.Focus()

	return &App{
		ctx:    ctx,
		store:  store,
		logger: opts.Logger,
		bridge: newBridge(),
		input:  ti,
		focus:  focusNewItem,
		main:   Main{list: newList(opts.MaxTitleLength)},
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

// Run shows the App until the user quits. Fetch the list before calling it,
// otherwise the first frame is empty.
func Run(ctx context.Context, store *todo.List, opts Options) error {
	app := NewApp(ctx, store, opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	app.shutdown()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init mounts the App on the store.
func (a *App) Init() tea.Cmd {
	a.mount()
	return tea.Batch(textinput.Blink, a.bridge.wait())
}

func (a *App) mount() {
	if a.unmount != nil {
		return
	}
	a.unmount = a.bridge.mount(a.store)
	a.main.list.reconcile(a.store, a.bridge)
}

// shutdown unmounts every subscription. Safe to call twice.
func (a *App) shutdown() {
	if a.closed {
		return
	}
	a.closed = true
	if a.unmount != nil {
		a.unmount()
		a.unmount = nil
	}
	a.main.list.unmountAll()
	a.bridge.stop()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.input.Width = max(msg.Width-6, 10)
		a.help.Width = msg.Width
		return a, nil

	case resourceChangedMsg:
		if a.closed {
			return a, nil
		}
		a.main.list.reconcile(a.store, a.bridge)
		if a.store.Len() == 0 && a.focus == focusList {
			return a, tea.Batch(a.focusInput(), a.bridge.wait())
		}
		return a, a.bridge.wait()

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, a.quit()
		}
		a.err = ""
		if a.focus == focusNewItem {
			return a, a.updateNewItem(msg)
		}
		if id, ok := a.main.list.Editing(); ok {
			return a, a.updateEditing(id, msg)
		}
		return a.updateList(msg)
	}

	var cmd tea.Cmd
	if a.focus == focusNewItem {
		a.input, cmd = a.input.Update(msg)
	} else if id, ok := a.main.list.Editing(); ok {
		if row, ok := a.main.list.rows[id]; ok {
			row.input, cmd = row.input.Update(msg)
		}
	}
	return a, cmd
}

func (a *App) quit() tea.Cmd {
	a.shutdown()
	return tea.Quit
}

func (a *App) updateNewItem(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		a.submit()
		return nil
	case tea.KeyTab, tea.KeyDown, tea.KeyEsc:
		if a.store.Len() > 0 {
			a.focusListArea()
		}
		return nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return cmd
}

// submit creates an item from the header input. An empty title is ignored.
func (a *App) submit() {
	title := strings.TrimSpace(a.input.Value())
	if title == "" {
		return
	}
	if _, err := a.store.Create(a.ctx, todo.Attributes{Title: title}); err != nil {
		a.setErr(err)
		return
	}
	a.input.SetValue("")
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := &a.main.list
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, a.quit()
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(msg, a.keys.Up):
		list.move(-1, a.store.Len())
	case key.Matches(msg, a.keys.Down):
		list.move(1, a.store.Len())
	case key.Matches(msg, a.keys.NewItem):
		return a, a.focusInput()
	case key.Matches(msg, a.keys.Toggle):
		if it := list.selected(a.store); it != nil {
			a.setErr(it.SetDone(a.ctx, !it.Done()))
		}
	case key.Matches(msg, a.keys.Edit):
		if it := list.selected(a.store); it != nil {
			return a, list.startEditing(a.store, a.bridge, it.ID())
		}
	case key.Matches(msg, a.keys.Destroy):
		if it := list.selected(a.store); it != nil {
			a.setErr(it.Destroy(a.ctx))
			list.clamp(a.store.Len())
		}
	case key.Matches(msg, a.keys.ToggleAll):
		a.toggleAll()
	case key.Matches(msg, a.keys.Clear):
		a.clearCompleted()
		list.clamp(a.store.Len())
	}
	if a.store.Len() == 0 {
		return a, a.focusInput()
	}
	return a, nil
}

// toggleAll marks everything done, unless everything already is, in which
// case it marks everything not done. Same as clicking the toggle-all box.
func (a *App) toggleAll() {
	done := len(a.store.Remaining()) > 0
	a.setErr(a.store.ToggleAll(a.ctx, done))
}

func (a *App) clearCompleted() {
	n, err := a.store.ClearCompleted(a.ctx)
	a.setErr(err)
	a.logger.Debug("cleared completed", "count", n)
}

func (a *App) updateEditing(id string, msg tea.KeyMsg) tea.Cmd {
	row, ok := a.main.list.rows[id]
	if !ok {
		a.main.list.stopEditing(id)
		return nil
	}
	switch {
	case key.Matches(msg, a.keys.Submit), key.Matches(msg, a.keys.Blur):
		a.commitEdit(id)
		return nil
	}
	cmd, err := row.updateInput(a.ctx, msg)
	a.setErr(err)
	return cmd
}

// commitEdit leaves edit mode. A title that is empty once trimmed deletes
// the item.
func (a *App) commitEdit(id string) {
	a.main.list.stopEditing(id)
	it := a.store.Get(id)
	if it == nil {
		return
	}
	title := strings.TrimSpace(it.Title())
	if title == "" {
		a.setErr(it.Destroy(a.ctx))
		a.main.list.clamp(a.store.Len())
		return
	}
	if title != it.Title() {
		a.setErr(it.SetTitle(a.ctx, title))
	}
}

func (a *App) focusInput() tea.Cmd {
	if id, ok := a.main.list.Editing(); ok {
		a.commitEdit(id)
	}
	a.focus = focusNewItem
	return a.input.Focus()
}

func (a *App) focusListArea() {
	a.focus = focusList
	a.input.Blur()
	a.main.list.clamp(a.store.Len())
}

func (a *App) setErr(err error) {
	if err == nil {
		return
	}
	a.logger.Warn("action failed", "err", err)
	a.err = err.Error()
}

func (a *App) View() string {
	t := ui.Current()
	var b strings.Builder
	b.WriteString(t.Title.Render("todos"))
	b.WriteString("\n")
	b.WriteString(a.input.View())
	if body := a.main.View(a.store, a.focus == focusList); body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if a.err != "" {
		b.WriteString("\n")
		b.WriteString(t.Error.Render(t.SymFail + " " + a.err))
	}
	content := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(b.String())
	return content + "\n" + t.Help.Render(a.help.View(a.keys))
}
