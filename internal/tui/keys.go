package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down  key.Binding
	Toggle    key.Binding
	Edit      key.Binding
	Destroy   key.Binding
	ToggleAll key.Binding
	Clear     key.Binding
	NewItem   key.Binding
	Submit    key.Binding
	Blur      key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Edit:      key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter/e", "edit")),
		Destroy:   key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete")),
		ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle all")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear completed")),
		NewItem:   key.NewBinding(key.WithKeys("n", "tab", "/"), key.WithHelp("n", "new todo")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Blur:      key.NewBinding(key.WithKeys("esc", "tab", "up", "down"), key.WithHelp("esc", "done editing")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewItem, k.Toggle, k.Edit, k.Destroy, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NewItem},
		{k.Toggle, k.Edit, k.Destroy},
		{k.ToggleAll, k.Clear},
		{k.Help, k.Quit},
	}
}
