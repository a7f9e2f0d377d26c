package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add       key.Binding
	Filter    key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Delete    key.Binding
	ClearAll  key.Binding
	Theme     key.Binding
	AccentDec key.Binding
	AccentInc key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		MoveUp:    key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown:  key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		ClearAll:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		AccentDec: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "accent -")),
		AccentInc: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "accent +")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Filter, k.MoveUp, k.MoveDown, k.Delete, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Filter, k.Delete, k.ClearAll},
		{k.MoveUp, k.MoveDown, k.Copy},
		{k.Theme, k.AccentDec, k.AccentInc},
		{k.Help, k.Quit},
	}
}
