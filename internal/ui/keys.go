package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search   key.Binding
	Category key.Binding
	Reset    key.Binding
	LoadMore key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Debug    key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Category, k.Reset, k.LoadMore, k.Debug, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Category, k.Reset, k.LoadMore},
		{k.Top, k.Bottom, k.Debug, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Category: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "type"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m", "enter"),
			key.WithHelp("m", "load more"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Debug: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "debug"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
