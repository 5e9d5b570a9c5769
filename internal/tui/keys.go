package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Check   key.Binding
	Link    key.Binding
	Refresh key.Binding
	Detail  key.Binding
	Back    key.Binding
	Copy    key.Binding
	Dismiss key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Check:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "check")),
	Link:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "link github")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Detail:  key.NewBinding(key.WithKeys("d", "enter"), key.WithHelp("d", "detail")),
	Back:    key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("b", "back")),
	Copy:    key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "copy tx")),
	Dismiss: key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "ok")),
	Help:    key.NewBinding(key.WithKeys("?", "h"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// dashboardKeys is the short help for the dashboard page.
type dashboardKeys struct{}

func (dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{keys.Check, keys.Link, keys.Refresh, keys.Detail, keys.Help, keys.Quit}
}

func (d dashboardKeys) FullHelp() [][]key.Binding { return [][]key.Binding{d.ShortHelp()} }

type detailKeys struct{}

func (detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{keys.Back, keys.Help, keys.Quit}
}

func (d detailKeys) FullHelp() [][]key.Binding { return [][]key.Binding{d.ShortHelp()} }

type alertKeys struct{ copyable bool }

func (a alertKeys) ShortHelp() []key.Binding {
	if a.copyable {
		return []key.Binding{keys.Dismiss, keys.Copy}
	}
	return []key.Binding{keys.Dismiss}
}

func (a alertKeys) FullHelp() [][]key.Binding { return [][]key.Binding{a.ShortHelp()} }
