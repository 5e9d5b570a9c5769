package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// placeholderGlyph is drawn for an empty or unknown icon name.
const placeholderGlyph = "◌"

// glyphs maps Material Symbols names to an outlined and a filled variant.
var glyphs = map[string][2]string{
	"menu_book":              {"▭", "▬"},
	"directions_run":         {"↝", "➜"},
	"code":                   {"‹›", "«»"},
	"trending_up":            {"↗", "⬈"},
	"check_circle":           {"○", "●"},
	"chevron_right":          {"›", "❯"},
	"calendar_today":         {"▦", "▩"},
	"local_fire_department":  {"△", "▲"},
	"account_balance":        {"⌂", "⏏"},
	"account_balance_wallet": {"◇", "◆"},
	"payments":               {"¤", "$"},
	"psychology":             {"☺", "☻"},
	"verified":               {"✓", "✔"},
	"task_alt":               {"☐", "☑"},
	"terminal":               {"⌨", "▣"},
	"sync":                   {"⟳", "↻"},
	"gavel":                  {"⚖", "⚒"},
	"circle":                 {"○", "●"},
	"warning":                {"△", "⚠"},
	"favorite":               {"♡", "♥"},
	"lock":                   {"◻", "◼"},
	"schedule":               {"◷", "◶"},
}

// Icon is a named glyph with an optional style, filled variant, and click
// action.
type Icon struct {
	Name    string
	Style   lipgloss.Style
	Fill    bool
	OnClick func() tea.Cmd
}

// View renders the glyph.
func (i Icon) View() string {
	g, ok := glyphs[i.Name]
	if !ok {
		return i.Style.Render(placeholderGlyph)
	}
	if i.Fill {
		return i.Style.Render(g[1])
	}
	return i.Style.Render(g[0])
}

// Click runs the click action and returns its command. Without an action it
// returns nil.
func (i Icon) Click() tea.Cmd {
	if i.OnClick == nil {
		return nil
	}
	return i.OnClick()
}
