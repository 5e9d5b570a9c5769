package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// openAlertMsg asks the app to show a blocking alert.
type openAlertMsg struct {
	text   string
	hashes []string
}

func alertCmd(text string, hashes ...string) tea.Cmd {
	return func() tea.Msg { return openAlertMsg{text: text, hashes: hashes} }
}

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// alertModel is a modal message. While open it receives every key.
type alertModel struct {
	text   string
	hashes []string
	note   string
	closed bool
}

func newAlertModel(msg openAlertMsg) alertModel {
	return alertModel{text: msg.text, hashes: msg.hashes}
}

func (m alertModel) Update(msg tea.KeyMsg) alertModel {
	switch {
	case key.Matches(msg, keys.Dismiss):
		m.closed = true
	case len(m.hashes) > 0 && key.Matches(msg, keys.Copy):
		if err := copyToClipboard(strings.Join(m.hashes, "\n")); err != nil {
			m.note = "clipboard unavailable"
		} else {
			m.note = "tx hash copied"
		}
	}
	return m
}

func (m alertModel) View(width int) string {
	body := selectedStyle.Render(m.text)
	if m.note != "" {
		body += "\n\n" + dimStyle.Render(m.note)
	}
	box := alertStyle.Render(body)
	lines := strings.Split(box, "\n")
	for i, l := range lines {
		lines[i] = center(l, width)
	}
	return "\n\n" + strings.Join(lines, "\n")
}
