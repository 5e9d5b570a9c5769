package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the HABIT COACH logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "HABIT COACH" as a wave of violet light moving
// left to right, deep indigo (#2e1f5e) to bright violet (#a78bfa).
func renderShimmerLogo(frame int) string {
	const text = "HABITCOACH"
	n := len(text)

	var out strings.Builder
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18
		b = math.Max(0.05, math.Min(1.0, b))

		r := clampByte(46 + b*(167-46))
		g := clampByte(31 + b*(139-31))
		bl := clampByte(94 + b*(250-94))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out.WriteString(s.Render(string(text[i])))

		switch {
		case i == 4:
			out.WriteString("    ") // word gap
		case i < n-1:
			out.WriteString("  ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a78bfa"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d399")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8890a0")).
				Bold(true)

	coachLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844")).
			Bold(true)

	coachVoiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c8a84c")).
			Italic(true)

	borderColor = lipgloss.Color("#2a2a3a")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#a78bfa")).
			Padding(1, 3)

	// Habit colors, keyed by domain.HabitKind.Color.
	habitColors = map[string]lipgloss.Color{
		"blue":    lipgloss.Color("#60a5fa"),
		"orange":  lipgloss.Color("#fb923c"),
		"purple":  lipgloss.Color("#c084fc"),
		"emerald": lipgloss.Color("#34d399"),
	}
)

// habitStyle returns the foreground style for a habit color name.
func habitStyle(color string) lipgloss.Style {
	if c, ok := habitColors[color]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")).Bold(true)
}

// helpEntry renders a single "key label" pair.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

var (
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))
)

// helpView renders the help overlay.
func helpView() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a78bfa")).
		Bold(true).
		Render("H A B I T   C O A C H")

	quote := coachVoiceStyle.Render(`"Money is justice. Prove your progress with code."`)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	commands := []struct{ cmd, desc string }{
		{"habitcoach", "Open the dashboard"},
		{"habitcoach detail", "Open the challenge detail page"},
		{"habitcoach challenges", "List active challenges"},
		{"habitcoach check", "Check today's commits"},
		{"habitcoach github link", "Link your GitHub account"},
		{"habitcoach wallet connect", "Pair a wallet address"},
	}
	keys := []struct{ key, desc string }{
		{"c", "check today's commits"},
		{"g", "link GitHub"},
		{"r", "reload challenges"},
		{"d", "challenge detail"},
		{"b / esc", "back"},
		{"q", "quit"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n\n", title, quote)
	fmt.Fprintf(&b, "  %s\n", sectionHeaderStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-26s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Fprintf(&b, "\n  %s\n", sectionHeaderStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-26s", k.key)), descStyle.Render(k.desc))
	}
	return b.String()
}
