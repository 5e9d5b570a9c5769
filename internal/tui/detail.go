package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/ggus39/Habit-Coach/internal/logger"
)

// Illustrative figures for the detail page. Nothing here is read from the
// chain or the backend yet.
const (
	detailTitle     = "30-day reading challenge"
	detailDaysTotal = 30
	detailDaysLeft  = 21
	detailStreak    = 7
	detailSource    = "Apple Books"
	detailToday     = 10
	detailLastDay   = 21
	detailStaked    = 200.00
	detailAPR       = 12.5
	detailLockDate  = "2024-05-30"
	detailRewards   = 14.85
	detailCoachLine = "Hi! You have kept up your reading for 7 days in a row, a real milestone. " +
		"Our model shows the first 10 days decide whether a habit sticks. " +
		"Keep this pace and you are one step away from a lasting reading habit!"
)

// detailHighlights are completed days drawn with the strong color.
var detailHighlights = map[int]bool{4: true, 9: true}

var protocolTerms = fmt.Sprintf(`## Protocol terms

| Term | Value |
|---|---|
| Penalty | **100%% donation** to the DAO treasury |
| Lock date | %s |
| Rewards so far | %.2f USDT |
`, detailLockDate, detailRewards)

type detailModel struct {
	breadcrumb Icon
	terms      string
	width      int
	height     int
}

func newDetailModel() detailModel {
	m := detailModel{
		breadcrumb: Icon{
			Name:    "chevron_right",
			Style:   dimStyle,
			OnClick: func() tea.Cmd { return navigate(PageDashboard) },
		},
	}
	m.terms = renderTerms(76)
	return m
}

// penaltyPerDay is the share of the stake forfeited for one missed day.
func penaltyPerDay() float64 {
	return detailStaked / detailDaysTotal
}

func renderTerms(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logger.Warn("markdown renderer unavailable", "error", err)
		return protocolTerms
	}
	out, err := r.Render(protocolTerms)
	if err != nil {
		logger.Warn("render protocol terms failed", "error", err)
		return protocolTerms
	}
	return strings.TrimRight(out, "\n")
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Back) {
			return m, m.breadcrumb.Click()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width - 4
		if w < 40 {
			w = 40
		}
		m.terms = renderTerms(w)
	}
	return m, nil
}

func (m detailModel) View() string {
	var sb strings.Builder

	crumb := dimStyle.Render("challenges") + " " + m.breadcrumb.View() + " " + normalStyle.Render(detailTitle)
	sb.WriteString(" " + crumb + "\n")
	sb.WriteString(" " + selectedStyle.Render("30-day reading challenge details") + "\n\n")

	gauge := cardStyle.Render(gaugeView(detailDaysLeft, detailDaysTotal) + "\n\n" +
		statLine("Duration", fmt.Sprintf("%d days", detailDaysTotal)) + "\n" +
		statLine("Current streak", fmt.Sprintf("%d days", detailStreak)) + "\n" +
		statLine("Data sync", detailSource+" "+successStyle.Render("●")))
	calendar := cardStyle.Render(calendarView())
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, " ", gauge, " ", calendar) + "\n\n")

	stake := " " + Icon{Name: "payments", Style: accentStyle}.View() + " " + sectionHeaderStyle.Render("Staking & rewards") + "\n" +
		"   " + statLine("Staked", fmt.Sprintf("%.2f USDT", detailStaked)) + "    " +
		statLine("Estimated APR", fmt.Sprintf("%.1f%%", detailAPR)) + "\n" +
		"   " + Icon{Name: "warning", Fill: true, Style: warnStyle}.View() + " " + warnStyle.Render("Penalty warning") + "\n" +
		"   " + dimStyle.Render(penaltyWarning())
	sb.WriteString(stake + "\n\n")

	sb.WriteString(" " + Icon{Name: "gavel", Style: accentStyle}.View() + " " +
		sectionHeaderStyle.Render("Wager protocol") + "  " + successStyle.Render("protocol active") + "\n")
	sb.WriteString(m.terms + "\n\n")

	sb.WriteString(" " + Icon{Name: "psychology", Fill: true, Style: coachLabelStyle}.View() + " " +
		coachLabelStyle.Render("AI habit coach") + "  " + metaStyle.Render("your personal habit optimizer") + "\n")
	wrapW := m.width - 6
	if wrapW < 20 {
		wrapW = 74
	}
	sb.WriteString(lipgloss.NewStyle().PaddingLeft(3).Width(wrapW).Render(coachVoiceStyle.Render(`"` + detailCoachLine + `"`)))
	return sb.String()
}

func penaltyWarning() string {
	return fmt.Sprintf("Sync today's reading before 24:00 or about %.2f USDT of the stake is forfeited and donated to a Web3 public goods fund.",
		penaltyPerDay())
}

func statLine(label, value string) string {
	return dimStyle.Render(label+": ") + selectedStyle.Render(value)
}

// gaugeView draws days left as a 20-cell progress bar.
func gaugeView(left, total int) string {
	const cells = 20
	filled := 0
	if total > 0 {
		filled = left * cells / total
	}
	bar := accentStyle.Render(strings.Repeat("█", filled)) + metaStyle.Render(strings.Repeat("░", cells-filled))
	return fmt.Sprintf("%s\n%s %s", bar, selectedStyle.Render(fmt.Sprintf("%d", left)), dimStyle.Render("days left"))
}

var (
	calDoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d399"))
	calStrongStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f172a")).Background(lipgloss.Color("#34d399")).Bold(true)
	calTodayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a78bfa")).Bold(true).Underline(true)
	calFutureStyle = metaStyle
)

// calendarView renders the check-in calendar. The month starts on a
// Wednesday, so two leading cells are blank.
func calendarView() string {
	const offset = 2
	var sb strings.Builder
	sb.WriteString(Icon{Name: "calendar_today", Style: accentStyle}.View() + " " + sectionHeaderStyle.Render("Check-in calendar") + "  " +
		calDoneStyle.Render("■") + dimStyle.Render(" done ") + metaStyle.Render("□") + dimStyle.Render(" pending") + "\n")
	for _, d := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("%3s ", d)))
	}
	sb.WriteString("\n")

	col := 0
	for ; col < offset; col++ {
		sb.WriteString("    ")
	}
	for day := 1; day <= detailLastDay; day++ {
		cell := fmt.Sprintf("%3d", day)
		switch {
		case day < detailToday && detailHighlights[day]:
			cell = calStrongStyle.Render(cell)
		case day < detailToday:
			cell = calDoneStyle.Render(cell)
		case day == detailToday:
			cell = calTodayStyle.Render(cell)
		default:
			cell = calFutureStyle.Render(cell)
		}
		sb.WriteString(cell + " ")
		col++
		if col%7 == 0 {
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
