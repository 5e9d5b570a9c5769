package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ggus39/Habit-Coach/internal/dashboard"
	"github.com/ggus39/Habit-Coach/internal/logger"
	"github.com/ggus39/Habit-Coach/internal/oauth"
	"github.com/ggus39/Habit-Coach/internal/wallet"
	"github.com/ggus39/Habit-Coach/pkg/chain"
	"github.com/ggus39/Habit-Coach/pkg/domain"
)

// defaultRefreshInterval is used when Deps.RefreshInterval is zero.
const defaultRefreshInterval = time.Minute

// callTimeout bounds each contract read and backend call.
const callTimeout = 15 * time.Second

// Backend is the habit-coach API surface the dashboard uses.
type Backend interface {
	dashboard.StatusClient
	dashboard.CheckInClient
	AuthURL(walletAddress string) string
}

type countLoadedMsg struct {
	count uint64
}

type challengeLoadedMsg struct {
	index     int
	challenge *domain.Challenge
}

type githubStatusMsg struct {
	status domain.GitHubStatus
}

type checkDoneMsg struct {
	outcome dashboard.Outcome
	manual  bool
}

type callbackMsg struct {
	cb dashboard.Callback
}

type refreshTickMsg time.Time

type dashboardModel struct {
	reader    dashboard.ChallengeReader
	backend   Backend
	wallet    string
	callbacks <-chan dashboard.Callback
	refresh   time.Duration

	count    uint64
	slots    dashboard.Slots
	status   domain.GitHubStatus
	trigger  dashboard.AutoTrigger
	checking bool
	message  string
	spinner  spinner.Model
	width    int
	height   int
}

func newDashboardModel(d Deps) dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = accentStyle
	refresh := d.RefreshInterval
	if refresh <= 0 {
		refresh = defaultRefreshInterval
	}
	return dashboardModel{
		reader:    d.Reader,
		backend:   d.Backend,
		wallet:    d.Wallet,
		callbacks: d.Callbacks,
		refresh:   refresh,
		spinner:   s,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	if m.wallet == "" {
		return nil
	}
	return tea.Batch(m.loadCount(), m.fetchStatus(), m.waitCallback(), m.refreshTick())
}

func (m dashboardModel) loadCount() tea.Cmd {
	r, addr := m.reader, m.wallet
	if r == nil || addr == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		return countLoadedMsg{count: dashboard.Count(ctx, r, addr)}
	}
}

func (m dashboardModel) loadChallenge(index int) tea.Cmd {
	r, addr := m.reader, m.wallet
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		return challengeLoadedMsg{index: index, challenge: dashboard.Read(ctx, r, addr, index)}
	}
}

func (m dashboardModel) fetchStatus() tea.Cmd {
	b, addr, prior := m.backend, m.wallet, m.status
	if b == nil || addr == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		return githubStatusMsg{status: dashboard.FetchStatus(ctx, b, addr, prior)}
	}
}

func (m dashboardModel) runCheck(manual bool) tea.Cmd {
	b, addr, status := m.backend, m.wallet, m.status
	active := m.slots.Active()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(len(active)+1)*callTimeout)
		defer cancel()
		return checkDoneMsg{outcome: dashboard.Evaluate(ctx, b, addr, status, active), manual: manual}
	}
}

func (m dashboardModel) waitCallback() tea.Cmd {
	ch := m.callbacks
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cb, ok := <-ch
		if !ok {
			return nil
		}
		return callbackMsg{cb: cb}
	}
}

func (m dashboardModel) refreshTick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// recompute re-derives the active list and starts an automatic check when
// the linkage or the active count changed into a checkable state.
func (m dashboardModel) recompute() (dashboardModel, tea.Cmd) {
	active := m.slots.Active()
	if m.trigger.Observe(m.status.Connected, len(active)) && m.backend != nil {
		m.checking = true
		m.message = ""
		return m, tea.Batch(m.runCheck(false), m.spinner.Tick)
	}
	return m, nil
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case countLoadedMsg:
		m.count = msg.count
		var cmds []tea.Cmd
		for i := 0; i < dashboard.MaxChallenges; i++ {
			if dashboard.ShouldRead(m.wallet, m.count, i) {
				cmds = append(cmds, m.loadChallenge(i))
			} else {
				m.slots.Set(i, nil)
			}
		}
		var cmd tea.Cmd
		m, cmd = m.recompute()
		return m, tea.Batch(append(cmds, cmd)...)

	case challengeLoadedMsg:
		m.slots.Set(msg.index, msg.challenge)
		return m.recompute()

	case githubStatusMsg:
		m.status = msg.status
		return m.recompute()

	case checkDoneMsg:
		m.checking = false
		if msg.outcome.State == dashboard.StateSkipped {
			return m, nil
		}
		m.message = msg.outcome.Message
		if msg.manual && msg.outcome.Alerts() {
			return m, alertCmd(msg.outcome.Message, msg.outcome.TxHashes...)
		}
		return m, nil

	case callbackMsg:
		logger.Info("github callback received", "user", msg.cb.User)
		return m, tea.Batch(m.fetchStatus(), m.waitCallback())

	case refreshTickMsg:
		return m, tea.Batch(m.loadCount(), m.refreshTick())

	case spinner.TickMsg:
		if !m.checking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Check):
			if m.wallet == "" || !m.status.Connected || m.backend == nil {
				return m, nil
			}
			m.checking = true
			m.message = ""
			return m, tea.Batch(m.runCheck(true), m.spinner.Tick)
		case key.Matches(msg, keys.Link):
			return m, m.link()
		case key.Matches(msg, keys.Refresh):
			return m, tea.Batch(m.loadCount(), m.fetchStatus())
		case key.Matches(msg, keys.Detail):
			return m, navigate(PageDetail)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// link opens the GitHub authorization page for the connected wallet.
func (m dashboardModel) link() tea.Cmd {
	if m.wallet == "" {
		return alertCmd("connect a wallet first")
	}
	if m.backend == nil || m.status.Connected {
		return nil
	}
	authURL := m.backend.AuthURL(m.wallet)
	return func() tea.Msg {
		if err := oauth.Open(authURL); err != nil {
			logger.Warn("open browser failed", "error", err)
			return openAlertMsg{text: "open this URL to link GitHub:\n" + authURL}
		}
		return nil
	}
}

func (m dashboardModel) View() string {
	var sb strings.Builder
	width := m.width
	if width <= 0 {
		width = 80
	}

	sb.WriteString(" " + selectedStyle.Render("Dashboard") + "  " +
		dimStyle.Render("all habit challenges and your staked assets") + "\n")
	if m.wallet == "" {
		sb.WriteString(" " + warnStyle.Render("no wallet connected") + "  " +
			metaStyle.Render("run `habitcoach wallet connect` or set HABITCOACH_WALLET") + "\n\n")
	} else {
		syncLine := dimStyle.Render("AI is syncing the GitHub data source")
		if m.checking {
			syncLine = m.spinner.View() + " " + syncLine
		} else {
			syncLine = Icon{Name: "circle", Fill: true, Style: successStyle}.View() + " " + syncLine
		}
		sb.WriteString(" " + metaStyle.Render(wallet.Short(m.wallet)) + "  " + syncLine + "\n\n")
	}

	active := m.slots.Active()
	sb.WriteString(m.summaryView(active, width) + "\n\n")
	sb.WriteString(m.tasksView(active) + "\n")
	sb.WriteString(m.sourceView() + "\n\n")
	sb.WriteString(m.coachView(width))
	return sb.String()
}

func (m dashboardModel) summaryView(active []domain.Challenge, width int) string {
	colW := (width - 8) / 3
	if colW < 20 {
		colW = 20
	}
	card := func(icon Icon, label, value, unit, foot string) string {
		body := dimStyle.Render(label) + " " + icon.View() + "\n" +
			selectedStyle.Render(value) + " " + metaStyle.Render(unit) + "\n" +
			metaStyle.Render(foot)
		return cardStyle.Width(colW).Render(body)
	}
	staked := card(
		Icon{Name: "account_balance", Style: accentStyle},
		"Total staked", chain.FormatEther(dashboard.TotalStake(active)), chain.Default().Chain.NativeSymbol,
		fmt.Sprintf("locked: %d challenge(s)", len(active)),
	)
	streak := card(
		Icon{Name: "local_fire_department", Fill: true, Style: habitStyle("orange")},
		"Streak", "3", "days", "4 days to the next reward tier",
	)
	earned := card(
		Icon{Name: "verified", Fill: true, Style: habitStyle("blue")},
		"STRICT earned", "500", "STRICT", "mining rate 1.5x",
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, " ", staked, " ", streak, " ", earned)
}

func (m dashboardModel) tasksView(active []domain.Challenge) string {
	var sb strings.Builder
	sb.WriteString(" " + Icon{Name: "task_alt", Style: accentStyle}.View() + " " +
		sectionHeaderStyle.Render("Today's habits") + "\n")

	if len(active) == 0 {
		sb.WriteString("   " + dimStyle.Render("no active challenges") + "\n")
	}
	for _, c := range active {
		kind := domain.KindOf(c.HabitDescription)
		style := habitStyle(kind.Color)
		icon := Icon{Name: kind.Icon, Style: style}
		title := normalStyle.Render(truncStr(c.Title(), 40))

		var state string
		if dashboard.TaskCompleted(c, m.message) {
			state = Icon{Name: "check_circle", Fill: true, Style: successStyle}.View() + " " + successStyle.Render("completed")
		} else {
			state = dimStyle.Render("in progress")
		}
		progress := ""
		if c.DurationDays > 0 {
			progress = metaStyle.Render(fmt.Sprintf("  %d/%d days", c.CompletedDays, c.DurationDays))
		}
		sb.WriteString(fmt.Sprintf("   %s  %s  %s%s\n", icon.View(), title, state, progress))
	}

	switch {
	case m.checking:
		sb.WriteString("   " + m.spinner.View() + " " + dimStyle.Render("checking today's commits...") + "\n")
	case m.message != "":
		for _, line := range strings.Split(m.message, "\n") {
			sb.WriteString("   " + accentStyle.Render(line) + "\n")
		}
	}
	return sb.String()
}

func (m dashboardModel) sourceView() string {
	head := " " + Icon{Name: "sync", Style: accentStyle}.View() + " " + sectionHeaderStyle.Render("Data sources")
	gh := Icon{Name: "terminal"}.View() + " GitHub  "
	if m.status.Connected {
		gh += successStyle.Render("@"+m.status.Username) + "  " + metaStyle.Render("linked")
	} else {
		gh += dimStyle.Render("not connected") + "  " + helpEntry("g", "connect")
	}
	return head + "\n   " + gh
}

func (m dashboardModel) coachView(width int) string {
	var text string
	if m.status.Connected {
		text = fmt.Sprintf("Hi %s! I'm ready to watch your repos. Push every day, or your stake is at risk!", m.status.Username)
	} else {
		text = "Connect your GitHub account first. Money is justice: only progress proven by code earns rewards."
	}
	wrapW := width - 6
	if wrapW < 20 {
		wrapW = 20
	}
	icon := Icon{Name: "psychology", Fill: true, Style: coachLabelStyle}
	return " " + icon.View() + " " + coachLabelStyle.Render("AI status") + "\n" +
		lipgloss.NewStyle().PaddingLeft(3).Width(wrapW).Render(coachVoiceStyle.Render(text))
}
