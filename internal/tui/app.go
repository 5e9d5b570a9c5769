package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ggus39/Habit-Coach/internal/dashboard"
)

// Page selects the top-level view.
type Page int

const (
	PageDashboard Page = iota
	PageDetail
)

// navigateMsg switches the top-level view.
type navigateMsg struct {
	page Page
}

func navigate(p Page) tea.Cmd {
	return func() tea.Msg { return navigateMsg{page: p} }
}

// Deps are the collaborators the app reads from. Reader and Backend may be
// nil, in which case the dashboard shows no data.
type Deps struct {
	Reader          dashboard.ChallengeReader
	Backend         Backend
	Wallet          string
	Callbacks       <-chan dashboard.Callback
	RefreshInterval time.Duration
	Version         string
}

// App is the root Bubbletea model.
type App struct {
	page      Page
	dashboard dashboardModel
	detail    detailModel
	alert     alertModel
	alertOpen bool
	helpOpen  bool
	help      help.Model
	version   string
	width     int
	height    int
	frame     int // logo shimmer animation frame
}

// NewApp creates the TUI starting on page start.
func NewApp(d Deps, start Page) App {
	h := help.New()
	h.Styles.ShortKey = helpKeyStyle
	h.Styles.ShortDesc = helpLabelStyle
	h.Styles.ShortSeparator = helpLabelStyle
	return App{
		page:      start,
		dashboard: newDashboardModel(d),
		detail:    newDetailModel(),
		help:      h,
		version:   d.Version,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.dashboard.Init(), shimmerTickCmd())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		// Chrome: header(2) + help(1) = 3 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 3}
		a.dashboard, _ = a.dashboard.Update(bodyMsg)
		a.detail, _ = a.detail.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case navigateMsg:
		a.page = msg.page
		return a, nil

	case openAlertMsg:
		a.alert = newAlertModel(msg)
		a.alertOpen = true
		return a, nil

	case tea.KeyMsg:
		// Alert captures all keys when open, including quit.
		if a.alertOpen {
			a.alert = a.alert.Update(msg)
			if a.alert.closed {
				a.alertOpen = false
			}
			return a, nil
		}

		if a.helpOpen {
			switch {
			case key.Matches(msg, keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, keys.Help), msg.String() == "esc":
				a.helpOpen = false
			}
			return a, nil
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.helpOpen = true
			return a, nil
		}

		var cmd tea.Cmd
		switch a.page {
		case PageDashboard:
			a.dashboard, cmd = a.dashboard.Update(msg)
		case PageDetail:
			a.detail, cmd = a.detail.Update(msg)
		}
		return a, cmd
	}

	// Data messages always go to the dashboard so background loads keep
	// landing while another page is shown.
	var cmd tea.Cmd
	a.dashboard, cmd = a.dashboard.Update(msg)
	return a, cmd
}

func (a App) View() string {
	header := center(renderShimmerLogo(a.frame), a.width)
	if a.version != "" {
		header += "\n" + center(metaStyle.Render(fmt.Sprintf("v%s · Sepolia", strings.TrimPrefix(a.version, "v"))), a.width)
	} else {
		header += "\n"
	}

	var body, helpBar string
	switch a.page {
	case PageDetail:
		body = a.detail.View()
		helpBar = a.help.View(detailKeys{})
	default:
		body = a.dashboard.View()
		helpBar = a.help.View(dashboardKeys{})
	}

	if a.helpOpen {
		body = helpView()
		helpBar = helpEntry("?", "close") + "  " + helpEntry("q", "quit")
	}
	if a.alertOpen {
		body = a.alert.View(a.width)
		helpBar = a.help.View(alertKeys{copyable: len(a.alert.hashes) > 0})
	}

	// Chrome budget: header(2) + help(1)
	body = strings.TrimRight(truncateToHeight(body, a.height-3), "\n")
	return fmt.Sprintf("%s\n%s\n %s", header, body, helpBar)
}
