package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/ethereum/go-ethereum/common"

	"github.com/ggus39/Habit-Coach/internal/dashboard"
	"github.com/ggus39/Habit-Coach/internal/keyring"
	"github.com/ggus39/Habit-Coach/internal/logger"
	"github.com/ggus39/Habit-Coach/internal/oauth"
	"github.com/ggus39/Habit-Coach/internal/tui"
	"github.com/ggus39/Habit-Coach/internal/wallet"
	"github.com/ggus39/Habit-Coach/pkg/chain"
	"github.com/ggus39/Habit-Coach/pkg/domain"
)

const shutdownTimeout = 2 * time.Second

type DashboardCmd struct{}

func (DashboardCmd) Run(app *appContext) error {
	return app.runTUI(tui.PageDashboard)
}

type DetailCmd struct{}

func (DetailCmd) Run(app *appContext) error {
	return app.runTUI(tui.PageDetail)
}

// runTUI starts the app on page. The chain reader and the callback server
// are optional: without them the dashboard simply shows less.
func (a *appContext) runTUI(page tui.Page) error {
	deps := tui.Deps{
		Backend:         a.client,
		Wallet:          a.wallet,
		RefreshInterval: a.cfg.RefreshInterval,
		Version:         version,
	}

	if src, err := a.dial(a.ctx); err != nil {
		logger.Warn("chain unavailable", "error", err)
	} else {
		defer src.Close()
		deps.Reader = src
	}

	if srv, err := oauth.Start(a.cfg.CallbackAddr); err != nil {
		logger.Warn("oauth callback server unavailable", "addr", a.cfg.CallbackAddr, "error", err)
	} else {
		defer stopServer(srv)
		deps.Callbacks = srv.Events()
	}

	p := tea.NewProgram(tui.NewApp(deps, page), tea.WithAltScreen(), tea.WithContext(a.ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func stopServer(srv *oauth.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("callback server shutdown", "error", err)
	}
}

// loadActive reads the wallet's challenges and returns the active ones.
func (a *appContext) loadActive() ([]domain.Challenge, error) {
	src, err := a.dial(a.ctx)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	slots, _ := dashboard.Load(a.ctx, src, a.wallet)
	return slots.Active(), nil
}

type ChallengesCmd struct{}

func (ChallengesCmd) Run(app *appContext) error {
	if app.wallet == "" {
		printNoWallet(app.out)
		return nil
	}
	active, err := app.loadActive()
	if err != nil {
		return err
	}
	if len(active) == 0 {
		fmt.Fprintln(app.out, dimStyle.Render(dashboard.MsgNoActive))
		return nil
	}

	for _, c := range active {
		kind := domain.KindOf(c.HabitDescription)
		fmt.Fprintf(app.out, "  %s  %s  %s\n",
			boldStyle.Render(fmt.Sprintf("#%d %-24s", c.ID, c.Title())),
			dimStyle.Render(fmt.Sprintf("%-8s %d/%d days", kind.ID, c.CompletedDays, c.DurationDays)),
			accentStyle.Render(chain.FormatEther(c.StakeAmount)+" "+chain.Sepolia.NativeSymbol))
	}
	total := dashboard.TotalStake(active)
	fmt.Fprintf(app.out, "\n  %s %s\n", dimStyle.Render("total staked"),
		accentStyle.Render(chain.FormatEther(total)+" "+chain.Sepolia.NativeSymbol))
	return nil
}

type StatusCmd struct{}

func (StatusCmd) Run(app *appContext) error {
	if app.wallet == "" {
		printNoWallet(app.out)
		return nil
	}
	st := dashboard.FetchStatus(app.ctx, app.client, app.wallet, domain.GitHubStatus{})
	fmt.Fprintf(app.out, "%s %s\n", dimStyle.Render("wallet"), wallet.Short(app.wallet))
	if st.Connected {
		fmt.Fprintf(app.out, "%s %s\n", dimStyle.Render("github"), successStyle.Render("@"+st.Username))
	} else {
		fmt.Fprintf(app.out, "%s %s\n", dimStyle.Render("github"), warnStyle.Render("not linked, run habitcoach github link"))
	}
	return nil
}

type CheckCmd struct{}

func (CheckCmd) Run(app *appContext) error {
	if app.wallet == "" {
		printNoWallet(app.out)
		return nil
	}
	st := dashboard.FetchStatus(app.ctx, app.client, app.wallet, domain.GitHubStatus{})
	if !st.Connected {
		fmt.Fprintln(app.out, warnStyle.Render("GitHub is not linked, run habitcoach github link"))
		return nil
	}
	active, err := app.loadActive()
	if err != nil {
		return err
	}

	out := dashboard.Evaluate(app.ctx, app.client, app.wallet, st, active)
	logger.Info("check-in", "wallet", app.wallet, "state", out.State, "hashes", len(out.TxHashes))
	switch out.State {
	case dashboard.StateCheckedIn:
		fmt.Fprintln(app.out, successStyle.Render(out.Message))
	case dashboard.StateNotCheckedIn, dashboard.StateFailed:
		fmt.Fprintln(app.out, warnStyle.Render(out.Message))
	case dashboard.StateNoActive:
		fmt.Fprintln(app.out, dimStyle.Render(out.Message))
	}
	if out.State == dashboard.StateFailed {
		return errors.New("check-in failed")
	}
	return nil
}

type GithubLinkCmd struct {
	Timeout time.Duration `help:"How long to wait for the browser callback." default:"2m"`
	NoOpen  bool          `name:"no-open" help:"Print the link instead of opening a browser."`
}

func (c *GithubLinkCmd) Run(app *appContext) error {
	if app.wallet == "" {
		printNoWallet(app.out)
		return nil
	}

	srv, err := oauth.Start(app.cfg.CallbackAddr)
	if err != nil {
		return err
	}
	defer stopServer(srv)

	logger.Debug("waiting for github callback", "url", srv.URL())
	link := app.client.AuthURL(app.wallet)
	fmt.Fprintf(app.out, "%s\n  %s\n", dimStyle.Render("Link GitHub in your browser:"), link)
	if !c.NoOpen {
		if err := oauth.Open(link); err != nil {
			logger.Warn("open browser failed", "error", err)
			fmt.Fprintln(app.out, dimStyle.Render("Could not open a browser, visit the link above."))
		}
	}

	ctx, cancel := context.WithTimeout(app.ctx, c.Timeout)
	defer cancel()
	cb, err := srv.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("no callback within %s", c.Timeout)
	}
	if err != nil {
		return err
	}
	logger.Debug("github callback", "user", cb.User)

	st := dashboard.FetchStatus(app.ctx, app.client, app.wallet, domain.GitHubStatus{})
	if !st.Connected {
		return errors.New("backend does not report the wallet as linked yet, try habitcoach status")
	}
	fmt.Fprintf(app.out, "%s %s\n", successStyle.Render("linked"), "@"+st.Username)
	return nil
}

type WalletConnectCmd struct {
	Address string `arg:"" optional:"" help:"Wallet address. Prompts when omitted."`
}

func (c *WalletConnectCmd) Run(app *appContext) error {
	addr := strings.TrimSpace(c.Address)
	if addr == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Wallet address").
					Description("The Sepolia address your challenges are staked from.").
					Placeholder("0x...").
					Value(&addr).
					Validate(validateAddress),
			),
		).WithTheme(huh.ThemeCharm())
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		addr = strings.TrimSpace(addr)
	}
	if err := validateAddress(addr); err != nil {
		return err
	}

	if err := keyring.SetWallet(addr); err != nil {
		return err
	}
	fmt.Fprintf(app.out, "%s %s\n", successStyle.Render("paired"), wallet.Short(common.HexToAddress(addr).Hex()))
	return nil
}

func validateAddress(s string) error {
	if !common.IsHexAddress(strings.TrimSpace(s)) {
		return errors.New("not a valid 0x address")
	}
	return nil
}

type WalletDisconnectCmd struct{}

func (WalletDisconnectCmd) Run(app *appContext) error {
	err := keyring.DeleteWallet()
	if errors.Is(err, keyring.ErrNotFound) {
		fmt.Fprintln(app.out, dimStyle.Render("no paired wallet"))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out, "wallet forgotten")
	return nil
}

type WalletShowCmd struct{}

func (WalletShowCmd) Run(app *appContext) error {
	if app.wallet == "" {
		printNoWallet(app.out)
		return nil
	}
	fmt.Fprintf(app.out, "%s %s\n", boldStyle.Render(app.wallet), dimStyle.Render("("+string(app.via)+")"))
	return nil
}

type VersionCmd struct{}

func (VersionCmd) Run(app *appContext) error {
	fmt.Fprintf(app.out, "habitcoach %s\n", version)
	return nil
}
