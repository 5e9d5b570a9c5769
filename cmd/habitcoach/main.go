package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/ggus39/Habit-Coach/internal/config"
	"github.com/ggus39/Habit-Coach/internal/dashboard"
	"github.com/ggus39/Habit-Coach/internal/logger"
	"github.com/ggus39/Habit-Coach/internal/wallet"
	"github.com/ggus39/Habit-Coach/pkg/chain"
	"github.com/ggus39/Habit-Coach/pkg/client"
)

// Set at build time with -ldflags "-X main.version=v1.0.0"
var version = "dev"

type cli struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	Wallet  string `help:"Injected wallet address, takes precedence over the paired one." placeholder:"0x..."`
	APIURL  string `name:"api-url" help:"Habit-coach backend base URL."`
	Debug   bool   `help:"Enable debug logging."`

	Dashboard  DashboardCmd  `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Detail     DetailCmd     `cmd:"" help:"Open the challenge detail page."`
	Challenges ChallengesCmd `cmd:"" help:"List active challenges."`
	Status     StatusCmd     `cmd:"" help:"Show GitHub linkage for the wallet."`
	Check      CheckCmd      `cmd:"" help:"Run a check-in for active challenges."`
	Github     struct {
		Link GithubLinkCmd `cmd:"" help:"Link a GitHub account in the browser."`
	} `cmd:"" help:"Manage the GitHub link."`
	WalletCmd struct {
		Connect    WalletConnectCmd    `cmd:"" help:"Pair a wallet address."`
		Disconnect WalletDisconnectCmd `cmd:"" help:"Forget the paired wallet."`
		Show       WalletShowCmd       `cmd:"" help:"Show the resolved wallet." default:"1"`
	} `cmd:"" name:"wallet" help:"Manage the paired wallet."`
	VersionCmd VersionCmd `cmd:"" name:"version" help:"Show version."`
}

var CLI cli

// challengeSource is the escrow as the commands see it.
type challengeSource interface {
	dashboard.ChallengeReader
	Close()
}

// appContext is bound into every command's Run method.
type appContext struct {
	ctx    context.Context
	cfg    *config.Config
	client *client.Client
	wallet string
	via    chain.ConnectorKind
	out    io.Writer
	dial   func(ctx context.Context) (challengeSource, error)
}

func dialEscrow(ctx context.Context) (challengeSource, error) {
	e, err := chain.Dial(ctx, chain.Default())
	if err != nil {
		return nil, err
	}
	return e, nil
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("habitcoach"),
		kong.Description("Stake on your habits. Check in from the terminal."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     version,
			"config_path": config.DefaultPath(),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := newAppContext(ctx, &CLI, interactive(kctx.Command()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := kctx.Run(app); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// interactive reports whether the command takes over the terminal, in which
// case logs never go to stderr.
func interactive(command string) bool {
	switch command {
	case "dashboard", "detail", "wallet connect":
		return true
	}
	return false
}

// newAppContext loads config, overlays flags, starts logging and resolves
// the wallet. No wallet is not an error.
func newAppContext(ctx context.Context, c *cli, tty bool) (*appContext, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Wallet != "" {
		cfg.Wallet.Address = c.Wallet
	}
	if c.APIURL != "" {
		cfg.API.BaseURL = c.APIURL
	}
	if c.Debug {
		cfg.Log.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logger.Init(logger.Config{
		Debug:   cfg.Log.Debug,
		DataDir: cfg.DataDir,
		Stderr:  !tty,
	}); err != nil {
		// Logging is best effort; carry on without it.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		logger.Discard()
	}

	connectors, err := wallet.Connectors(cfg.ConnectorKinds(), cfg.Wallet.Address)
	if err != nil {
		return nil, err
	}
	addr, via, err := wallet.Resolve(ctx, connectors...)
	if err != nil && !errors.Is(err, wallet.ErrNoWallet) {
		return nil, err
	}
	logger.Debug("wallet resolved", "wallet", addr, "connector", via)

	return &appContext{
		ctx:    ctx,
		cfg:    cfg,
		client: client.New(cfg.API.BaseURL, cfg.API.Timeout),
		wallet: addr,
		via:    via,
		out:    os.Stdout,
		dial:   dialEscrow,
	}, nil
}
