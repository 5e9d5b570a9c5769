// Package wallet resolves the connected wallet address from the configured
// connectors.
package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ggus39/Habit-Coach/internal/keyring"
	"github.com/ggus39/Habit-Coach/internal/logger"
	"github.com/ggus39/Habit-Coach/pkg/chain"
)

// ErrNoWallet means no connector yielded an address. Callers treat it as the
// disconnected state, not a failure.
var ErrNoWallet = errors.New("no wallet connected")

// Connector yields a wallet address, or ErrNoWallet when it has none.
type Connector interface {
	Kind() chain.ConnectorKind
	Connect(ctx context.Context) (string, error)
}

// Injected is an address supplied by the environment (flag or env var).
type Injected struct {
	Address string
}

func (Injected) Kind() chain.ConnectorKind { return chain.ConnectorInjected }

func (i Injected) Connect(context.Context) (string, error) {
	if i.Address == "" {
		return "", ErrNoWallet
	}
	return i.Address, nil
}

// MetaMask is the address paired with `habitcoach wallet connect`.
type MetaMask struct {
	// Load defaults to keyring.GetWallet.
	Load func() (string, error)
}

func (MetaMask) Kind() chain.ConnectorKind { return chain.ConnectorMetaMask }

func (m MetaMask) Connect(context.Context) (string, error) {
	load := m.Load
	if load == nil {
		load = keyring.GetWallet
	}
	addr, err := load()
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoWallet
	}
	if err != nil {
		return "", err
	}
	return addr, nil
}

// Resolve walks connectors in order and returns the first valid address in
// checksummed form. Connector errors are logged and skipped.
func Resolve(ctx context.Context, connectors ...Connector) (string, chain.ConnectorKind, error) {
	for _, c := range connectors {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}
		addr, err := c.Connect(ctx)
		if errors.Is(err, ErrNoWallet) {
			continue
		}
		if err != nil {
			logger.Warn("wallet connector failed", "connector", c.Kind(), "error", err)
			continue
		}
		if !common.IsHexAddress(addr) {
			logger.Warn("wallet connector returned invalid address", "connector", c.Kind(), "address", addr)
			continue
		}
		return common.HexToAddress(addr).Hex(), c.Kind(), nil
	}
	return "", "", ErrNoWallet
}

// Connectors builds the connector chain for the given order. The injected
// connector carries address; unknown kinds are an error.
func Connectors(order []chain.ConnectorKind, address string) ([]Connector, error) {
	cfg := chain.Default()
	out := make([]Connector, 0, len(order))
	for _, k := range order {
		if !cfg.Supports(k) {
			return nil, fmt.Errorf("wallet: unsupported connector %q", k)
		}
		switch k {
		case chain.ConnectorInjected:
			out = append(out, Injected{Address: address})
		case chain.ConnectorMetaMask:
			out = append(out, MetaMask{})
		}
	}
	return out, nil
}

// Short abbreviates an address as 0x1234…abcd for display.
func Short(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}
