// Package chain holds the network and wallet-connector configuration and the
// read-only HabitEscrow contract binding.
package chain

import (
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Set at build time with
//
//	-ldflags "-X github.com/ggus39/Habit-Coach/pkg/chain.rpcURL=... -X github.com/ggus39/Habit-Coach/pkg/chain.escrowAddress=0x..."
var (
	rpcURL        = "https://ethereum-sepolia-rpc.publicnode.com"
	escrowAddress = "0x0000000000000000000000000000000000000000"
)

// ConnectorKind names a way of obtaining the user's wallet address.
type ConnectorKind string

const (
	ConnectorInjected ConnectorKind = "injected"
	ConnectorMetaMask ConnectorKind = "metaMask"
)

// Chain describes an EVM network.
type Chain struct {
	ID           uint64
	Name         string
	NativeSymbol string
	Testnet      bool
}

// Sepolia is the only network the app talks to.
var Sepolia = Chain{ID: 11155111, Name: "Sepolia", NativeSymbol: "ETH", Testnet: true}

// Config is the process-wide chain configuration.
type Config struct {
	Chain         Chain
	Connectors    []ConnectorKind
	RPCURL        string
	EscrowAddress common.Address
}

// Supports reports whether kind is an accepted connector.
func (c Config) Supports(kind ConnectorKind) bool {
	return slices.Contains(c.Connectors, kind)
}

var (
	defaultOnce sync.Once
	defaultCfg  Config
)

// Default returns the configuration built once at first use. Callers get a
// copy; the singleton itself never changes.
func Default() Config {
	defaultOnce.Do(func() {
		defaultCfg = Config{
			Chain:         Sepolia,
			Connectors:    []ConnectorKind{ConnectorInjected, ConnectorMetaMask},
			RPCURL:        rpcURL,
			EscrowAddress: common.HexToAddress(escrowAddress),
		}
	})
	cfg := defaultCfg
	cfg.Connectors = slices.Clone(defaultCfg.Connectors)
	return cfg
}
