package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/ggus39/Habit-Coach/pkg/domain"
)

// EscrowABI is the read-only subset of the HabitEscrow interface.
const EscrowABI = `[
  {"type":"function","name":"challengeCount","stateMutability":"view",
   "inputs":[{"name":"user","type":"address"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"getChallenge","stateMutability":"view",
   "inputs":[{"name":"user","type":"address"},{"name":"index","type":"uint256"}],
   "outputs":[{"name":"","type":"tuple","internalType":"struct HabitEscrow.Challenge",
     "components":[
       {"name":"habitDescription","type":"string"},
       {"name":"stakeAmount","type":"uint256"},
       {"name":"startTime","type":"uint256"},
       {"name":"durationDays","type":"uint256"},
       {"name":"completedDays","type":"uint256"},
       {"name":"status","type":"uint8","internalType":"enum HabitEscrow.ChallengeStatus"}
     ]}]}
]`

// ErrInvalidAddress is returned for a wallet that is not a 20-byte hex address.
var ErrInvalidAddress = errors.New("invalid wallet address")

// escrowChallenge matches the getChallenge tuple; field names follow the
// ABI component names.
type escrowChallenge struct {
	HabitDescription string
	StakeAmount      *big.Int
	StartTime        *big.Int
	DurationDays     *big.Int
	CompletedDays    *big.Int
	Status           uint8
}

// Escrow reads challenges from a deployed HabitEscrow contract.
type Escrow struct {
	contract *bind.BoundContract
	close    func()
}

// NewEscrow binds the contract at address over any contract caller.
func NewEscrow(address common.Address, caller bind.ContractCaller) (*Escrow, error) {
	parsed, err := abi.JSON(strings.NewReader(EscrowABI))
	if err != nil {
		return nil, fmt.Errorf("chain.NewEscrow: parse abi: %w", err)
	}
	return &Escrow{
		contract: bind.NewBoundContract(address, parsed, caller, nil, nil),
		close:    func() {},
	}, nil
}

// Dial connects to the configured RPC transport and binds the escrow.
func Dial(ctx context.Context, cfg Config) (*Escrow, error) {
	ec, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("chain.Dial: %w", err)
	}
	e, err := NewEscrow(cfg.EscrowAddress, ec)
	if err != nil {
		ec.Close()
		return nil, err
	}
	e.close = ec.Close
	return e, nil
}

// Close releases the RPC transport.
func (e *Escrow) Close() {
	e.close()
}

// ChallengeCount returns how many challenges the wallet has ever created.
func (e *Escrow) ChallengeCount(ctx context.Context, owner string) (uint64, error) {
	if !common.IsHexAddress(owner) {
		return 0, fmt.Errorf("chain.ChallengeCount: %w: %q", ErrInvalidAddress, owner)
	}
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx}
	if err := e.contract.Call(opts, &out, "challengeCount", common.HexToAddress(owner)); err != nil {
		return 0, fmt.Errorf("chain.ChallengeCount: %w", err)
	}
	n := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	if !n.IsUint64() {
		return 0, fmt.Errorf("chain.ChallengeCount: count %s overflows uint64", n)
	}
	return n.Uint64(), nil
}

// GetChallenge reads the challenge at a positional index for the wallet.
func (e *Escrow) GetChallenge(ctx context.Context, owner string, index uint64) (domain.Challenge, error) {
	if !common.IsHexAddress(owner) {
		return domain.Challenge{}, fmt.Errorf("chain.GetChallenge: %w: %q", ErrInvalidAddress, owner)
	}
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx}
	idx := new(big.Int).SetUint64(index)
	if err := e.contract.Call(opts, &out, "getChallenge", common.HexToAddress(owner), idx); err != nil {
		return domain.Challenge{}, fmt.Errorf("chain.GetChallenge(%d): %w", index, err)
	}
	raw := *abi.ConvertType(out[0], new(escrowChallenge)).(*escrowChallenge)
	return toDomain(raw, int(index)), nil
}

func toDomain(raw escrowChallenge, index int) domain.Challenge {
	c := domain.Challenge{
		ID:               index,
		HabitDescription: raw.HabitDescription,
		StakeAmount:      raw.StakeAmount,
		DurationDays:     bigToInt(raw.DurationDays),
		CompletedDays:    bigToInt(raw.CompletedDays),
		Status:           domain.ChallengeStatus(raw.Status),
	}
	if raw.StartTime != nil && raw.StartTime.Sign() > 0 && raw.StartTime.IsInt64() {
		c.StartTime = time.Unix(raw.StartTime.Int64(), 0).UTC()
	}
	return c
}

func bigToInt(v *big.Int) int {
	if v == nil || !v.IsInt64() {
		return 0
	}
	return int(v.Int64())
}
