// Package dashboard aggregates a wallet's on-chain challenges with its GitHub
// check-in status. It holds no state; the TUI and the CLI commands both drive
// it.
package dashboard

import (
	"context"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/ggus39/Habit-Coach/internal/logger"
	"github.com/ggus39/Habit-Coach/pkg/chain"
	"github.com/ggus39/Habit-Coach/pkg/domain"
)

// MaxChallenges is how many challenge indices are ever read. Challenges at
// index 3 and above are never shown.
const MaxChallenges = 3

// ChallengeReader is the contract-read surface the dashboard needs.
type ChallengeReader interface {
	ChallengeCount(ctx context.Context, owner string) (uint64, error)
	GetChallenge(ctx context.Context, owner string, index uint64) (domain.Challenge, error)
}

// Slots holds the per-index reads. A nil slot has no data, either because it
// was not read, the read failed, or it has not arrived yet.
type Slots [MaxChallenges]*domain.Challenge

// Set stores c at its positional index. Out-of-range indices are ignored.
func (s *Slots) Set(index int, c *domain.Challenge) {
	if index < 0 || index >= MaxChallenges {
		return
	}
	if c != nil {
		cp := *c
		cp.ID = index
		c = &cp
	}
	s[index] = c
}

// Active returns the active challenges in index order.
func (s Slots) Active() []domain.Challenge {
	var out []domain.Challenge
	for _, c := range s {
		if c != nil && c.IsActive() {
			out = append(out, *c)
		}
	}
	return out
}

// ShouldRead reports whether index i may be read for wallet given the count.
func ShouldRead(wallet string, count uint64, i int) bool {
	return wallet != "" && i >= 0 && i < MaxChallenges && count > uint64(i)
}

// Count reads the challenge count. Failures are logged and read as zero.
func Count(ctx context.Context, r ChallengeReader, wallet string) uint64 {
	if wallet == "" {
		return 0
	}
	n, err := r.ChallengeCount(ctx, wallet)
	if err != nil {
		logger.Warn("challenge count read failed", "wallet", wallet, "error", err)
		return 0
	}
	return n
}

// Read reads one slot. Failures are logged and leave the slot empty.
func Read(ctx context.Context, r ChallengeReader, wallet string, index int) *domain.Challenge {
	c, err := r.GetChallenge(ctx, wallet, uint64(index))
	if err != nil {
		logger.Warn("challenge read failed", "wallet", wallet, "index", index, "error", err)
		return nil
	}
	c.ID = index
	return &c
}

// Load reads the count and then the gated indices concurrently. A failed
// read blanks its slot and does not cancel the others.
func Load(ctx context.Context, r ChallengeReader, wallet string) (Slots, uint64) {
	var slots Slots
	count := Count(ctx, r, wallet)

	var g errgroup.Group
	for i := 0; i < MaxChallenges; i++ {
		if !ShouldRead(wallet, count, i) {
			continue
		}
		g.Go(func() error {
			slots[i] = Read(ctx, r, wallet, i)
			return nil
		})
	}
	_ = g.Wait()
	return slots, count
}

// TotalStake sums the stake of the given challenges, in wei.
func TotalStake(challenges []domain.Challenge) *big.Int {
	amounts := make([]*big.Int, 0, len(challenges))
	for _, c := range challenges {
		amounts = append(amounts, c.StakeAmount)
	}
	return chain.SumStakes(amounts...)
}
