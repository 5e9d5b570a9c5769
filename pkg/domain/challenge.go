package domain

import (
	"math/big"
	"strings"
	"time"
)

// ChallengeStatus mirrors the HabitEscrow status enum.
type ChallengeStatus uint8

const (
	StatusActive ChallengeStatus = iota
	StatusCompleted
	StatusFailed
)

func (s ChallengeStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Challenge is one on-chain habit challenge owned by a wallet.
// ID is the positional index the contract was read at, not a stable identifier.
type Challenge struct {
	ID               int             `json:"id"`
	HabitDescription string          `json:"habit_description"`
	StakeAmount      *big.Int        `json:"stake_amount,omitempty"` // wei
	StartTime        time.Time       `json:"start_time"`
	DurationDays     int             `json:"duration_days"`
	CompletedDays    int             `json:"completed_days"`
	Status           ChallengeStatus `json:"status"`
}

// IsActive reports whether the challenge is still in progress.
func (c Challenge) IsActive() bool {
	return c.Status == StatusActive
}

// Title returns the habit name, the part of the description before " - ".
func (c Challenge) Title() string {
	name, _, _ := strings.Cut(c.HabitDescription, " - ")
	return name
}

// IsCoding reports whether the challenge is verified through GitHub commits.
func (c Challenge) IsCoding() bool {
	return strings.Contains(c.HabitDescription, MarkerCoding)
}
