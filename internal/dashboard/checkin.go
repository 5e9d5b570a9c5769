package dashboard

import (
	"context"
	"strings"

	"github.com/ggus39/Habit-Coach/internal/logger"
	"github.com/ggus39/Habit-Coach/pkg/client"
	"github.com/ggus39/Habit-Coach/pkg/domain"
)

// Messages produced by a check-in run.
const (
	MsgCheckedIn    = "clocked in today ✅"
	MsgNotCheckedIn = "no valid commit detected today, keep going ❌"
	MsgNoActive     = "no active challenges"
	MsgCheckFailed  = "check failed, please retry"

	// CompletedMarker is the substring of MsgCheckedIn that marks a coding
	// row as completed.
	CompletedMarker = "clocked in today"

	txHashPrefix = "\ntx hash: "
)

// CheckInClient asks the backend whether a challenge was clocked in today.
type CheckInClient interface {
	CheckGitHub(ctx context.Context, walletAddress string, challengeID int) (*domain.CheckInResult, error)
}

// State is the outcome class of a check-in run.
type State int

const (
	// StateSkipped means the run did not happen: no wallet or GitHub unlinked.
	StateSkipped State = iota
	// StateSilent means there were active challenges but none is a coding habit.
	StateSilent
	StateNoActive
	StateCheckedIn
	StateNotCheckedIn
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSkipped:
		return "skipped"
	case StateSilent:
		return "silent"
	case StateNoActive:
		return "no-active"
	case StateCheckedIn:
		return "checked-in"
	case StateNotCheckedIn:
		return "not-checked-in"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one check-in run. Message is empty for the
// skipped and silent states.
type Outcome struct {
	State    State
	Message  string
	TxHashes []string
}

// Alerts reports whether a manual run with this outcome opens an alert.
func (o Outcome) Alerts() bool {
	return o.State == StateCheckedIn || o.State == StateNotCheckedIn
}

// Evaluate checks every active coding challenge in order. The first failing
// call aborts the run and nothing gathered before it is kept.
func Evaluate(ctx context.Context, c CheckInClient, wallet string, status domain.GitHubStatus, active []domain.Challenge) Outcome {
	if wallet == "" || !status.Connected {
		return Outcome{State: StateSkipped}
	}
	if len(active) == 0 {
		return Outcome{State: StateNoActive, Message: MsgNoActive}
	}

	var (
		clockedIn bool
		hasCoding bool
		hashes    []string
	)
	for _, ch := range active {
		if !ch.IsCoding() {
			continue
		}
		hasCoding = true
		res, err := c.CheckGitHub(ctx, wallet, ch.ID)
		if err != nil {
			logger.Warn("check-in call failed", "wallet", wallet, "challenge", ch.ID,
				"backend_down", client.IsBackendDown(err), "error", err)
			return Outcome{State: StateFailed, Message: MsgCheckFailed}
		}
		if res.ClockedIn {
			clockedIn = true
			if res.TxHash != "" {
				hashes = append(hashes, res.TxHash)
			}
		}
	}

	switch {
	case clockedIn:
		msg := MsgCheckedIn
		if len(hashes) > 0 {
			msg += txHashPrefix + strings.Join(hashes, ", ")
		}
		return Outcome{State: StateCheckedIn, Message: msg, TxHashes: hashes}
	case hasCoding:
		return Outcome{State: StateNotCheckedIn, Message: MsgNotCheckedIn}
	default:
		return Outcome{State: StateSilent}
	}
}

// ShouldEvaluate reports whether a check-in run applies.
func ShouldEvaluate(linked bool, activeCount int) bool {
	return linked && activeCount > 0
}

// AutoTrigger fires an automatic check when the (linked, active count) pair
// changes to a state where a run applies.
type AutoTrigger struct {
	linked bool
	count  int
}

// Observe records the current pair and reports whether to run a check.
func (t *AutoTrigger) Observe(linked bool, activeCount int) bool {
	if t.linked == linked && t.count == activeCount {
		return false
	}
	t.linked, t.count = linked, activeCount
	return ShouldEvaluate(linked, activeCount)
}

// TaskCompleted reports whether c renders as done given the latest check-in
// message. Only coding habits can complete here.
func TaskCompleted(c domain.Challenge, message string) bool {
	return c.IsCoding() && strings.Contains(message, CompletedMarker)
}
