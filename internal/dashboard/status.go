package dashboard

import (
	"context"
	"net/url"

	"github.com/ggus39/Habit-Coach/internal/logger"
	"github.com/ggus39/Habit-Coach/pkg/domain"
)

// StatusClient fetches the wallet's GitHub linkage.
type StatusClient interface {
	GitHubStatus(ctx context.Context, walletAddress string) (*domain.GitHubStatus, error)
}

// FetchStatus returns the current linkage. Without a wallet, or when the
// fetch fails, prior is returned unchanged.
func FetchStatus(ctx context.Context, c StatusClient, wallet string, prior domain.GitHubStatus) domain.GitHubStatus {
	if wallet == "" {
		return prior
	}
	st, err := c.GitHubStatus(ctx, wallet)
	if err != nil {
		logger.Warn("github status fetch failed", "wallet", wallet, "error", err)
		return prior
	}
	return *st
}

// CallbackParam marks a redirect back from a completed GitHub authorization.
const CallbackParam = "github_connected"

// CallbackUserParam carries the linked GitHub login on the same redirect.
const CallbackUserParam = "github_user"

// Callback is a parsed OAuth return.
type Callback struct {
	User string
}

// ConsumeCallback reports whether u carries the completion marker. The
// returned URL is u with its query removed; the caller navigates there so
// the marker is handled once.
func ConsumeCallback(u *url.URL) (Callback, *url.URL, bool) {
	q := u.Query()
	if q.Get(CallbackParam) != "true" {
		return Callback{}, u, false
	}
	clean := *u
	clean.RawQuery = ""
	clean.ForceQuery = false
	return Callback{User: q.Get(CallbackUserParam)}, &clean, true
}
