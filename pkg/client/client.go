package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ggus39/Habit-Coach/pkg/domain"
)

// DefaultTimeout bounds a single backend call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client is the Habit-Coach agent API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client. baseURL includes the agent prefix,
// e.g. "https://api.example.com/agent".
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// statusResponse is the wire shape of /github/status.
type statusResponse struct {
	Connected       bool   `json:"connected"`
	GitHubUsername  string `json:"githubUsername"`
	GitHubAvatarURL string `json:"githubAvatarUrl"`
}

// GitHubStatus returns the GitHub linkage for a wallet.
func (c *Client) GitHubStatus(ctx context.Context, walletAddress string) (*domain.GitHubStatus, error) {
	params := url.Values{}
	params.Set("walletAddress", walletAddress)

	var resp statusResponse
	if err := c.get(ctx, "/github/status?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("client.GitHubStatus: %w", err)
	}
	return &domain.GitHubStatus{
		Connected: resp.Connected,
		Username:  resp.GitHubUsername,
		AvatarURL: resp.GitHubAvatarURL,
	}, nil
}

// AuthURL returns the browser URL that starts GitHub OAuth for a wallet.
// The backend answers it with a redirect, so it is opened, never fetched.
func (c *Client) AuthURL(walletAddress string) string {
	params := url.Values{}
	params.Set("walletAddress", walletAddress)
	return c.baseURL + "/github/auth?" + params.Encode()
}

// CheckGitHub asks the backend whether the wallet pushed a commit today for
// the challenge at the given positional id.
func (c *Client) CheckGitHub(ctx context.Context, walletAddress string, challengeID int) (*domain.CheckInResult, error) {
	params := url.Values{}
	params.Set("walletAddress", walletAddress)
	params.Set("challengeId", strconv.Itoa(challengeID))

	var result domain.CheckInResult
	if err := c.get(ctx, "/github/check?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("client.CheckGitHub: %w", err)
	}
	return &result, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
			if apiErr.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, out)
}
