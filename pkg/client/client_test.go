package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const testWallet = "0x1111111111111111111111111111111111111111"

func TestGitHubStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/agent/github/status" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("walletAddress"); got != testWallet {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Header.Get("X-Request-ID") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"connected":       true,
			"githubUsername":  "octocat",
			"githubAvatarUrl": "https://avatars.example/octocat.png",
		})
	}))
	defer srv.Close()

	c := New(srv.URL+"/agent", time.Second)
	st, err := c.GitHubStatus(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("GitHubStatus() error: %v", err)
	}
	if !st.Connected {
		t.Error("Connected = false, want true")
	}
	if st.Username != "octocat" {
		t.Errorf("Username = %q, want %q", st.Username, "octocat")
	}
	if st.AvatarURL != "https://avatars.example/octocat.png" {
		t.Errorf("AvatarURL = %q", st.AvatarURL)
	}
}

func TestGitHubStatus_NotConnected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"connected": false}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	st, err := c.GitHubStatus(context.Background(), testWallet)
	if err != nil {
		t.Fatalf("GitHubStatus() error: %v", err)
	}
	if st.Connected || st.Username != "" {
		t.Errorf("got %+v, want zero status", st)
	}
}

func TestCheckGitHub(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/github/check" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("challengeId") != "1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"success":        true,
			"clockedIn":      true,
			"txHash":         "0xabc",
			"message":        "ok",
			"githubUsername": "octocat",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	res, err := c.CheckGitHub(context.Background(), testWallet, 1)
	if err != nil {
		t.Fatalf("CheckGitHub() error: %v", err)
	}
	if !res.ClockedIn {
		t.Error("ClockedIn = false, want true")
	}
	if res.TxHash != "0xabc" {
		t.Errorf("TxHash = %q, want %q", res.TxHash, "0xabc")
	}
}

func TestAuthURL(t *testing.T) {
	c := New("https://api.example.com/agent/", time.Second)
	got := c.AuthURL(testWallet)
	want := "https://api.example.com/agent/github/auth?walletAddress=" + testWallet
	if got != want {
		t.Errorf("AuthURL() = %q, want %q", got, want)
	}
}

func TestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.GitHubStatus(context.Background(), testWallet)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if got := err.Error(); !strings.Contains(got, "boom") {
		t.Errorf("error = %q, want it to contain 'boom'", got)
	}
	if !IsStatus(err, http.StatusInternalServerError) {
		t.Errorf("IsStatus(err, 500) = false for %v", err)
	}
	if !IsBackendDown(err) {
		t.Errorf("IsBackendDown(err) = false for %v", err)
	}
}

func TestHTTPError_SpringMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Required parameter 'walletAddress' is not present."}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.CheckGitHub(context.Background(), "", 0)
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "walletAddress") {
		t.Errorf("error = %q, want backend message", err.Error())
	}
	if IsBackendDown(err) {
		t.Error("IsBackendDown() = true for a 400")
	}
}

func TestIsBackendDown(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"transport", errors.New("dial tcp: connection refused"), true},
		{"404", &HTTPError{StatusCode: 404}, false},
		{"503", &HTTPError{StatusCode: 503}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBackendDown(tt.err); got != tt.want {
				t.Errorf("IsBackendDown(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestDoRequest_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// slow server
		time.Sleep(2 * time.Second)
		json.NewEncoder(w).Encode(map[string]any{"connected": true}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	_, err := c.GitHubStatus(ctx, testWallet)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}
