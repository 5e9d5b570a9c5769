package tui

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ggus39/Habit-Coach/internal/dashboard"
	"github.com/ggus39/Habit-Coach/pkg/domain"
)

const testWallet = "0x1111111111111111111111111111111111111111"

type fakeReader struct {
	mu         sync.Mutex
	count      uint64
	challenges map[uint64]domain.Challenge
	reads      []uint64
}

func (f *fakeReader) ChallengeCount(context.Context, string) (uint64, error) {
	return f.count, nil
}

func (f *fakeReader) GetChallenge(_ context.Context, _ string, i uint64) (domain.Challenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, i)
	c, ok := f.challenges[i]
	if !ok {
		return domain.Challenge{}, errors.New("execution reverted")
	}
	return c, nil
}

type fakeBackend struct {
	status      domain.GitHubStatus
	results     map[int]domain.CheckInResult
	statusCalls int
	checkCalls  []int
}

func (f *fakeBackend) GitHubStatus(context.Context, string) (*domain.GitHubStatus, error) {
	f.statusCalls++
	st := f.status
	return &st, nil
}

func (f *fakeBackend) CheckGitHub(_ context.Context, _ string, id int) (*domain.CheckInResult, error) {
	f.checkCalls = append(f.checkCalls, id)
	r := f.results[id]
	return &r, nil
}

func (f *fakeBackend) AuthURL(w string) string {
	return "http://localhost:8080/agent/github/auth?walletAddress=" + w
}

// collect runs cmd and any batched commands, returning the non-nil messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// feed applies msgs and every message their commands produce. Check results,
// alerts, and navigation are returned instead so tests control when they land.
func feed(m dashboardModel, msgs ...tea.Msg) (dashboardModel, []tea.Msg) {
	var held []tea.Msg
	queue := msgs
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		for _, out := range collect(cmd) {
			switch out.(type) {
			case checkDoneMsg, openAlertMsg, navigateMsg:
				held = append(held, out)
			case spinner.TickMsg:
				// animation only
			default:
				queue = append(queue, out)
			}
		}
	}
	return m, held
}

func newTestDashboard(r *fakeReader, b *fakeBackend, wallet string) dashboardModel {
	m := newDashboardModel(Deps{Reader: r, Backend: b, Wallet: wallet})
	m.width = 100
	m.height = 40
	return m
}

func active(desc string) domain.Challenge {
	return domain.Challenge{HabitDescription: desc, Status: domain.StatusActive}
}

func TestDashboardNoWallet(t *testing.T) {
	r := &fakeReader{count: 3}
	b := &fakeBackend{}
	m := newTestDashboard(r, b, "")

	if cmd := m.Init(); cmd != nil {
		t.Error("Init() without wallet should schedule nothing")
	}
	view := m.View()
	if !strings.Contains(view, "no wallet connected") {
		t.Errorf("view missing disconnected hint:\n%s", view)
	}
	if !strings.Contains(view, "no active challenges") {
		t.Errorf("view missing empty task list:\n%s", view)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if cmd != nil {
		t.Error("manual check without wallet should do nothing")
	}
}

func TestDashboardLinkWithoutWalletAlerts(t *testing.T) {
	m := newTestDashboard(&fakeReader{}, &fakeBackend{}, "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1 alert", len(msgs))
	}
	alert, ok := msgs[0].(openAlertMsg)
	if !ok || alert.text != "connect a wallet first" {
		t.Errorf("got %#v, want connect-wallet alert", msgs[0])
	}
}

func TestDashboardCountGatesReads(t *testing.T) {
	r := &fakeReader{count: 7, challenges: map[uint64]domain.Challenge{
		0: active("阅读 - 30min"), 1: active("跑步 - 5km"), 2: active("冥想 - 10min"), 3: active("never read"),
	}}
	m := newTestDashboard(r, &fakeBackend{}, testWallet)

	m, _ = feed(m, countLoadedMsg{count: 7})
	if len(r.reads) != 3 {
		t.Fatalf("reads = %v, want exactly indices 0..2", r.reads)
	}
	for _, i := range r.reads {
		if i >= 3 {
			t.Errorf("read index %d, want < 3", i)
		}
	}
	if n := len(m.slots.Active()); n != 3 {
		t.Errorf("active = %d, want 3", n)
	}
	view := m.View()
	for _, want := range []string{"阅读", "跑步", "冥想"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "never read") {
		t.Error("view shows a challenge past index 2")
	}
}

func TestDashboardArrivalOrderDoesNotMatter(t *testing.T) {
	m := newTestDashboard(&fakeReader{}, &fakeBackend{}, testWallet)
	c2 := active("跑步 - 5km")
	c0 := active("阅读 - 30min")
	m, _ = feed(m,
		challengeLoadedMsg{index: 2, challenge: &c2},
		challengeLoadedMsg{index: 0, challenge: &c0},
	)
	got := m.slots.Active()
	if len(got) != 2 || got[0].ID != 0 || got[1].ID != 2 {
		t.Errorf("Active() = %+v, want indices [0 2]", got)
	}
}

func TestDashboardAutoCheckCompletesCodingRowOnly(t *testing.T) {
	r := &fakeReader{count: 2, challenges: map[uint64]domain.Challenge{
		0: active("跑步 - 5km"),
		1: {HabitDescription: "编程 - daily commit", Status: domain.StatusActive, StakeAmount: big.NewInt(5e16)},
	}}
	b := &fakeBackend{
		status:  domain.GitHubStatus{Connected: true, Username: "octocat"},
		results: map[int]domain.CheckInResult{1: {ClockedIn: true, TxHash: "0xabc"}},
	}
	m := newTestDashboard(r, b, testWallet)

	m, held := feed(m, countLoadedMsg{count: 2}, githubStatusMsg{status: b.status})
	if !m.checking {
		t.Fatal("expected an automatic check once linked with active challenges")
	}
	// The status lands before the slots, so the trigger fires for the
	// running-only list and again once the coding row arrives.
	if len(held) != 2 {
		t.Fatalf("held = %v, want two check results", held)
	}
	if got := held[0].(checkDoneMsg).outcome.State; got != dashboard.StateSilent {
		t.Errorf("first outcome = %v, want %v", got, dashboard.StateSilent)
	}
	if got := held[1].(checkDoneMsg).outcome.State; got != dashboard.StateCheckedIn {
		t.Errorf("last outcome = %v, want %v", got, dashboard.StateCheckedIn)
	}
	m, alerts := feed(m, held...)
	if len(alerts) != 0 {
		t.Errorf("automatic check opened an alert: %v", alerts)
	}
	if m.checking {
		t.Error("checking still set after result")
	}
	if !strings.Contains(m.message, dashboard.CompletedMarker) || !strings.Contains(m.message, "0xabc") {
		t.Errorf("message = %q, want completion marker and tx hash", m.message)
	}

	view := m.View()
	if strings.Count(view, "completed") != 1 {
		t.Errorf("want exactly one completed row:\n%s", view)
	}
	if !strings.Contains(view, "in progress") {
		t.Errorf("running row should stay in progress:\n%s", view)
	}
	if !strings.Contains(view, "@octocat") {
		t.Errorf("data source panel missing username:\n%s", view)
	}
	if !strings.Contains(view, "0.05") {
		t.Errorf("summary missing total stake:\n%s", view)
	}
}

func TestDashboardAutoCheckFiresOncePerPair(t *testing.T) {
	c := active("编程 - daily commit")
	b := &fakeBackend{status: domain.GitHubStatus{Connected: true}}
	m := newTestDashboard(&fakeReader{}, b, testWallet)

	m, held := feed(m, githubStatusMsg{status: b.status}, challengeLoadedMsg{index: 0, challenge: &c})
	if len(held) != 1 {
		t.Fatalf("first pair change: held %d checks, want 1", len(held))
	}
	m, _ = feed(m, held...)

	// Same pair again: refresh re-delivers the same slot and status.
	m, held = feed(m, challengeLoadedMsg{index: 0, challenge: &c}, githubStatusMsg{status: b.status})
	if len(held) != 0 {
		t.Errorf("unchanged pair triggered %d checks, want 0", len(held))
	}
}

func TestDashboardManualCheckAlerts(t *testing.T) {
	c1 := active("编程 - daily commit")
	b := &fakeBackend{
		status:  domain.GitHubStatus{Connected: true},
		results: map[int]domain.CheckInResult{1: {ClockedIn: false}},
	}
	m := newTestDashboard(&fakeReader{}, b, testWallet)
	m, held := feed(m, githubStatusMsg{status: b.status}, challengeLoadedMsg{index: 1, challenge: &c1})
	m, _ = feed(m, held...)

	m, held = feed(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if len(held) != 1 {
		t.Fatalf("manual check: held %v, want one result", held)
	}
	if done, ok := held[0].(checkDoneMsg); !ok || !done.manual {
		t.Fatalf("held[0] = %#v, want manual checkDoneMsg", held[0])
	}
	m, alerts := feed(m, held...)
	if len(alerts) != 1 {
		t.Fatalf("manual not-checked-in run should alert, got %v", alerts)
	}
	if a := alerts[0].(openAlertMsg); a.text != dashboard.MsgNotCheckedIn {
		t.Errorf("alert text = %q, want %q", a.text, dashboard.MsgNotCheckedIn)
	}
	if strings.Contains(m.View(), "completed") {
		t.Error("no row should render completed after a not-checked-in result")
	}
}

func TestDashboardManualCheckNoCodingIsSilent(t *testing.T) {
	c0 := active("阅读 - 30min")
	b := &fakeBackend{status: domain.GitHubStatus{Connected: true}}
	m := newTestDashboard(&fakeReader{}, b, testWallet)
	m, held := feed(m, githubStatusMsg{status: b.status}, challengeLoadedMsg{index: 0, challenge: &c0})
	m, _ = feed(m, held...)

	m, held = feed(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	_, alerts := feed(m, held...)
	if len(alerts) != 0 {
		t.Errorf("silent outcome opened an alert: %v", alerts)
	}
	if len(b.checkCalls) != 0 {
		t.Errorf("check calls = %v, want none", b.checkCalls)
	}
}

func TestDashboardCallbackRefetchesStatusOnce(t *testing.T) {
	b := &fakeBackend{status: domain.GitHubStatus{Connected: true, Username: "octocat"}}
	ch := make(chan dashboard.Callback, 1)
	ch <- dashboard.Callback{User: "octocat"}
	close(ch)

	m := newDashboardModel(Deps{Reader: &fakeReader{}, Backend: b, Wallet: testWallet, Callbacks: ch})
	msgs := collect(m.waitCallback())
	if len(msgs) != 1 {
		t.Fatalf("waitCallback produced %v, want one callback", msgs)
	}
	m, _ = feed(m, msgs...)
	if b.statusCalls != 1 {
		t.Errorf("status calls = %d, want 1", b.statusCalls)
	}
	if !m.status.Connected || m.status.Username != "octocat" {
		t.Errorf("status = %+v, want linked octocat", m.status)
	}
}

func TestDashboardDetailKeyNavigates(t *testing.T) {
	m := newTestDashboard(&fakeReader{}, &fakeBackend{}, testWallet)
	_, held := feed(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if len(held) != 1 {
		t.Fatalf("held = %v, want navigate", held)
	}
	if nav, ok := held[0].(navigateMsg); !ok || nav.page != PageDetail {
		t.Errorf("got %#v, want navigate to detail", held[0])
	}
}

func TestDashboardManualCheckClearsPreviousResult(t *testing.T) {
	b := &fakeBackend{status: domain.GitHubStatus{Connected: true, Username: "octocat"}}
	m := newTestDashboard(&fakeReader{}, b, testWallet)
	c := domain.Challenge{HabitDescription: "编程 - daily commit", Status: domain.StatusActive}
	m.slots.Set(0, &c)
	m.status = b.status
	m.message = dashboard.MsgCheckedIn

	if strings.Count(m.View(), "completed") != 1 {
		t.Fatalf("setup: want the coding row completed:\n%s", m.View())
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if cmd == nil || !m.checking {
		t.Fatal("manual check did not start")
	}
	if m.message != "" {
		t.Errorf("message = %q, want cleared while checking", m.message)
	}
	if strings.Contains(m.View(), "completed") {
		t.Errorf("stale completed badge while checking:\n%s", m.View())
	}
}
