package client

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomz197/snowshot/internal/difficulty"
	"github.com/tomz197/snowshot/internal/game"
	"github.com/tomz197/snowshot/internal/input"
	"github.com/tomz197/snowshot/internal/loop/server"
	"github.com/tomz197/snowshot/internal/random"
)

type fakeServer struct {
	mu      sync.Mutex
	handle  *server.ClientHandle
	results []server.Result
	left    []int
}

func newFakeServer() *fakeServer {
	return &fakeServer{handle: &server.ClientHandle{ID: 1, Username: "tester", EventsCh: make(chan server.ClientEvent, 4)}}
}

func (f *fakeServer) RegisterClient(string) *server.ClientHandle { return f.handle }

func (f *fakeServer) UnregisterClient(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.left = append(f.left, id)
}

func (f *fakeServer) RecordResult(r server.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, r)
}

func (f *fakeServer) GetSnapshot() *server.LobbySnapshot {
	return &server.LobbySnapshot{Players: 1}
}

func newTestClient(t *testing.T) (*Client, *fakeServer, *bytes.Buffer) {
	t.Helper()
	fs := newFakeServer()
	var out bytes.Buffer
	c := NewClient(fs, bufio.NewReader(strings.NewReader("")), &out, ClientOptions{
		TermSizeFunc: func() (int, int, error) { return 120, 40, nil },
		Rand:         random.New(3),
	})
	c.updateScreen()
	return c, fs, &out
}

// press feeds raw terminal bytes through the current screen handler.
func press(c *Client, raw string) {
	c.state.Input = input.Parse([]byte(raw))
	switch c.state.GameState {
	case GameStateMenu:
		c.updateMenuState()
	case GameStatePlaying:
		c.updatePlayingState()
	case GameStateEnded:
		c.updateEndedState()
	case GameStateShutdown:
		c.updateShutdownState()
	}
}

func advanceUntilTarget(t *testing.T, c *Client) {
	t.Helper()
	for i := 0; i < 500; i++ {
		if !c.state.targetRect.Empty() {
			return
		}
		c.handleEvents(c.session.Advance(10 * time.Millisecond))
	}
	t.Fatal("no target appeared")
}

func TestMenuNavigation(t *testing.T) {
	c, _, _ := newTestClient(t)

	tests := []struct {
		key  string
		want int
	}{
		{"\x1b[B", 1}, // down
		{"\x1b[B", 2},
		{"\x1b[B", 0}, // wraps
		{"\x1b[A", 2}, // up wraps
		{"\x1b[D", 1}, // left
		{"1", 0},
		{"3", 2},
		{"9", 2}, // out of range
	}
	for _, tt := range tests {
		press(c, tt.key)
		if c.state.Selected != tt.want {
			t.Fatalf("after %q Selected = %d, want %d", tt.key, c.state.Selected, tt.want)
		}
	}
}

func TestMenuStart(t *testing.T) {
	c, _, _ := newTestClient(t)
	press(c, "2")
	press(c, "\r")

	if c.state.GameState != GameStatePlaying {
		t.Fatalf("GameState = %v, want playing", c.state.GameState)
	}
	snap := c.session.Snapshot()
	if snap.DifficultyKey != difficulty.Medium {
		t.Errorf("difficulty = %q, want medium", snap.DifficultyKey)
	}
	if c.state.Message != "Medium: Get 12 kills in 40s." {
		t.Errorf("Message = %q", c.state.Message)
	}
}

func TestHitByLetter(t *testing.T) {
	c, _, _ := newTestClient(t)
	press(c, " ")
	advanceUntilTarget(t, c)

	if !strings.ContainsRune("asdfjklgh", rune(c.state.HitKey)) {
		t.Fatalf("HitKey = %q, not a hit key", c.state.HitKey)
	}
	press(c, string(c.state.HitKey))

	if got := c.session.Snapshot().Kills; got != 1 {
		t.Errorf("Kills = %d, want 1", got)
	}
	if !c.state.targetRect.Empty() || c.state.HitKey != 0 {
		t.Error("target still tracked after hit")
	}
	if c.state.Message != "Nice. 7 to go." {
		t.Errorf("Message = %q", c.state.Message)
	}
}

func TestHitByClick(t *testing.T) {
	c, _, _ := newTestClient(t)
	press(c, " ")
	advanceUntilTarget(t, c)

	r := c.state.targetRect
	click := fmt.Sprintf("\x1b[<0;%d;%dM", r.Col+c.state.offsetCol+1, r.Row+c.state.offsetRow+1)
	press(c, click)

	if got := c.session.Snapshot().Kills; got != 1 {
		t.Errorf("Kills = %d, want 1", got)
	}
}

func TestClickMissDoesNotCount(t *testing.T) {
	c, _, _ := newTestClient(t)
	press(c, " ")
	advanceUntilTarget(t, c)

	r := c.state.targetRect
	col := r.Col + r.Width + 3
	if col > c.state.field.Col+c.state.field.Width {
		col = r.Col - 3
	}
	press(c, fmt.Sprintf("\x1b[<0;%d;%dM", col+c.state.offsetCol, r.Row+c.state.offsetRow))

	if got := c.session.Snapshot().Kills; got != 0 {
		t.Errorf("Kills = %d, want 0", got)
	}
}

func TestPauseKeys(t *testing.T) {
	c, _, _ := newTestClient(t)
	press(c, " ")

	press(c, "p")
	if !c.session.Paused() || c.state.Message != "Paused. Take a breath." {
		t.Fatalf("paused = %v, message %q", c.session.Paused(), c.state.Message)
	}
	press(c, "\x1b")
	if c.session.Paused() {
		t.Fatal("Escape did not resume")
	}
	if c.state.Message != "Easy: Go!" {
		t.Errorf("Message = %q", c.state.Message)
	}
}

func TestQuitToMenu(t *testing.T) {
	c, _, _ := newTestClient(t)
	press(c, " ")
	press(c, "m")

	if c.state.GameState != GameStateMenu || c.session.Phase() != game.PhaseMenu {
		t.Errorf("state = %v, phase = %v, want menu", c.state.GameState, c.session.Phase())
	}
}

func TestRoundEndRecordsResult(t *testing.T) {
	c, fs, _ := newTestClient(t)
	press(c, "3")
	press(c, "\r")
	c.handleEvents(c.session.Advance(35 * time.Second))

	if c.state.GameState != GameStateEnded {
		t.Fatalf("GameState = %v, want ended", c.state.GameState)
	}
	if len(fs.results) != 1 {
		t.Fatalf("recorded %d results, want 1", len(fs.results))
	}
	r := fs.results[0]
	if r.ClientID != 1 || r.Difficulty != difficulty.Hard || r.Outcome != game.OutcomeLose {
		t.Errorf("result = %+v", r)
	}
	found := false
	for _, line := range loseLines {
		if c.state.EndLine == line {
			found = true
		}
	}
	if !found {
		t.Errorf("EndLine = %q, not a lose line", c.state.EndLine)
	}

	press(c, "r")
	if c.state.GameState != GameStatePlaying || c.session.Snapshot().DifficultyKey != difficulty.Hard {
		t.Error("play again did not restart with the same difficulty")
	}
}

func TestShutdownEvent(t *testing.T) {
	c, fs, _ := newTestClient(t)
	press(c, " ")
	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()

	if c.state.GameState != GameStateShutdown {
		t.Fatalf("GameState = %v, want shutdown", c.state.GameState)
	}
	if !c.session.Paused() {
		t.Error("round not paused on shutdown")
	}

	press(c, "q")
	if c.state.Running {
		t.Error("q did not disconnect during shutdown")
	}
}

func TestDrawFrame(t *testing.T) {
	c, _, out := newTestClient(t)

	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame() error = %v", err)
	}
	if !strings.Contains(out.String(), "Press ENTER") && !strings.Contains(out.String(), "Up / Down") {
		t.Error("menu not drawn")
	}

	press(c, " ")
	advanceUntilTarget(t, c)
	out.Reset()
	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame() error = %v", err)
	}
	frame := out.String()
	for _, want := range []string{"\033[H\033[2J", "Kills:  0/8", "Time:", "(x_x)"} {
		if !strings.Contains(frame, want) {
			t.Errorf("playing frame missing %q", want)
		}
	}
	if c.state.drawnTarget != c.state.targetRect {
		t.Error("drawn target not tracked")
	}
}

func TestTargetStaysInField(t *testing.T) {
	c, _, _ := newTestClient(t)
	press(c, "3")
	press(c, "\r")

	f := c.state.field
	for i := 0; i < 2000 && c.session.Phase() == game.PhasePlaying; i++ {
		c.handleEvents(c.session.Advance(10 * time.Millisecond))
		r := c.state.targetRect
		if r.Empty() {
			continue
		}
		if r.Col < f.Col || r.Row < f.Row || r.Col+r.Width > f.Col+f.Width || r.Row+r.Height > f.Row+f.Height {
			t.Fatalf("target %+v outside field %+v", r, f)
		}
	}
}
