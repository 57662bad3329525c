package protocol

import (
	"testing"
	"time"

	"github.com/tomz197/snowshot/internal/difficulty"
	"github.com/tomz197/snowshot/internal/game"
)

func TestNewWelcome(t *testing.T) {
	w := NewWelcome(difficulty.Default())

	if w.TickMs != 100 {
		t.Errorf("TickMs = %d, want 100", w.TickMs)
	}
	want := []DifficultyInfo{
		{Key: "easy", Label: "Easy", Goal: 8, DurationMs: 45000, SpawnEveryMs: 1200},
		{Key: "medium", Label: "Medium", Goal: 12, DurationMs: 40000, SpawnEveryMs: 1000},
		{Key: "hard", Label: "Hard", Goal: 16, DurationMs: 35000, SpawnEveryMs: 850},
	}
	if len(w.Difficulties) != len(want) {
		t.Fatalf("got %d difficulties, want %d", len(w.Difficulties), len(want))
	}
	for i := range want {
		if w.Difficulties[i] != want[i] {
			t.Errorf("Difficulties[%d] = %+v, want %+v", i, w.Difficulties[i], want[i])
		}
	}
}

func TestNewState(t *testing.T) {
	snap := game.Snapshot{
		Phase:           game.PhasePlaying,
		Kills:           3,
		Goal:            12,
		TimeRemaining:   12345 * time.Millisecond,
		DifficultyKey:   difficulty.Medium,
		DifficultyLabel: "Medium",
		TargetVisible:   true,
		TargetX:         40,
		TargetY:         60,
	}

	got := NewState(snap)
	want := State{
		Phase:           "playing",
		Kills:           3,
		Goal:            12,
		TimeRemainingMs: 12345,
		SecondsLeft:     13,
		Difficulty:      "medium",
		DifficultyLabel: "Medium",
		TargetVisible:   true,
		TargetXPct:      40,
		TargetYPct:      60,
	}
	if got != want {
		t.Errorf("NewState() = %+v, want %+v", got, want)
	}
}

func TestNewEvent(t *testing.T) {
	tests := []struct {
		in   game.Event
		want Event
	}{
		{game.Event{Type: game.EventTargetShown, X: 10, Y: 90}, Event{Type: "target_shown", X: 10, Y: 90}},
		{game.Event{Type: game.EventHitRegistered, Kills: 2, Remaining: 6}, Event{Type: "hit_registered", Kills: 2, Remaining: 6}},
		{game.Event{Type: game.EventPausedChanged, Paused: true}, Event{Type: "paused_changed", Paused: true}},
		{game.Event{Type: game.EventRoundEnded, Outcome: game.OutcomeLose}, Event{Type: "round_ended", Outcome: "lose"}},
	}

	for _, tt := range tests {
		if got := NewEvent(tt.in); got != tt.want {
			t.Errorf("NewEvent(%v) = %+v, want %+v", tt.in.Type, got, tt.want)
		}
	}
}

func TestEventEncodingKeepsZeroPosition(t *testing.T) {
	b, err := Encode(MsgEvent, NewEvent(game.Event{Type: game.EventTargetShown}))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := `{"t":"event","p":{"type":"target_shown","x":0,"y":0,"kills":0,"remaining":0,"paused":false}}`
	if string(b) != want {
		t.Errorf("Encode() = %s, want %s", b, want)
	}
}
