package game

import (
	"testing"
	"time"
)

func TestCountdownMonotonic(t *testing.T) {
	steps := []time.Duration{
		TickInterval,
		37 * time.Millisecond,
		time.Second,
		3333 * time.Millisecond,
	}

	for _, step := range steps {
		t.Run(step.String(), func(t *testing.T) {
			s := newTestSession(t)
			mustStart(t, s, "easy")

			prev := s.Snapshot().TimeRemaining
			for s.Phase() == PhasePlaying {
				s.Advance(step)
				cur := s.Snapshot().TimeRemaining
				if cur > prev {
					t.Fatalf("TimeRemaining increased from %v to %v", prev, cur)
				}
				if cur < 0 {
					t.Fatalf("TimeRemaining = %v, want >= 0", cur)
				}
				prev = cur
			}

			snap := s.Snapshot()
			if snap.TimeRemaining != 0 {
				t.Errorf("final TimeRemaining = %v, want 0", snap.TimeRemaining)
			}
			if snap.Outcome != OutcomeLose {
				t.Errorf("Outcome = %v, want lose", snap.Outcome)
			}
		})
	}
}

func TestCountdownEndsExactlyOnce(t *testing.T) {
	s := newTestSession(t)
	mustStart(t, s, "medium")

	events := s.Advance(time.Hour)
	if n := countEvents(events, EventRoundEnded); n != 1 {
		t.Errorf("round_ended emitted %d times, want 1", n)
	}
	if s.clock.Pending() != 0 {
		t.Errorf("Pending timers = %d after end, want 0", s.clock.Pending())
	}
}

func TestCountdownEndsOnBoundary(t *testing.T) {
	s := newTestSession(t)
	mustStart(t, s, "hard")

	s.Advance(35*time.Second - time.Millisecond)
	if s.Phase() != PhasePlaying {
		t.Fatalf("round ended early with %v left", s.Snapshot().TimeRemaining)
	}
	s.Advance(time.Millisecond)
	if s.Phase() != PhaseEnded {
		t.Fatalf("Phase = %v at 35s, want ended", s.Phase())
	}
}

func TestSecondsLeftRoundsUp(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		want      int
	}{
		{0, 0},
		{100 * time.Millisecond, 1},
		{time.Second, 1},
		{1100 * time.Millisecond, 2},
		{45 * time.Second, 45},
	}

	for _, tt := range tests {
		if got := (Snapshot{TimeRemaining: tt.remaining}).SecondsLeft(); got != tt.want {
			t.Errorf("SecondsLeft(%v) = %d, want %d", tt.remaining, got, tt.want)
		}
	}
}
