package game

import (
	"testing"
	"time"

	"github.com/tomz197/snowshot/internal/random"
)

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	base := []Option{WithRand(random.New(7))}
	return NewSession(append(base, opts...)...)
}

func mustStart(t *testing.T, s *Session, key string) []Event {
	t.Helper()
	events, err := s.Start(key)
	if err != nil {
		t.Fatalf("Start(%q) error = %v", key, err)
	}
	return events
}

// advanceUntilVisible steps the clock in small increments until a target is up.
func advanceUntilVisible(t *testing.T, s *Session) []Event {
	t.Helper()
	var all []Event
	for waited := time.Duration(0); waited < 10*time.Second; waited += 10 * time.Millisecond {
		if s.Snapshot().TargetVisible {
			return all
		}
		all = append(all, s.Advance(10*time.Millisecond)...)
	}
	t.Fatalf("no target appeared within 10s (phase %v, paused %v)", s.Phase(), s.Paused())
	return nil
}

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func eventTypes(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}
