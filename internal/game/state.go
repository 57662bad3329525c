// Package game implements the round state machine: phases, the countdown,
// the target spawn cycle and win/lose evaluation.
package game

import (
	"time"

	"github.com/tomz197/snowshot/internal/difficulty"
)

// Phase is the top-level state of a session.
type Phase int

const (
	PhaseMenu    Phase = iota // No round in progress
	PhasePlaying              // Round running (possibly paused)
	PhaseEnded                // Round over, outcome fixed
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome is the result of a finished round.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	default:
		return ""
	}
}

// Target is the single hittable sprite. X and Y are percentages of the arena.
type Target struct {
	Visible bool
	X, Y    int
}

// RoundState is the mutable state of one round. It is owned by a Session.
type RoundState struct {
	Phase         Phase
	Outcome       Outcome
	Paused        bool
	Profile       difficulty.Profile
	Kills         int
	TimeRemaining time.Duration
	Target        Target
}

func newRound(p difficulty.Profile) *RoundState {
	return &RoundState{
		Phase:         PhasePlaying,
		Profile:       p,
		TimeRemaining: p.RoundDuration,
	}
}

// active reports whether the round accepts hits, ticks and spawns.
func (r *RoundState) active() bool {
	return r != nil && r.Phase == PhasePlaying && !r.Paused
}
