package game

import (
	"time"

	"github.com/tomz197/snowshot/internal/difficulty"
)

// Snapshot is a read-only copy of the observable session state.
type Snapshot struct {
	Phase           Phase
	Paused          bool
	Kills           int
	Goal            int
	TimeRemaining   time.Duration
	DifficultyKey   difficulty.Key
	DifficultyLabel string
	TargetVisible   bool
	TargetX         int
	TargetY         int
	Outcome         Outcome
}

// SecondsLeft returns the remaining time rounded up to whole seconds.
func (s Snapshot) SecondsLeft() int {
	return int((s.TimeRemaining + time.Second - 1) / time.Second)
}

// Snapshot returns the current observable state. In the menu only the phase
// and the last selected difficulty are set.
func (s *Session) Snapshot() Snapshot {
	if s.round == nil {
		return Snapshot{
			Phase:           PhaseMenu,
			DifficultyKey:   s.last.Key,
			DifficultyLabel: s.last.Label,
		}
	}
	r := s.round
	return Snapshot{
		Phase:           r.Phase,
		Paused:          r.Paused,
		Kills:           r.Kills,
		Goal:            r.Profile.KillGoal,
		TimeRemaining:   r.TimeRemaining,
		DifficultyKey:   r.Profile.Key,
		DifficultyLabel: r.Profile.Label,
		TargetVisible:   r.Target.Visible,
		TargetX:         r.Target.X,
		TargetY:         r.Target.Y,
		Outcome:         r.Outcome,
	}
}
