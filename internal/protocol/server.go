package protocol

import (
	"github.com/tomz197/snowshot/internal/difficulty"
	"github.com/tomz197/snowshot/internal/game"
)

type Welcome struct {
	Difficulties []DifficultyInfo `json:"difficulties"`
	TickMs       int64            `json:"tickMs"`
}

type DifficultyInfo struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	Goal         int    `json:"goal"`
	DurationMs   int64  `json:"durationMs"`
	SpawnEveryMs int64  `json:"spawnEveryMs"`
}

type State struct {
	Phase           string `json:"phase"`
	Paused          bool   `json:"paused"`
	Kills           int    `json:"kills"`
	Goal            int    `json:"goal"`
	TimeRemainingMs int64  `json:"timeRemainingMs"`
	SecondsLeft     int    `json:"secondsLeft"`
	Difficulty      string `json:"difficulty"`
	DifficultyLabel string `json:"difficultyLabel"`
	TargetVisible   bool   `json:"targetVisible"`
	TargetXPct      int    `json:"targetXPct"`
	TargetYPct      int    `json:"targetYPct"`
	Outcome         string `json:"outcome,omitempty"`
}

type Event struct {
	Type      string `json:"type"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Kills     int    `json:"kills"`
	Remaining int    `json:"remaining"`
	Paused    bool   `json:"paused"`
	Outcome   string `json:"outcome,omitempty"`
	Rank      int    `json:"rank,omitempty"` // EventTopScore
}

// Lobby notices carried as events next to the game's own event types.
const (
	EventTopScore       = "top_score"
	EventServerShutdown = "server_shutdown"
)

type Error struct {
	Message string `json:"message"`
}

// NewWelcome describes the difficulties of r in menu order.
func NewWelcome(r *difficulty.Registry) Welcome {
	profiles := r.Profiles()
	w := Welcome{
		Difficulties: make([]DifficultyInfo, 0, len(profiles)),
		TickMs:       game.TickInterval.Milliseconds(),
	}
	for _, p := range profiles {
		w.Difficulties = append(w.Difficulties, DifficultyInfo{
			Key:          string(p.Key),
			Label:        p.Label,
			Goal:         p.KillGoal,
			DurationMs:   p.RoundDuration.Milliseconds(),
			SpawnEveryMs: p.SpawnInterval.Milliseconds(),
		})
	}
	return w
}

// NewState converts a session snapshot to its wire form.
func NewState(s game.Snapshot) State {
	return State{
		Phase:           s.Phase.String(),
		Paused:          s.Paused,
		Kills:           s.Kills,
		Goal:            s.Goal,
		TimeRemainingMs: s.TimeRemaining.Milliseconds(),
		SecondsLeft:     s.SecondsLeft(),
		Difficulty:      string(s.DifficultyKey),
		DifficultyLabel: s.DifficultyLabel,
		TargetVisible:   s.TargetVisible,
		TargetXPct:      s.TargetX,
		TargetYPct:      s.TargetY,
		Outcome:         s.Outcome.String(),
	}
}

// NewEvent converts a game event to its wire form.
func NewEvent(e game.Event) Event {
	return Event{
		Type:      e.Type.String(),
		X:         e.X,
		Y:         e.Y,
		Kills:     e.Kills,
		Remaining: e.Remaining,
		Paused:    e.Paused,
		Outcome:   e.Outcome.String(),
	}
}
