package server

import (
	"slices"
	"time"

	"github.com/tomz197/snowshot/internal/difficulty"
	"github.com/tomz197/snowshot/internal/game"
)

// Result is the outcome of one finished round, reported by a client.
type Result struct {
	ClientID   int
	Difficulty difficulty.Key
	Outcome    game.Outcome
	Kills      int
	TimeLeft   time.Duration // Time remaining when the round ended
}

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username   string
	Difficulty difficulty.Key
	TimeLeft   time.Duration
	seq        int // Used for deterministic tie-break: earlier wins rank higher
}

// LobbyState holds the shared lobby counters. It is managed by the Server
// and shared across all clients via snapshots.
type LobbyState struct {
	TopScores []TopScoreEntry
	Rounds    int
	Wins      int
	nextSeq   int
}

// LobbySnapshot is an immutable snapshot of the lobby for rendering.
type LobbySnapshot struct {
	Players   int
	Rounds    int
	Wins      int
	TopScores []TopScoreEntry // Top N wins for leaderboard display
}

// difficultyRank orders difficulties for the leaderboard, harder first.
func difficultyRank(k difficulty.Key) int {
	return slices.Index(difficulty.Default().Keys(), k)
}

// better reports whether a ranks above b: harder difficulty, then more time
// left, then the earlier win.
func better(a, b TopScoreEntry) bool {
	if ra, rb := difficultyRank(a.Difficulty), difficultyRank(b.Difficulty); ra != rb {
		return ra > rb
	}
	if a.TimeLeft != b.TimeLeft {
		return a.TimeLeft > b.TimeLeft
	}
	return a.seq < b.seq
}

// AddWin inserts a win into the leaderboard, keeping at most limit entries.
// It returns the 1-based rank the entry reached, or 0 if it did not place.
func (l *LobbyState) AddWin(username string, key difficulty.Key, timeLeft time.Duration, limit int) int {
	entry := TopScoreEntry{Username: username, Difficulty: key, TimeLeft: timeLeft, seq: l.nextSeq}
	l.nextSeq++

	pos := len(l.TopScores)
	for i, e := range l.TopScores {
		if better(entry, e) {
			pos = i
			break
		}
	}
	if pos >= limit {
		return 0
	}
	l.TopScores = slices.Insert(l.TopScores, pos, entry)
	if len(l.TopScores) > limit {
		l.TopScores = l.TopScores[:limit]
	}
	return pos + 1
}
