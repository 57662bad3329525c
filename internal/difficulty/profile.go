// Package difficulty holds the read-only table of difficulty profiles.
package difficulty

import "time"

// Key identifies a difficulty profile.
type Key string

const (
	Easy   Key = "easy"
	Medium Key = "medium"
	Hard   Key = "hard"
)

// keys lists every valid key in menu order.
var keys = []Key{Easy, Medium, Hard}

// Valid reports whether k is one of the fixed difficulty keys.
func (k Key) Valid() bool {
	for _, known := range keys {
		if k == known {
			return true
		}
	}
	return false
}

// Profile is the immutable set of tunables for one difficulty.
type Profile struct {
	Key           Key
	Label         string
	RoundDuration time.Duration
	KillGoal      int
	SpawnInterval time.Duration
	MinVisible    time.Duration
	MaxVisible    time.Duration
}

// profileFile is the YAML shape of a profile. Durations are milliseconds.
type profileFile struct {
	Label           string `yaml:"label"`
	RoundDurationMs int    `yaml:"round_duration_ms"`
	KillGoal        int    `yaml:"kill_goal"`
	SpawnIntervalMs int    `yaml:"spawn_interval_ms"`
	MinVisibleMs    int    `yaml:"min_visible_ms"`
	MaxVisibleMs    int    `yaml:"max_visible_ms"`
}

func (f profileFile) profile(key Key) Profile {
	return Profile{
		Key:           key,
		Label:         f.Label,
		RoundDuration: time.Duration(f.RoundDurationMs) * time.Millisecond,
		KillGoal:      f.KillGoal,
		SpawnInterval: time.Duration(f.SpawnIntervalMs) * time.Millisecond,
		MinVisible:    time.Duration(f.MinVisibleMs) * time.Millisecond,
		MaxVisible:    time.Duration(f.MaxVisibleMs) * time.Millisecond,
	}
}

func fileFromProfile(p Profile) profileFile {
	return profileFile{
		Label:           p.Label,
		RoundDurationMs: int(p.RoundDuration / time.Millisecond),
		KillGoal:        p.KillGoal,
		SpawnIntervalMs: int(p.SpawnInterval / time.Millisecond),
		MinVisibleMs:    int(p.MinVisible / time.Millisecond),
		MaxVisibleMs:    int(p.MaxVisible / time.Millisecond),
	}
}
