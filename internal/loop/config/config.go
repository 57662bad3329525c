// Package config centralizes the presenter tunables. Round timing lives in
// the difficulty table.
package config

import "time"

// Render area - the terminal is clamped to this and centered.
const (
	MaxTermWidth  = 100
	MaxTermHeight = 32
	MinTermWidth  = 40
	MinTermHeight = 14
)

// Field layout
const (
	HUDRows    = 2 // Rows above the field
	FooterRows = 1 // Rows below the field
)

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// HUD
const (
	WarnSeconds = 5 // Remaining seconds at or below which the clock turns red
)

// HitKeys are the letters a target can be labelled with. Typing the shown
// letter counts as a hit for players without mouse reporting.
const HitKeys = "asdfjklgh"

// Leaderboard
const (
	LeaderboardSize = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Lobby tick rate
const (
	ServerTickRate = 10
	ServerTickTime = time.Second / ServerTickRate
)

// Web presenter
const (
	WebStateInterval = 100 * time.Millisecond // Session advance and state push period
	WebWriteWait     = 5 * time.Second
	WebPongWait      = 60 * time.Second
	WebPingPeriod    = WebPongWait * 9 / 10
	WebMaxMessage    = 4096
	WebInboxSize     = 32
)
