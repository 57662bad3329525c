package client

import (
	"time"

	"github.com/tomz197/snowshot/internal/draw"
	"github.com/tomz197/snowshot/internal/game"
	"github.com/tomz197/snowshot/internal/input"
)

// GameState represents the screen a client is on.
type GameState int

const (
	GameStateMenu     GameState = iota // Difficulty selection
	GameStatePlaying                   // Round in progress (possibly paused)
	GameStateEnded                     // Win/lose screen
	GameStateShutdown                  // Server is shutting down
)

// stateForPhase maps a session phase to the screen that shows it.
func stateForPhase(p game.Phase) GameState {
	switch p {
	case game.PhasePlaying:
		return GameStatePlaying
	case game.PhaseEnded:
		return GameStateEnded
	default:
		return GameStateMenu
	}
}

// view identifies what is on screen. A change forces a full redraw.
type view struct {
	state    GameState
	paused   bool
	inactive bool
	tooSmall bool
}

// ClientState holds per-player presentation state. The round itself lives
// in the game.Session.
type ClientState struct {
	Input         input.Input
	GameState     GameState
	Selected      int    // Menu cursor into the difficulty keys
	Message       string // Status line under the HUD
	EndLine       string // Flavour text on the end screen
	HitKey        byte   // Letter shown on the current target
	Running       bool   // Client loop running
	delta         time.Duration
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool    // Whether the client is in inactive warning state

	// Layout in render-area coordinates (offset applied by the ChunkWriter)
	renderWidth  int
	renderHeight int
	offsetCol    int
	offsetRow    int
	field        draw.Rect // Playable cells inside the border
	targetRect   draw.Rect // Cells the visible target covers
	drawnTarget  draw.Rect // Cells painted last frame, erased on change

	prevView    view
	forceRedraw bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:   GameStateMenu,
		Running:     true,
		forceRedraw: true,
	}
}
