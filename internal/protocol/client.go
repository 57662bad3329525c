package protocol

import "errors"

// ErrUnknownAction is returned for a command whose action is not recognised.
var ErrUnknownAction = errors.New("protocol: unknown action")

// Action names a player command.
type Action string

const (
	ActionStart       Action = "start"
	ActionPause       Action = "pause"
	ActionResume      Action = "resume"
	ActionTogglePause Action = "toggle_pause"
	ActionHit         Action = "hit"
	ActionRestart     Action = "restart"
	ActionQuit        Action = "quit"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionStart, ActionPause, ActionResume, ActionTogglePause,
		ActionHit, ActionRestart, ActionQuit:
		return true
	}
	return false
}

// Command is sent by the browser. Difficulty is used by start and, when set,
// by restart.
type Command struct {
	Action     Action `json:"action"`
	Difficulty string `json:"difficulty,omitempty"`
}
