package game

// EventType identifies a presentation event.
type EventType int

const (
	EventRoundStarted EventType = iota
	EventTargetShown
	EventTargetHidden
	EventHitRegistered
	EventPausedChanged
	EventRoundEnded
	EventReturnedToMenu
)

func (t EventType) String() string {
	switch t {
	case EventRoundStarted:
		return "round_started"
	case EventTargetShown:
		return "target_shown"
	case EventTargetHidden:
		return "target_hidden"
	case EventHitRegistered:
		return "hit_registered"
	case EventPausedChanged:
		return "paused_changed"
	case EventRoundEnded:
		return "round_ended"
	case EventReturnedToMenu:
		return "returned_to_menu"
	default:
		return "unknown"
	}
}

// Event is emitted by Session transitions for presenters to render.
// Only the fields relevant to Type are set.
type Event struct {
	Type EventType

	X, Y      int     // EventTargetShown
	Kills     int     // EventHitRegistered, EventRoundEnded
	Remaining int     // EventHitRegistered: kills still needed
	Paused    bool    // EventPausedChanged
	Outcome   Outcome // EventRoundEnded
}
