package game

import "github.com/tomz197/snowshot/internal/random"

// trySpawn shows the target at a random position if the round is running,
// unpaused and no target is up. The target auto-hides after a random
// visible duration from the active profile.
func (s *Session) trySpawn(gen uint64) {
	if gen != s.gen {
		return
	}
	r := s.round
	if !r.active() || r.Target.Visible {
		return
	}

	minX, maxX, minY, maxY := s.arena.Bounds()
	r.Target = Target{
		Visible: true,
		X:       random.IntInclusive(s.rng, minX, maxX),
		Y:       random.IntInclusive(s.rng, minY, maxY),
	}
	s.emit(Event{Type: EventTargetShown, X: r.Target.X, Y: r.Target.Y})

	visibleFor := random.DurationInclusive(s.rng, r.Profile.MinVisible, r.Profile.MaxVisible)
	s.clock.Cancel(s.hide)
	s.hide = s.clock.After(visibleFor, func() { s.expire(gen) })
}

// expire is the auto-hide callback for a spawn of round gen.
func (s *Session) expire(gen uint64) {
	if gen != s.gen {
		return
	}
	s.hideTarget()
}

// hideTarget hides the target and cancels its pending auto-hide.
func (s *Session) hideTarget() {
	s.clock.Cancel(s.hide)
	s.hide = 0
	if s.round == nil || !s.round.Target.Visible {
		return
	}
	s.round.Target.Visible = false
	s.emit(Event{Type: EventTargetHidden})
}
