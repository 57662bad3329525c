package game

// tick decrements the remaining time of a running, unpaused round and ends
// the round when it reaches zero.
func (s *Session) tick(gen uint64) {
	if gen != s.gen {
		return
	}
	r := s.round
	if !r.active() {
		return
	}

	r.TimeRemaining -= TickInterval
	if r.TimeRemaining < 0 {
		r.TimeRemaining = 0
	}
	if r.TimeRemaining == 0 {
		s.finish()
	}
}
