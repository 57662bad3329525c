package game

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/snowshot/internal/clock"
	"github.com/tomz197/snowshot/internal/difficulty"
	"github.com/tomz197/snowshot/internal/random"
)

// Round timing.
const (
	TickInterval = 100 * time.Millisecond // Countdown granularity
	KickoffDelay = 250 * time.Millisecond // First spawn attempt after start
)

// Session owns one player's rounds. All methods must be called from a single
// goroutine; time only advances through Advance.
//
// Every transition returns the events it produced, in order. Actions that are
// not valid in the current phase are ignored and return no events.
type Session struct {
	registry *difficulty.Registry
	clock    *clock.Scheduler
	rng      random.Source
	arena    Arena
	log      *log.Logger

	round *RoundState
	last  difficulty.Profile // Difficulty used by Restart
	gen   uint64             // Round generation, bumped on every start

	countdown clock.Handle
	spawner   clock.Handle
	kickoff   clock.Handle
	hide      clock.Handle

	events []Event
}

// Option configures a Session.
type Option func(*Session)

// WithRegistry sets the difficulty table.
func WithRegistry(r *difficulty.Registry) Option {
	return func(s *Session) { s.registry = r }
}

// WithRand sets the random source used for spawn positions and visible durations.
func WithRand(src random.Source) Option {
	return func(s *Session) { s.rng = src }
}

// WithArena sets the initial arena geometry.
func WithArena(a Arena) Option {
	return func(s *Session) { s.arena = a }
}

// WithLogger sets the logger for transition tracing.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.log = l }
}

// NewSession creates a session in the menu with easy preselected.
func NewSession(opts ...Option) *Session {
	s := &Session{
		registry: difficulty.Default(),
		clock:    clock.New(),
		arena:    DefaultArena,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = random.NewTime()
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	s.last, _ = s.registry.Get(string(difficulty.Easy))
	return s
}

// Registry returns the difficulty table the session draws profiles from.
func (s *Session) Registry() *difficulty.Registry {
	return s.registry
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	if s.round == nil {
		return PhaseMenu
	}
	return s.round.Phase
}

// Paused reports whether a running round is paused.
func (s *Session) Paused() bool {
	return s.round != nil && s.round.Phase == PhasePlaying && s.round.Paused
}

// LastDifficulty returns the profile Restart would use.
func (s *Session) LastDifficulty() difficulty.Profile {
	return s.last
}

// Arena returns the current arena geometry.
func (s *Session) Arena() Arena {
	return s.arena
}

// SetArena updates the arena geometry. It takes effect on the next spawn.
func (s *Session) SetArena(a Arena) {
	s.arena = a
}

// Start begins a round with the given difficulty. It is valid from the menu
// or after a round has ended. An unknown key is rejected without touching state.
func (s *Session) Start(key string) ([]Event, error) {
	p, err := s.registry.Get(key)
	if err != nil {
		return nil, err
	}
	if s.Phase() == PhasePlaying {
		s.ignored("start")
		return nil, nil
	}
	s.begin(p)
	return s.flush(), nil
}

// Restart begins a new round with the last used difficulty, from any phase.
func (s *Session) Restart() []Event {
	s.begin(s.last)
	return s.flush()
}

// RestartWith begins a new round with the given difficulty, from any phase.
func (s *Session) RestartWith(key string) ([]Event, error) {
	p, err := s.registry.Get(key)
	if err != nil {
		return nil, err
	}
	s.begin(p)
	return s.flush(), nil
}

// Quit abandons the current round and returns to the menu.
func (s *Session) Quit() []Event {
	if s.round == nil {
		s.ignored("quit")
		return nil
	}
	s.teardown()
	s.round = nil
	s.emit(Event{Type: EventReturnedToMenu})
	s.log.Debug("returned to menu")
	return s.flush()
}

// Pause freezes a running round and hides the target.
func (s *Session) Pause() []Event {
	return s.setPaused(true)
}

// Resume continues a paused round. The target is not restored; the next
// spawn tick decides.
func (s *Session) Resume() []Event {
	return s.setPaused(false)
}

// TogglePause flips the paused flag of a running round.
func (s *Session) TogglePause() []Event {
	return s.setPaused(!s.Paused())
}

func (s *Session) setPaused(paused bool) []Event {
	r := s.round
	if r == nil || r.Phase != PhasePlaying || r.Paused == paused {
		s.ignored("pause")
		return nil
	}
	r.Paused = paused
	if paused {
		s.hideTarget()
	}
	s.emit(Event{Type: EventPausedChanged, Paused: paused})
	s.log.Debug("pause changed", "paused", paused, "remaining", r.TimeRemaining)
	return s.flush()
}

// RegisterHit counts a hit on the visible target. Reaching the goal ends the
// round with a win immediately.
func (s *Session) RegisterHit() []Event {
	r := s.round
	if !r.active() || !r.Target.Visible {
		s.ignored("hit")
		return nil
	}

	r.Kills++
	s.emit(Event{
		Type:      EventHitRegistered,
		Kills:     r.Kills,
		Remaining: max(0, r.Profile.KillGoal-r.Kills),
	})
	s.hideTarget()

	if r.Kills >= r.Profile.KillGoal {
		s.finish()
	}
	return s.flush()
}

// Advance moves the session clock forward, running due countdown ticks,
// spawn attempts and auto-hides.
func (s *Session) Advance(d time.Duration) []Event {
	s.clock.Advance(d)
	return s.flush()
}

// begin discards any current round and starts a fresh one.
func (s *Session) begin(p difficulty.Profile) {
	s.teardown()
	s.gen++
	s.last = p
	s.round = newRound(p)

	gen := s.gen
	s.countdown = s.clock.Every(TickInterval, func() { s.tick(gen) })
	s.spawner = s.clock.Every(p.SpawnInterval, func() { s.trySpawn(gen) })
	s.kickoff = s.clock.After(KickoffDelay, func() { s.trySpawn(gen) })

	s.emit(Event{Type: EventRoundStarted})
	s.log.Debug("round started", "difficulty", p.Key, "goal", p.KillGoal, "duration", p.RoundDuration)
}

// finish ends the running round with the evaluated outcome. Only the first
// call per round has an effect.
func (s *Session) finish() {
	r := s.round
	if r == nil || r.Phase != PhasePlaying {
		return
	}
	s.teardown()
	r.Phase = PhaseEnded
	r.Paused = false
	r.Outcome = Evaluate(r.Kills, r.Profile.KillGoal)

	s.emit(Event{Type: EventRoundEnded, Outcome: r.Outcome, Kills: r.Kills})
	s.log.Debug("round ended", "outcome", r.Outcome, "kills", r.Kills, "remaining", r.TimeRemaining)
}

// teardown cancels every round timer and hides the target. Safe to repeat.
func (s *Session) teardown() {
	s.clock.Cancel(s.countdown)
	s.clock.Cancel(s.spawner)
	s.clock.Cancel(s.kickoff)
	s.countdown, s.spawner, s.kickoff = 0, 0, 0
	s.hideTarget()
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *Session) flush() []Event {
	out := s.events
	s.events = nil
	return out
}

func (s *Session) ignored(action string) {
	s.log.Debug("action ignored", "action", action, "phase", s.Phase(), "paused", s.Paused())
}
