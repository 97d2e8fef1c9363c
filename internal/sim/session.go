package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

// State is the run's lifecycle phase.
type State int

const (
	StateStart State = iota
	StatePlaying
	StateWin
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlaying:
		return "playing"
	case StateWin:
		return "win"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended.
func (s State) Terminal() bool {
	return s == StateWin || s == StateGameOver
}

// Reason explains a game over.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonTimeExpired
	ReasonFellIntoPit
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonTimeExpired:
		return "timeExpired"
	case ReasonFellIntoPit:
		return "fellIntoPit"
	default:
		return ""
	}
}

// Outcome summarizes a finished run.
type Outcome struct {
	State     State  // StateWin or StateGameOver
	Reason    Reason // ReasonNone on a win
	Elapsed   int    // whole seconds spent, rounded up
	Collected int
	Total     int
}

// Won reports whether the run was won.
func (o Outcome) Won() bool {
	return o.State == StateWin
}

// Session owns one run: the level instance, the actor, the timer and the
// collected tally. It is not safe for concurrent use; each frontend owns its own.
type Session struct {
	cfg    config.PlatformerConfig
	layout level.Layout

	level     *level.Level
	actor     Actor
	state     State
	cameraX   float64
	collected int
	remaining float64
	ticks     int
	outcome   *Outcome
}

// New validates the config and layout and returns a session on its start screen.
func New(cfg config.PlatformerConfig, layout level.Layout) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	layout = layout.Clone()
	lvl, err := level.Build(layout)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	s := &Session{cfg: cfg, layout: layout}
	s.restore(lvl)
	s.state = StateStart
	return s, nil
}

// Start leaves the start screen. It behaves exactly like Reset.
func (s *Session) Start() {
	s.Reset()
}

// Reset rebuilds the level and returns every piece of run state to its
// initial value, then enters playing. It may be called from any state.
func (s *Session) Reset() {
	// The layout was validated by New, so Build cannot fail here.
	lvl, err := level.Build(s.layout)
	if err != nil {
		panic(fmt.Sprintf("sim: rebuilding validated layout: %v", err))
	}
	s.restore(lvl)
	s.state = StatePlaying
}

func (s *Session) restore(lvl *level.Level) {
	s.level = lvl
	s.actor = NewActor(s.cfg.Actor)
	s.collected = 0
	s.remaining = s.cfg.Session.Duration
	s.ticks = 0
	s.outcome = nil
	s.cameraX = CameraX(s.actor.X, s.cfg.Viewport.Width, lvl.Width)
}

// Tick advances the run by one frame. dt is real elapsed seconds and only
// drives the timer; a negative or non-finite dt counts as zero. Outside
// playing, Tick changes nothing.
func (s *Session) Tick(dt float64, in core.Intent) Snapshot {
	if s.state != StatePlaying {
		return s.Snapshot()
	}

	s.ticks++
	if dt > 0 && !math.IsInf(dt, 1) {
		s.remaining -= dt
	}
	if s.remaining <= 0 {
		s.remaining = 0
		s.finish(StateGameOver, ReasonTimeExpired)
		return s.Snapshot()
	}

	rep := Step(&s.actor, s.level, in, s.cfg)
	s.collected += rep.Picked

	switch {
	case rep.Won:
		s.finish(StateWin, ReasonNone)
	case rep.Fell:
		s.finish(StateGameOver, ReasonFellIntoPit)
	}

	s.cameraX = CameraX(s.actor.X, s.cfg.Viewport.Width, s.level.Width)
	return s.Snapshot()
}

func (s *Session) finish(state State, reason Reason) {
	s.state = state
	s.outcome = &Outcome{
		State:     state,
		Reason:    reason,
		Elapsed:   int(math.Ceil(s.cfg.Session.Duration - s.remaining)),
		Collected: s.collected,
		Total:     len(s.level.Collectibles),
	}
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	return s.state
}

// Outcome returns the run summary once the run has ended.
func (s *Session) Outcome() (Outcome, bool) {
	if s.outcome == nil {
		return Outcome{}, false
	}
	return *s.outcome, true
}

// Level returns the live level. Callers must treat it as read-only.
func (s *Session) Level() *level.Level {
	return s.level
}

// Config returns the config the session runs with.
func (s *Session) Config() config.PlatformerConfig {
	return s.cfg
}
