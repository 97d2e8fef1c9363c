// Package runner adapts the platformer simulation to the arcade platform.
// Each embedded level registers as its own game.
package runner

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// Game drives one sim.Session from platform input frames.
type Game struct {
	layout  level.Layout
	session *sim.Session
	snap    sim.Snapshot
	runtime core.RuntimeConfig
	err     error // set when the session could not be created
}

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a game for the given layout. The session is built on Reset.
func New(layout level.Layout) *Game {
	return &Game{layout: layout}
}

// ID returns the level ID.
func (g *Game) ID() string {
	return g.layout.ID
}

// Title returns the level's display name.
func (g *Game) Title() string {
	if g.layout.Name == "" {
		return g.layout.ID
	}
	return g.layout.Name
}

// Reset loads the config, rebuilds the session and shows the start screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadPlatformer(configPath)
	if err != nil {
		cfg = config.DefaultPlatformerConfig()
	}

	g.session, g.err = sim.New(cfg, g.layout)
	if g.err != nil {
		return
	}
	g.snap = g.session.Snapshot()
}

// Step advances one tick of nominal length.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	return g.StepDT(in, g.runtime.TickSeconds())
}

// StepDT advances one tick; dt is wall-clock seconds since the previous tick.
func (g *Game) StepDT(in core.InputFrame, dt float64) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	switch st := g.session.State(); {
	case st == sim.StateStart:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			g.session.Start()
		}
		g.snap = g.session.Snapshot()
	case st.Terminal():
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.session.Reset()
		}
		g.snap = g.session.Snapshot()
	default:
		g.snap = g.session.Tick(dt, in.Intent())
	}

	return core.StepResult{State: g.State()}
}

// State returns the platform-facing summary of the run.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.snap.State
	return core.GameState{
		Score:    g.snap.Collected,
		GameOver: st.Terminal(),
		Won:      st == sim.StateWin,
		Started:  st != sim.StateStart,
	}
}

// Outcome returns the finished run's summary, if the run has ended.
func (g *Game) Outcome() (sim.Outcome, bool) {
	if g.session == nil {
		return sim.Outcome{}, false
	}
	return g.session.Outcome()
}

// Err returns the error that kept the session from starting, if any.
func (g *Game) Err() error {
	return g.err
}

// Register adds a layout to the registry unless its ID is taken.
// It reports whether the layout was registered.
func Register(layout level.Layout) bool {
	if registry.Exists(layout.ID) {
		return false
	}
	registry.Register(layout.ID, func() registry.Game {
		return New(layout)
	})
	return true
}

func init() {
	layouts, err := level.Embedded()
	if err != nil {
		panic(fmt.Sprintf("runner: loading embedded levels: %v", err))
	}
	for _, layout := range layouts {
		Register(layout)
	}
}
