// Package sim is the per-frame simulation engine: actor physics against a
// static level, the follow camera and the run's state machine. It is pure:
// no I/O, no clocks, no goroutines. Given the same (dt, intent) sequence
// from a reset session it produces bit-identical results.
package sim

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Actor is the player character. Y grows downward.
type Actor struct {
	X, Y     float64
	W, H     float64
	VX, VY   float64
	OnGround bool
	Facing   int // -1 left, +1 right
	Walking  bool
	AutoWalk bool // engaged once past the finish line; input is ignored from then on

	WalkTimer int // ticks since the last walk phase change
	WalkFrame int // 0..walk_frames-1
}

// NewActor returns an actor in its starting pose.
func NewActor(cfg config.Actor) Actor {
	return Actor{
		X:      cfg.StartX,
		Y:      cfg.StartY,
		W:      cfg.Width,
		H:      cfg.Height,
		Facing: 1,
	}
}

// Rect returns the actor's full bounding box.
func (a Actor) Rect() core.Rect {
	return core.NewRect(a.X, a.Y, a.W, a.H)
}

// Bottom returns the y-coordinate of the actor's feet.
func (a Actor) Bottom() float64 {
	return a.Y + a.H
}
