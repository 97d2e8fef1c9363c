// Package config provides YAML-based configuration loading for the
// platformer's physics, actor, viewport and session tunables.
package config

import (
	"errors"
	"fmt"
)

// PlatformerConfig contains every tunable of the simulation.
type PlatformerConfig struct {
	Physics   Physics   `yaml:"physics"`
	Actor     Actor     `yaml:"actor"`
	Viewport  Viewport  `yaml:"viewport"`
	Session   Session   `yaml:"session"`
	Animation Animation `yaml:"animation"`
	Input     Input     `yaml:"input"`
}

// Physics defines per-tick motion constants.
// Values are frame-coupled: one nominal step per simulation tick.
type Physics struct {
	Gravity          float64 `yaml:"gravity"`
	JumpImpulse      float64 `yaml:"jump_impulse"`      // negative = up
	MoveSpeed        float64 `yaml:"move_speed"`        // horizontal speed under input
	AutoWalkFactor   float64 `yaml:"autowalk_factor"`   // fraction of MoveSpeed once past the finish
	LandingTolerance float64 `yaml:"landing_tolerance"` // slack when deciding a platform was below the actor
}

// Actor defines the player's size and starting pose.
type Actor struct {
	StartX     float64 `yaml:"start_x"`
	StartY     float64 `yaml:"start_y"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	ProbeInset float64 `yaml:"probe_inset"` // horizontal inset of the obstacle probe, per side
}

// Viewport defines the visible window into the level.
type Viewport struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	FallMargin float64 `yaml:"fall_margin"` // how far below the viewport counts as a pit fall
}

// Session defines the run timer.
type Session struct {
	Duration float64 `yaml:"duration"` // seconds
}

// Animation defines the cosmetic walk cycle.
type Animation struct {
	WalkFrames int `yaml:"walk_frames"`
	WalkTicks  int `yaml:"walk_ticks"` // the phase advances once the timer exceeds this
}

// Input defines terminal input handling.
type Input struct {
	// HoldTicks is how long a direction key stays pressed after a key event.
	// Terminals report presses only, never releases.
	HoldTicks int `yaml:"hold_ticks"`
}

// ErrInvalidConfig is returned by Validate for unusable values.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the config can drive a simulation.
func (c PlatformerConfig) Validate() error {
	switch {
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: physics.gravity must be positive", ErrInvalidConfig)
	case c.Physics.JumpImpulse >= 0:
		return fmt.Errorf("%w: physics.jump_impulse must be negative", ErrInvalidConfig)
	case c.Physics.MoveSpeed <= 0:
		return fmt.Errorf("%w: physics.move_speed must be positive", ErrInvalidConfig)
	case c.Physics.AutoWalkFactor <= 0:
		return fmt.Errorf("%w: physics.autowalk_factor must be positive", ErrInvalidConfig)
	case c.Actor.Width <= 0 || c.Actor.Height <= 0:
		return fmt.Errorf("%w: actor size must be positive", ErrInvalidConfig)
	case c.Actor.ProbeInset < 0 || 2*c.Actor.ProbeInset >= c.Actor.Width:
		return fmt.Errorf("%w: actor.probe_inset must leave a positive probe width", ErrInvalidConfig)
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("%w: viewport size must be positive", ErrInvalidConfig)
	case c.Session.Duration <= 0:
		return fmt.Errorf("%w: session.duration must be positive", ErrInvalidConfig)
	case c.Animation.WalkFrames <= 0:
		return fmt.Errorf("%w: animation.walk_frames must be positive", ErrInvalidConfig)
	}
	return nil
}
