package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: Physics{
			Gravity:          0.6,
			JumpImpulse:      -14,
			MoveSpeed:        6,
			AutoWalkFactor:   0.7,
			LandingTolerance: 5,
		},
		Actor: Actor{
			StartX:     100,
			StartY:     400,
			Width:      40,
			Height:     70,
			ProbeInset: 5,
		},
		Viewport: Viewport{
			Width:      1200,
			Height:     600,
			FallMargin: 100,
		},
		Session: Session{
			Duration: 120,
		},
		Animation: Animation{
			WalkFrames: 4,
			WalkTicks:  8,
		},
		Input: Input{
			HoldTicks: 30,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultPlatformerYAML
}
