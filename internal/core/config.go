package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and pace the simulation.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TickSeconds returns the nominal duration of one tick.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Collectibles gathered this run
	GameOver bool // Whether the run has ended (win or loss)
	Won      bool // Whether the run ended in a win
	Started  bool // Whether the run has left the start screen
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
