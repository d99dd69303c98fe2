package core

import "time"

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Refresh ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic piece sequences
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameInterval returns the nominal time between refresh ticks.
func (c RuntimeConfig) FrameInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState is the summary the platform needs after every step.
type GameState struct {
	Score    int
	Level    int
	Lines    int
	Started  bool
	GameOver bool
	Won      bool // Only meaningful when GameOver is set
	Paused   bool
}

// Cue names a sound-worthy event produced by the engine.
type Cue string

const (
	CueMove      Cue = "move"
	CueRotate    Cue = "rotate"
	CueLock      Cue = "lock"
	CueLineClear Cue = "line_clear"
	CueGameOver  Cue = "game_over"
)

// StepResult is returned by Game.Step after each refresh tick.
type StepResult struct {
	State GameState
	Cues  []Cue
	// Finished is set on the single step that moved the game into its
	// terminal state. The platform reports the outcome exactly then.
	Finished bool
}
