// Package config provides YAML-based configuration loading and the speed
// curve for the tetris challenge.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Tunable limits and defaults. The fast-drop interval is never overridden
// by external settings.
const (
	DefaultDropSpeedMs  = 1000
	DefaultPointsPerRow = 100
	DefaultWinScore     = 1000

	MinDropSpeedMs  = 100
	MinPointsPerRow = 10
	MinWinScore     = 100

	FastDropInterval   = 50 * time.Millisecond
	MinGravityInterval = 100 * time.Millisecond
	LevelSpeedStep     = 75 * time.Millisecond
	LinesPerLevel      = 10

	DefaultRows = 20
	DefaultCols = 10
)

// ErrInvalidTunables is returned by Tunables.Validate. The wrapped message
// names the first field that failed.
var ErrInvalidTunables = errors.New("invalid tunables")

// Tunables are the three externally configurable gameplay values.
type Tunables struct {
	DropSpeedMs  int `yaml:"drop_speed_ms"`
	PointsPerRow int `yaml:"points_per_row"`
	WinScore     int `yaml:"win_score"`
}

// DefaultTunables returns the compiled-in gameplay values.
func DefaultTunables() Tunables {
	return Tunables{
		DropSpeedMs:  DefaultDropSpeedMs,
		PointsPerRow: DefaultPointsPerRow,
		WinScore:     DefaultWinScore,
	}
}

// Validate checks every field against its minimum.
func (t Tunables) Validate() error {
	switch {
	case t.DropSpeedMs < MinDropSpeedMs:
		return fmt.Errorf("%w: Drop speed must be at least %dms.", ErrInvalidTunables, MinDropSpeedMs)
	case t.PointsPerRow < MinPointsPerRow:
		return fmt.Errorf("%w: Points per row must be at least %d.", ErrInvalidTunables, MinPointsPerRow)
	case t.WinScore < MinWinScore:
		return fmt.Errorf("%w: Win score must be at least %d.", ErrInvalidTunables, MinWinScore)
	}
	return nil
}

// WithDefaults replaces each field below its minimum with the matching
// field of fallback. Missing values from a settings row arrive as zero.
func (t Tunables) WithDefaults(fallback Tunables) Tunables {
	if t.DropSpeedMs < MinDropSpeedMs {
		t.DropSpeedMs = fallback.DropSpeedMs
	}
	if t.PointsPerRow < MinPointsPerRow {
		t.PointsPerRow = fallback.PointsPerRow
	}
	if t.WinScore < MinWinScore {
		t.WinScore = fallback.WinScore
	}
	return t
}

// DropInterval returns the base gravity interval.
func (t Tunables) DropInterval() time.Duration {
	return time.Duration(t.DropSpeedMs) * time.Millisecond
}

// TetrisConfig contains all file-based configuration for the challenge.
type TetrisConfig struct {
	Board    BoardConfig `yaml:"board"`
	Gameplay Tunables    `yaml:"gameplay"`
	Audio    AudioConfig `yaml:"audio"`
	UI       UIConfig    `yaml:"ui"`
}

// BoardConfig defines the playfield dimensions.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// AudioConfig toggles sound cues.
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
	Muted   bool `yaml:"muted"` // start muted
}

// UIConfig holds terminal shell options.
type UIConfig struct {
	// SoftDropReleaseMs is how long after the last down-arrow repeat the
	// shell treats the key as released. Terminals send no key-up events.
	SoftDropReleaseMs int  `yaml:"soft_drop_release_ms"`
	ShowNext          bool `yaml:"show_next"`
}

// SoftDropRelease returns the release timeout as a duration.
func (u UIConfig) SoftDropRelease() time.Duration {
	return time.Duration(u.SoftDropReleaseMs) * time.Millisecond
}

// Validate checks the board and gameplay sections.
func (c TetrisConfig) Validate() error {
	if c.Board.Rows < 4 || c.Board.Cols < 4 {
		return fmt.Errorf("config: board must be at least 4x4, got %dx%d", c.Board.Rows, c.Board.Cols)
	}
	if err := c.Gameplay.Validate(); err != nil {
		return fmt.Errorf("config: gameplay: %w", err)
	}
	if c.UI.SoftDropReleaseMs < 0 {
		return fmt.Errorf("config: soft_drop_release_ms must not be negative")
	}
	return nil
}
