package config

import "time"

// SpeedCurve maps cleared lines to levels and levels to gravity intervals.
type SpeedCurve struct {
	base time.Duration
}

// NewSpeedCurve creates a curve starting at the given base interval.
func NewSpeedCurve(base time.Duration) SpeedCurve {
	return SpeedCurve{base: base}
}

// Base returns the level-1 interval.
func (c SpeedCurve) Base() time.Duration {
	return c.base
}

// Level returns the level reached after clearing the given number of lines.
func (c SpeedCurve) Level(lines int) int {
	if lines < 0 {
		lines = 0
	}
	return lines/LinesPerLevel + 1
}

// Interval returns the gravity interval for a level, floored at
// MinGravityInterval.
func (c SpeedCurve) Interval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	d := c.base - time.Duration(level-1)*LevelSpeedStep
	if d < MinGravityInterval {
		return MinGravityInterval
	}
	return d
}
