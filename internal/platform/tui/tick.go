// Package tui provides the Bubble Tea integration for the challenge.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game refresh.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// elapsedSince returns the time between two ticks. The first tick of a
// run has no predecessor and counts as one frame.
func elapsedSince(prev, now time.Time, frame time.Duration) time.Duration {
	if prev.IsZero() {
		return frame
	}
	d := now.Sub(prev)
	if d < 0 {
		return 0
	}
	return d
}
