// Package audio plays sound cues for game events. Playback is best effort:
// a failing sink never affects the game.
package audio

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/outwit/tetris-challenge/internal/core"
)

// Sink produces the sound for a cue.
type Sink interface {
	Play(cue core.Cue) error
}

// BellSink rings the terminal bell. Terminals have a single sound, so only
// the cues worth interrupting for are audible.
type BellSink struct {
	w       io.Writer
	audible map[core.Cue]bool
}

// NewBellSink creates a bell sink writing to w.
func NewBellSink(w io.Writer) *BellSink {
	return &BellSink{
		w: w,
		audible: map[core.Cue]bool{
			core.CueLineClear: true,
			core.CueGameOver:  true,
		},
	}
}

// Play writes BEL for audible cues.
func (b *BellSink) Play(cue core.Cue) error {
	if !b.audible[cue] {
		return nil
	}
	_, err := b.w.Write([]byte{'\a'})
	return err
}

// Mixer routes cues to a sink and owns the mute switch.
type Mixer struct {
	mu      sync.Mutex
	sink    Sink
	enabled bool
	muted   bool
	logger  *log.Logger
}

// NewMixer creates a mixer. A nil sink or enabled == false makes every
// Play a no-op.
func NewMixer(sink Sink, enabled, muted bool, logger *log.Logger) *Mixer {
	if logger == nil {
		logger = log.Default()
	}
	return &Mixer{
		sink:    sink,
		enabled: enabled && sink != nil,
		muted:   muted,
		logger:  logger,
	}
}

// Play sends each cue to the sink unless muted. Sink errors are logged.
func (m *Mixer) Play(cues ...core.Cue) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled || m.muted {
		return
	}
	for _, c := range cues {
		if err := m.sink.Play(c); err != nil {
			m.logger.Debug("sound cue failed", "cue", c, "err", err)
		}
	}
}

// ToggleMute flips the mute switch and returns the new state.
func (m *Mixer) ToggleMute() bool {
	if m == nil {
		return true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
	return m.muted
}

// Muted reports whether cues are silenced.
func (m *Mixer) Muted() bool {
	if m == nil {
		return true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted || !m.enabled
}
