package tetris

import (
	"time"

	"github.com/outwit/tetris-challenge/internal/core"
)

// Snapshot captures everything a renderer needs, and everything a
// determinism test compares.
type Snapshot struct {
	Frames   uint64
	Board    [][]core.Color
	Active   Piece
	Next     Piece
	Score    int
	Level    int
	Lines    int
	Phase    Phase
	Outcome  Outcome
	SoftDrop bool
	Interval time.Duration
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Board:    s.st.board.Cells(),
		Active:   s.st.active.Clone(),
		Next:     s.st.next.Clone(),
		Score:    s.st.score,
		Level:    s.st.level,
		Lines:    s.st.lines,
		Phase:    s.st.phase,
		Outcome:  s.st.outcome,
		SoftDrop: s.st.softDrop,
		Interval: s.EffectiveInterval(),
	}
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{Level: 1}
	}
	snap := g.session.Snapshot()
	snap.Frames = g.frames
	return snap
}
