package tetris

import (
	"math/rand"
	"time"

	"github.com/outwit/tetris-challenge/internal/config"
	"github.com/outwit/tetris-challenge/internal/core"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseOver
)

// String returns the display name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Outcome is how an Over session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
)

// String returns the display name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "none"
	}
}

// Event is a discrete input to the session state machine.
type Event int

const (
	EventStart Event = iota
	EventRestart
	EventMoveLeft
	EventMoveRight
	EventRotate
	EventSoftDropStart
	EventSoftDropStop
	EventPauseToggle
	EventGravityTick
)

// String returns the event name for logs.
func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventRestart:
		return "restart"
	case EventMoveLeft:
		return "move_left"
	case EventMoveRight:
		return "move_right"
	case EventRotate:
		return "rotate"
	case EventSoftDropStart:
		return "soft_drop_start"
	case EventSoftDropStop:
		return "soft_drop_stop"
	case EventPauseToggle:
		return "pause_toggle"
	case EventGravityTick:
		return "gravity_tick"
	default:
		return "unknown"
	}
}

// Result describes what a single Apply did.
type Result struct {
	Changed      bool // state differs from before the event
	Locked       bool // active piece was merged into the board
	LinesCleared int
	Points       int // score gained by this event
	Cues         []core.Cue
	Ended        bool // this event moved the session into PhaseOver
	Outcome      Outcome
}

// lineMultipliers maps lines cleared at once to a multiple of the per-row
// base. Larger counts use the last entry.
var lineMultipliers = [...]int{0, 1, 3, 5, 8}

// PointsForLines returns the points for clearing n lines at level 1.
func PointsForLines(base, n int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(lineMultipliers) {
		n = len(lineMultipliers) - 1
	}
	return lineMultipliers[n] * base
}

// state is everything that changes during play. Transitions build a new
// state value and the session swaps it in whole.
type state struct {
	board    Board
	active   Piece
	next     Piece
	score    int
	level    int
	lines    int
	phase    Phase
	outcome  Outcome
	softDrop bool
	interval time.Duration
}

// Session is the game state machine. It is not safe for concurrent use:
// a single goroutine owns it and feeds it events one at a time.
type Session struct {
	rows, cols int
	rng        *rand.Rand
	tunables   config.Tunables
	curve      config.SpeedCurve
	st         state
}

// NewSession creates a session in PhaseNotStarted. Tunables below their
// minimums are replaced with defaults.
func NewSession(rows, cols int, rng *rand.Rand, t config.Tunables) *Session {
	s := &Session{rows: rows, cols: cols, rng: rng}
	s.SetTunables(t)
	s.st = state{
		board:    NewBoard(rows, cols),
		level:    1,
		phase:    PhaseNotStarted,
		interval: s.curve.Interval(1),
	}
	return s
}

// SetTunables replaces the tunables used by the next Start or Restart.
func (s *Session) SetTunables(t config.Tunables) {
	s.tunables = t.WithDefaults(config.DefaultTunables())
	s.curve = config.NewSpeedCurve(s.tunables.DropInterval())
}

// Tunables returns the tunables the next game will use.
func (s *Session) Tunables() config.Tunables {
	return s.tunables
}

// Apply feeds one event through the state machine. Events that do not
// apply in the current phase return a Result with Changed == false.
func (s *Session) Apply(ev Event) Result {
	next, res := s.transition(s.st, ev)
	s.st = next
	return res
}

func (s *Session) transition(st state, ev Event) (state, Result) {
	switch ev {
	case EventStart:
		if st.phase != PhaseNotStarted && st.phase != PhaseOver {
			return st, Result{}
		}
		return s.fresh()
	case EventRestart:
		return s.fresh()
	case EventMoveLeft:
		return s.shift(st, -1)
	case EventMoveRight:
		return s.shift(st, 1)
	case EventRotate:
		return s.rotate(st)
	case EventSoftDropStart:
		if st.phase != PhaseRunning || st.softDrop {
			return st, Result{}
		}
		st.softDrop = true
		return st, Result{Changed: true}
	case EventSoftDropStop:
		if !st.softDrop {
			return st, Result{}
		}
		st.softDrop = false
		return st, Result{Changed: true}
	case EventPauseToggle:
		switch st.phase {
		case PhaseRunning:
			st.phase = PhasePaused
			st.softDrop = false
		case PhasePaused:
			st.phase = PhaseRunning
		default:
			return st, Result{}
		}
		return st, Result{Changed: true}
	case EventGravityTick:
		return s.gravity(st)
	}
	return st, Result{}
}

// fresh builds the initial running state for a new game.
func (s *Session) fresh() (state, Result) {
	st := state{
		board:    NewBoard(s.rows, s.cols),
		active:   RandomPiece(s.rng, s.cols),
		next:     RandomPiece(s.rng, s.cols),
		level:    1,
		phase:    PhaseRunning,
		interval: s.curve.Interval(1),
	}
	res := Result{Changed: true}
	if !st.board.IsValidPlacement(st.active) {
		// Only reachable on boards narrower than a piece.
		st.phase = PhaseOver
		st.outcome = OutcomeLoss
		res.Ended = true
		res.Outcome = OutcomeLoss
		res.Cues = append(res.Cues, core.CueGameOver)
	}
	return st, res
}

func (s *Session) shift(st state, dx int) (state, Result) {
	if st.phase != PhaseRunning {
		return st, Result{}
	}
	candidate := st.active.Translate(dx, 0)
	if !st.board.IsValidPlacement(candidate) {
		return st, Result{}
	}
	st.active = candidate
	return st, Result{Changed: true, Cues: []core.Cue{core.CueMove}}
}

// kickOffsets are the horizontal offsets tried, in order, after a rotation.
var kickOffsets = [...]int{0, -1, 1}

func (s *Session) rotate(st state) (state, Result) {
	if st.phase != PhaseRunning {
		return st, Result{}
	}
	rotated := st.active.Rotate()
	for _, dx := range kickOffsets {
		candidate := rotated.Translate(dx, 0)
		if st.board.IsValidPlacement(candidate) {
			st.active = candidate
			return st, Result{Changed: true, Cues: []core.Cue{core.CueRotate}}
		}
	}
	return st, Result{}
}

func (s *Session) gravity(st state) (state, Result) {
	if st.phase != PhaseRunning {
		return st, Result{}
	}
	down := st.active.Translate(0, 1)
	if st.board.IsValidPlacement(down) {
		st.active = down
		return st, Result{Changed: true}
	}
	return s.lock(st)
}

// lock runs the lock sequence: merge, clear, score with the level held
// before this tick, level and interval update, win check, spawn, top-out.
func (s *Session) lock(st state) (state, Result) {
	res := Result{Changed: true, Locked: true, Cues: []core.Cue{core.CueLock}}

	board, n := st.board.Merge(st.active).ClearFullLines()
	st.board = board
	res.LinesCleared = n

	if n > 0 {
		res.Points = PointsForLines(s.tunables.PointsPerRow, n) * st.level
		st.score += res.Points
		st.lines += n
		if level := s.curve.Level(st.lines); level > st.level {
			st.level = level
			st.interval = s.curve.Interval(level)
		}
		res.Cues = append(res.Cues, core.CueLineClear)

		if st.score >= s.tunables.WinScore {
			st.phase = PhaseOver
			st.outcome = OutcomeWin
		}
	}

	st.active = st.next
	st.next = RandomPiece(s.rng, s.cols)

	if st.phase != PhaseOver && !st.board.IsValidPlacement(st.active) {
		st.phase = PhaseOver
		st.outcome = OutcomeLoss
	}

	if st.phase == PhaseOver {
		st.softDrop = false
		res.Ended = true
		res.Outcome = st.outcome
		res.Cues = append(res.Cues, core.CueGameOver)
	}
	return st, res
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.st.phase
}

// Outcome returns the result of an Over session, OutcomeNone otherwise.
func (s *Session) Outcome() Outcome {
	return s.st.outcome
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.st.score
}

// Level returns the current level, starting at 1.
func (s *Session) Level() int {
	return s.st.level
}

// Lines returns the total lines cleared this game.
func (s *Session) Lines() int {
	return s.st.lines
}

// Board returns the locked-cell board. Boards are immutable values.
func (s *Session) Board() Board {
	return s.st.board
}

// Active returns the falling piece.
func (s *Session) Active() Piece {
	return s.st.active
}

// Next returns the preview piece.
func (s *Session) Next() Piece {
	return s.st.next
}

// SoftDrop reports whether the fast drop is held.
func (s *Session) SoftDrop() bool {
	return s.st.softDrop
}

// GravityInterval returns the level-scaled interval.
func (s *Session) GravityInterval() time.Duration {
	return s.st.interval
}

// EffectiveInterval returns the interval the scheduler should use now.
func (s *Session) EffectiveInterval() time.Duration {
	if s.st.softDrop {
		return config.FastDropInterval
	}
	return s.st.interval
}
