package tetris

import (
	"math/rand"
	"testing"
	"time"

	"github.com/outwit/tetris-challenge/internal/config"
	"github.com/outwit/tetris-challenge/internal/core"
)

func newTestSession(rows, cols int, tun config.Tunables) *Session {
	return NewSession(rows, cols, rand.New(rand.NewSource(42)), tun)
}

// running puts s into PhaseRunning with the given board and pieces.
func running(s *Session, b Board, active, next Piece) {
	s.Apply(EventStart)
	s.st.board = b
	s.st.active = active
	s.st.next = next
}

// verticalI returns an I piece standing upright at (x, y).
func verticalI(cols, x, y int) Piece {
	p := NewPiece(KindI, cols).Rotate()
	p.X, p.Y = x, y
	return p
}

func hasCue(cues []core.Cue, c core.Cue) bool {
	for _, x := range cues {
		if x == c {
			return true
		}
	}
	return false
}

func TestStartAndRestart(t *testing.T) {
	s := newTestSession(20, 10, config.DefaultTunables())
	if s.Phase() != PhaseNotStarted {
		t.Fatalf("Phase() = %v, expected not_started", s.Phase())
	}

	if res := s.Apply(EventMoveLeft); res.Changed {
		t.Error("MoveLeft before start should be a no-op")
	}

	res := s.Apply(EventStart)
	if !res.Changed || s.Phase() != PhaseRunning {
		t.Fatalf("Start: Changed=%v Phase=%v, expected running", res.Changed, s.Phase())
	}
	if s.Score() != 0 || s.Level() != 1 || s.Lines() != 0 {
		t.Errorf("counters = %d/%d/%d, expected 0/1/0", s.Score(), s.Level(), s.Lines())
	}
	if s.Active().Y != 0 {
		t.Errorf("active spawned at y=%d, expected 0", s.Active().Y)
	}

	if res := s.Apply(EventStart); res.Changed {
		t.Error("Start while running should be a no-op")
	}

	s.st.score = 500
	s.st.lines = 12
	s.st.level = 2
	s.st.board = boardWith(20, 10, map[int]string{19: "#########."})
	s.Apply(EventPauseToggle)

	s.Apply(EventRestart)
	if s.Phase() != PhaseRunning {
		t.Errorf("Restart from paused: Phase() = %v, expected running", s.Phase())
	}
	if s.Score() != 0 || s.Level() != 1 || s.Lines() != 0 || s.Board().Filled() != 0 {
		t.Error("Restart should reset board and counters")
	}
}

func TestMoveBlockedByWallAndStack(t *testing.T) {
	s := newTestSession(6, 6, config.DefaultTunables())
	b := boardWith(6, 6, map[int]string{0: "#.....", 1: "#....."})
	o := NewPiece(KindO, 6).Translate(-1, 0) // x = 1
	running(s, b, o, NewPiece(KindT, 6))

	if res := s.Apply(EventMoveLeft); res.Changed {
		t.Error("move into stack should be rejected")
	}
	if s.Active().X != 1 {
		t.Errorf("X = %d, expected 1", s.Active().X)
	}

	for range 3 {
		res := s.Apply(EventMoveRight)
		if !res.Changed || !hasCue(res.Cues, core.CueMove) {
			t.Fatal("move right should succeed with a move cue")
		}
	}
	if res := s.Apply(EventMoveRight); res.Changed {
		t.Error("move past the right wall should be rejected")
	}
	if s.Active().X != 4 {
		t.Errorf("X = %d, expected 4", s.Active().X)
	}
}

func TestRotateWallKick(t *testing.T) {
	s := newTestSession(20, 10, config.DefaultTunables())

	// Upright I against the right wall: lying flat needs a 3-column kick.
	running(s, NewBoard(20, 10), verticalI(10, 9, 5), NewPiece(KindO, 10))
	if res := s.Apply(EventRotate); res.Changed {
		t.Errorf("rotation needing a 3-column kick should be rejected, got X=%d", s.Active().X)
	}

	// Upright T at the right wall: flat T needs one column kick left.
	tee := NewPiece(KindT, 10).Rotate()
	tee.X, tee.Y = 8, 5
	running(s, NewBoard(20, 10), tee, NewPiece(KindO, 10))
	res := s.Apply(EventRotate)
	if !res.Changed || !hasCue(res.Cues, core.CueRotate) {
		t.Fatal("rotation with a left kick should succeed")
	}
	if s.Active().X != 7 {
		t.Errorf("X after kick = %d, expected 7", s.Active().X)
	}

	// S at the left wall with its rotated top-left cell blocked: x-1 hits
	// the wall, so x+1 wins.
	ess := NewPiece(KindS, 10)
	ess.X, ess.Y = 0, 6
	running(s, boardWith(20, 10, map[int]string{6: "#........."}), ess, NewPiece(KindO, 10))
	res = s.Apply(EventRotate)
	if !res.Changed {
		t.Fatal("rotation with a right kick should succeed")
	}
	if s.Active().X != 1 {
		t.Errorf("X after kick = %d, expected 1", s.Active().X)
	}
	if s.Active().Shape.String() != "#./##/.#" {
		t.Errorf("shape after kick = %s, expected rotated S", s.Active().Shape)
	}
}

func TestPauseBlocksInput(t *testing.T) {
	s := newTestSession(20, 10, config.DefaultTunables())
	s.Apply(EventStart)
	s.Apply(EventSoftDropStart)
	before := s.Active()

	s.Apply(EventPauseToggle)
	if s.Phase() != PhasePaused {
		t.Fatalf("Phase() = %v, expected paused", s.Phase())
	}
	if s.SoftDrop() {
		t.Error("pausing should release the soft drop")
	}

	for _, ev := range []Event{EventMoveLeft, EventMoveRight, EventRotate, EventGravityTick, EventSoftDropStart, EventStart} {
		if res := s.Apply(ev); res.Changed {
			t.Errorf("%v while paused should be a no-op", ev)
		}
	}
	if s.Active().X != before.X || s.Active().Y != before.Y {
		t.Error("active piece moved while paused")
	}

	s.Apply(EventPauseToggle)
	if s.Phase() != PhaseRunning {
		t.Errorf("Phase() = %v, expected running after resume", s.Phase())
	}
}

func TestSoftDropInterval(t *testing.T) {
	s := newTestSession(20, 10, config.Tunables{DropSpeedMs: 800, PointsPerRow: 100, WinScore: 1000})
	s.Apply(EventStart)

	if got := s.EffectiveInterval(); got != 800*time.Millisecond {
		t.Errorf("EffectiveInterval() = %v, expected 800ms", got)
	}
	s.Apply(EventSoftDropStart)
	if got := s.EffectiveInterval(); got != config.FastDropInterval {
		t.Errorf("EffectiveInterval() = %v, expected fast drop", got)
	}
	s.Apply(EventSoftDropStop)
	if got := s.EffectiveInterval(); got != 800*time.Millisecond {
		t.Errorf("EffectiveInterval() = %v, expected 800ms after release", got)
	}
	if res := s.Apply(EventSoftDropStop); res.Changed {
		t.Error("second SoftDropStop should be a no-op")
	}
}

func TestGravityFallsThenLocks(t *testing.T) {
	s := newTestSession(4, 4, config.DefaultTunables())
	running(s, NewBoard(4, 4), NewPiece(KindO, 4), NewPiece(KindT, 4))

	for i := range 2 {
		res := s.Apply(EventGravityTick)
		if !res.Changed || res.Locked {
			t.Fatalf("tick %d: expected a one-row fall", i)
		}
	}
	if s.Active().Y != 2 {
		t.Fatalf("Y = %d, expected 2", s.Active().Y)
	}

	res := s.Apply(EventGravityTick)
	if !res.Locked || !hasCue(res.Cues, core.CueLock) {
		t.Fatal("blocked tick should lock with a lock cue")
	}
	if s.Board().Filled() != 4 {
		t.Errorf("Filled() = %d, expected 4", s.Board().Filled())
	}
	if s.Active().Kind != KindT {
		t.Errorf("active = %v, expected promoted T", s.Active().Kind)
	}
	if s.Phase() != PhaseRunning {
		t.Errorf("Phase() = %v, expected running", s.Phase())
	}
}

func TestPointsForLines(t *testing.T) {
	tests := []struct {
		n, expected int
	}{
		{0, 0}, {1, 100}, {2, 300}, {3, 500}, {4, 800}, {6, 800}, {-1, 0},
	}
	for _, tc := range tests {
		if got := PointsForLines(100, tc.n); got != tc.expected {
			t.Errorf("PointsForLines(100, %d) = %d, expected %d", tc.n, got, tc.expected)
		}
	}
}

func TestScoringSingleAndTetris(t *testing.T) {
	full := "#########."

	single := newTestSession(20, 10, config.DefaultTunables())
	running(single, boardWith(20, 10, map[int]string{19: full}), verticalI(10, 9, 16), NewPiece(KindO, 10))
	res := single.Apply(EventGravityTick)
	if res.LinesCleared != 1 || single.Score() != 100 {
		t.Errorf("single: lines=%d score=%d, expected 1/100", res.LinesCleared, single.Score())
	}
	if !hasCue(res.Cues, core.CueLineClear) {
		t.Error("single: expected a line-clear cue")
	}

	tetris := newTestSession(20, 10, config.DefaultTunables())
	b := boardWith(20, 10, map[int]string{16: full, 17: full, 18: full, 19: full})
	running(tetris, b, verticalI(10, 9, 16), NewPiece(KindO, 10))
	res = tetris.Apply(EventGravityTick)
	if res.LinesCleared != 4 {
		t.Fatalf("tetris: lines=%d, expected 4", res.LinesCleared)
	}
	if tetris.Score() != 800 {
		t.Errorf("tetris: score=%d, expected 800 (8x base)", tetris.Score())
	}
	if tetris.Board().Filled() != 0 {
		t.Errorf("tetris: Filled() = %d, expected empty board", tetris.Board().Filled())
	}
}

func TestScoringUsesPreTickLevel(t *testing.T) {
	full := "#########."
	s := newTestSession(20, 10, config.Tunables{DropSpeedMs: 1000, PointsPerRow: 100, WinScore: 100000})
	running(s, boardWith(20, 10, map[int]string{18: full, 19: full}), verticalI(10, 9, 16), NewPiece(KindO, 10))
	s.st.lines = 9

	s.Apply(EventGravityTick)
	if s.Score() != 300 {
		t.Errorf("Score() = %d, expected 300 scored at level 1", s.Score())
	}
	if s.Lines() != 11 || s.Level() != 2 {
		t.Errorf("lines/level = %d/%d, expected 11/2", s.Lines(), s.Level())
	}
	if s.GravityInterval() != 925*time.Millisecond {
		t.Errorf("GravityInterval() = %v, expected 925ms", s.GravityInterval())
	}

	// The next clear is scored at level 2.
	s.st.board = boardWith(20, 10, map[int]string{19: full})
	s.st.active = verticalI(10, 9, 16)
	s.Apply(EventGravityTick)
	if s.Score() != 500 {
		t.Errorf("Score() = %d, expected 500", s.Score())
	}
}

func TestWinTakesPrecedenceOverTopOut(t *testing.T) {
	s := newTestSession(20, 10, config.Tunables{DropSpeedMs: 1000, PointsPerRow: 100, WinScore: 100})
	// Rows 0 and 1 block the O spawn once they shift down by one.
	b := boardWith(20, 10, map[int]string{
		0:  "....##....",
		1:  "....##....",
		19: "#########.",
	})
	running(s, b, verticalI(10, 9, 16), NewPiece(KindO, 10))

	res := s.Apply(EventGravityTick)
	if s.Board().IsValidPlacement(s.Active()) {
		t.Fatal("fixture should leave the spawned piece blocked")
	}
	if s.Phase() != PhaseOver || s.Outcome() != OutcomeWin {
		t.Errorf("Phase/Outcome = %v/%v, expected over/win", s.Phase(), s.Outcome())
	}
	if !res.Ended || res.Outcome != OutcomeWin || !hasCue(res.Cues, core.CueGameOver) {
		t.Errorf("Result = %+v, expected ended with win", res)
	}
}

func TestSpawnCollisionTopOut(t *testing.T) {
	// Solid board except the top-left cell: the O piece cannot spawn.
	solid := make(map[int]string)
	for y := range 20 {
		solid[y] = "##########"
	}
	solid[0] = ".#########"
	if boardWith(20, 10, solid).IsValidPlacement(NewPiece(KindO, 10)) {
		t.Fatal("O spawn on a solid board should be invalid")
	}

	// The same condition reached through a lock: the right column is left
	// open so no row clears.
	open := make(map[int]string)
	for y := range 20 {
		open[y] = "#########."
	}
	open[0] = "..#######."
	s := newTestSession(20, 10, config.DefaultTunables())
	running(s, boardWith(20, 10, open), verticalI(10, 0, -3), NewPiece(KindO, 10))

	res := s.Apply(EventGravityTick)
	if res.LinesCleared != 0 {
		t.Fatalf("LinesCleared = %d, expected 0", res.LinesCleared)
	}
	if s.Phase() != PhaseOver || s.Outcome() != OutcomeLoss {
		t.Errorf("Phase/Outcome = %v/%v, expected over/loss", s.Phase(), s.Outcome())
	}
	if !res.Ended || res.Outcome != OutcomeLoss {
		t.Errorf("Result = %+v, expected ended with loss", res)
	}

	for _, ev := range []Event{EventMoveLeft, EventRotate, EventGravityTick, EventPauseToggle, EventSoftDropStart} {
		if res := s.Apply(ev); res.Changed {
			t.Errorf("%v after game over should be a no-op", ev)
		}
	}

	s.Apply(EventStart)
	if s.Phase() != PhaseRunning {
		t.Errorf("Start after game over: Phase() = %v, expected running", s.Phase())
	}
}

// TestRandomPlayInvariants drives a small board with random events and
// checks the level formula, score monotonicity, and that the board only
// changes through a merge of the active piece.
func TestRandomPlayInvariants(t *testing.T) {
	s := NewSession(10, 4, rand.New(rand.NewSource(3)), config.Tunables{DropSpeedMs: 100, PointsPerRow: 10, WinScore: 1 << 30})
	s.Apply(EventStart)
	events := []Event{EventMoveLeft, EventMoveRight, EventRotate, EventGravityTick, EventGravityTick, EventGravityTick}
	rng := rand.New(rand.NewSource(99))

	locks, clears, games := 0, 0, 1
	for i := range 20000 {
		if s.Phase() == PhaseOver {
			s.Apply(EventRestart)
			games++
		}

		prevBoard := s.Board()
		prevActive := s.Active()
		prevScore := s.Score()

		res := s.Apply(events[rng.Intn(len(events))])

		if s.Level() != s.Lines()/10+1 {
			t.Fatalf("step %d: level %d with %d lines", i, s.Level(), s.Lines())
		}
		if s.Score() < prevScore {
			t.Fatalf("step %d: score decreased %d -> %d", i, prevScore, s.Score())
		}

		expected := prevBoard
		if res.Locked {
			locks++
			var n int
			expected, n = prevBoard.Merge(prevActive).ClearFullLines()
			if n != res.LinesCleared {
				t.Fatalf("step %d: LinesCleared = %d, expected %d", i, res.LinesCleared, n)
			}
			clears += n
		}
		if s.Board().String() != expected.String() {
			t.Fatalf("step %d: board changed outside a lock", i)
		}
	}

	if locks == 0 || clears == 0 || games < 2 {
		t.Errorf("random play too shallow: %d locks, %d clears, %d games", locks, clears, games)
	}
}
