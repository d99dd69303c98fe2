package tetris

import (
	"math/rand"
	"time"

	"github.com/outwit/tetris-challenge/internal/config"
	"github.com/outwit/tetris-challenge/internal/core"
)

// GameID is the identifier stored with scores.
const GameID = "tetris"

// Game adapts a Session and its Scheduler to the platform loop:
// input frames in, rendered screens and step results out.
type Game struct {
	rows, cols int
	tunables   config.Tunables
	showNext   bool

	session   *Session
	scheduler *Scheduler
	frames    uint64

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game for the given board size and fallback tunables.
func New(cfg config.TetrisConfig) *Game {
	return &Game{
		rows:     cfg.Board.Rows,
		cols:     cfg.Board.Cols,
		tunables: cfg.Gameplay,
		showNext: cfg.UI.ShowNext,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Reset builds a fresh session in PhaseNotStarted. The previous
// scheduler, if any, is stopped so late ticks bound to it are ignored.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.scheduler != nil {
		g.scheduler.Stop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.session = NewSession(g.rows, g.cols, rand.New(rand.NewSource(seed)), g.tunables)
	g.scheduler = NewScheduler(g.session, func() { g.frames++ })
	g.frames = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreenSize()
}

// SetTunables sets the gameplay values used from the next start on.
func (g *Game) SetTunables(t config.Tunables) {
	g.tunables = t
	if g.session != nil {
		g.session.SetTunables(t)
	}
}

// Tunables returns the values the next game will be played with.
func (g *Game) Tunables() config.Tunables {
	if g.session != nil {
		return g.session.Tunables()
	}
	return g.tunables.WithDefaults(config.DefaultTunables())
}

// Resize updates the screen dimensions.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW, minH := layoutSize(g.rows, g.cols)
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// actionEvents maps platform actions to session events.
var actionEvents = map[core.Action]Event{
	core.ActionLeft:          EventMoveLeft,
	core.ActionRight:         EventMoveRight,
	core.ActionRotate:        EventRotate,
	core.ActionSoftDropStart: EventSoftDropStart,
	core.ActionSoftDropStop:  EventSoftDropStop,
	core.ActionStart:         EventStart,
	core.ActionRestart:       EventRestart,
	core.ActionPause:         EventPauseToggle,
}

// Step applies the frame's actions in order, then advances the scheduler
// by elapsed.
func (g *Game) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	var out core.StepResult
	if g.session == nil || g.scheduler.Stopped() {
		return out
	}

	collect := func(res Result) {
		out.Cues = append(out.Cues, res.Cues...)
		if res.Ended {
			out.Finished = true
		}
	}

	for _, a := range in.Actions {
		ev, ok := actionEvents[a]
		if !ok {
			continue
		}
		// Gameplay is frozen while the window is too small; pause and
		// restart still work.
		if g.tooSmall && ev != EventPauseToggle && ev != EventRestart {
			continue
		}
		collect(g.session.Apply(ev))
	}

	if g.tooSmall && g.session.Phase() == PhaseRunning {
		collect(g.session.Apply(EventPauseToggle))
	}
	collect(g.scheduler.OnRefresh(elapsed))

	out.State = g.State()
	return out
}

// Stop tears the game down. Later steps are no-ops.
func (g *Game) Stop() {
	if g.scheduler != nil {
		g.scheduler.Stop()
	}
}

// State returns the summary used by the platform.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Level: 1}
	}
	phase := g.session.Phase()
	return core.GameState{
		Score:    g.session.Score(),
		Level:    g.session.Level(),
		Lines:    g.session.Lines(),
		Started:  phase != PhaseNotStarted,
		GameOver: phase == PhaseOver,
		Won:      g.session.Outcome() == OutcomeWin,
		Paused:   phase == PhasePaused,
	}
}

// Session exposes the underlying state machine.
func (g *Game) Session() *Session {
	return g.session
}
