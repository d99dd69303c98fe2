package tetris

import (
	"fmt"

	"github.com/outwit/tetris-challenge/internal/core"
)

const (
	cellWidth  = 2  // Each board cell is drawn as two characters
	panelWidth = 16 // Side panel with preview and HUD
	panelGap   = 2
	blockRune  = '█'
)

// layoutSize returns the minimum screen size for a board.
func layoutSize(rows, cols int) (w, h int) {
	boardW := cols*cellWidth + 2
	boardH := rows + 2
	return boardW + panelGap + panelWidth, boardH + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	totalW, totalH := layoutSize(g.rows, g.cols)
	boardX := (g.screenW - totalW) / 2
	boardY := (g.screenH-totalH)/2 + 1
	boardW := g.cols*cellWidth + 2
	boardH := g.rows + 2

	title := "OUTWIT TETRIS"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, boardY-1, title, core.ColorCyan)

	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH))
	g.renderBoard(dst, boardX+1, boardY+1)
	g.renderPanel(dst, boardX+boardW+panelGap, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	minW, minH := layoutSize(g.rows, g.cols)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minW, minH))
}

// drawCell paints one board cell.
func drawCell(dst *core.Screen, x, y int, c core.Color) {
	for i := range cellWidth {
		dst.SetColored(x+i, y, blockRune, c)
	}
}

// renderBoard draws locked cells and the falling piece.
func (g *Game) renderBoard(dst *core.Screen, x0, y0 int) {
	board := g.session.Board()
	for y := range board.Rows() {
		for x := range board.Cols() {
			if c := board.At(x, y); c != core.ColorDefault {
				drawCell(dst, x0+x*cellWidth, y0+y, c)
			} else if x%2 == 0 {
				dst.SetColored(x0+x*cellWidth, y0+y, '·', core.ColorGray)
			}
		}
	}

	phase := g.session.Phase()
	if phase != PhaseRunning && phase != PhasePaused {
		return
	}
	active := g.session.Active()
	for _, c := range active.Cells() {
		if c.Y < 0 || c.Y >= board.Rows() {
			continue
		}
		drawCell(dst, x0+c.X*cellWidth, y0+c.Y, active.Color)
	}
}

// renderPanel draws the next preview, counters and controls.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	row := y
	if g.showNext {
		dst.DrawText(x, row, "NEXT")
		row++
		if g.session.Phase() != PhaseNotStarted {
			next := g.session.Next()
			for _, c := range next.Cells() {
				drawCell(dst, x+(c.X-next.X)*cellWidth, row+1+c.Y-next.Y, next.Color)
			}
		}
		row += 4
	}

	stats := []struct {
		label string
		value int
	}{
		{"SCORE", g.session.Score()},
		{"LEVEL", g.session.Level()},
		{"LINES", g.session.Lines()},
		{"GOAL", g.session.Tunables().WinScore},
	}
	for _, s := range stats {
		dst.DrawText(x, row, s.label)
		dst.DrawTextColored(x+6, row, fmt.Sprintf("%d", s.value), core.ColorYellow)
		row++
	}

	if g.session.SoftDrop() {
		dst.DrawTextColored(x, row, "FAST DROP", core.ColorOrange)
	}
	row += 2

	controls := []string{
		"←/→  move",
		"↑/x  rotate",
		"↓    drop",
		"p    pause",
		"m    mute",
		"q    quit",
	}
	for _, line := range controls {
		dst.DrawTextColored(x, row, line, core.ColorGray)
		row++
	}
}

// renderOverlays draws start, pause and game over messages over the board.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	var lines []string
	color := core.ColorWhite
	switch g.session.Phase() {
	case PhaseNotStarted:
		lines = []string{"PRESS ENTER", "TO START", "", fmt.Sprintf("Reach %d", g.session.Tunables().WinScore), "to win a coupon"}
	case PhasePaused:
		lines = []string{"PAUSED", "", "P to resume"}
	case PhaseOver:
		if g.session.Outcome() == OutcomeWin {
			lines = []string{"YOU WIN!", fmt.Sprintf("Score %d", g.session.Score()), "", "R to play again"}
			color = core.ColorGreen
		} else {
			lines = []string{"GAME OVER", fmt.Sprintf("Score %d", g.session.Score()), "", "R to play again"}
			color = core.ColorRed
		}
	default:
		return
	}

	top := boardY + (boardH-len(lines))/2
	inner := boardW - 2
	for i, line := range lines {
		n := len([]rune(line))
		x := boardX + 1 + (inner-n)/2
		dst.DrawHLine(boardX+1, top+i, inner, ' ')
		dst.DrawTextColored(x, top+i, line, color)
	}
}
