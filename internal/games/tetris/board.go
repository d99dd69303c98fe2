package tetris

import (
	"strings"

	"github.com/outwit/tetris-challenge/internal/core"
)

// Board is the grid of locked cells. core.ColorDefault marks an empty cell.
// Board values are immutable: Merge and ClearFullLines return new boards.
type Board struct {
	rows  int
	cols  int
	cells [][]core.Color
}

// NewBoard creates an empty board. Non-positive dimensions yield an
// empty 0x0 board.
func NewBoard(rows, cols int) Board {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	b := Board{rows: rows, cols: cols, cells: make([][]core.Color, rows)}
	for y := range rows {
		b.cells[y] = make([]core.Color, cols)
	}
	return b
}

// Rows returns the number of rows.
func (b Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns.
func (b Board) Cols() int {
	return b.cols
}

// At returns the cell at (x, y); out-of-range coordinates read as empty.
func (b Board) At(x, y int) core.Color {
	if x < 0 || x >= b.cols || y < 0 || y >= b.rows {
		return core.ColorDefault
	}
	return b.cells[y][x]
}

// Filled returns the number of non-empty cells.
func (b Board) Filled() int {
	n := 0
	for _, row := range b.cells {
		for _, c := range row {
			if c != core.ColorDefault {
				n++
			}
		}
	}
	return n
}

// IsValidPlacement reports whether every occupied cell of p lies in
// [0,cols) horizontally, above the floor, and over an empty board cell.
// Cells above the top edge (y < 0) are allowed.
func (b Board) IsValidPlacement(p Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= b.cols || c.Y >= b.rows {
			return false
		}
		if c.Y >= 0 && b.cells[c.Y][c.X] != core.ColorDefault {
			return false
		}
	}
	return true
}

// Merge returns a new board with p's cells written in p's color.
// Cells outside the grid are skipped.
func (b Board) Merge(p Piece) Board {
	out := b.Clone()
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= out.cols || c.Y < 0 || c.Y >= out.rows {
			continue
		}
		out.cells[c.Y][c.X] = p.Color
	}
	return out
}

// ClearFullLines removes every row with no empty cell, keeps the other
// rows in order and pads the top with empty rows. It returns the new
// board and the number of rows removed.
func (b Board) ClearFullLines() (Board, int) {
	kept := make([][]core.Color, 0, b.rows)
	for _, row := range b.cells {
		if !rowFull(row) {
			kept = append(kept, append([]core.Color(nil), row...))
		}
	}
	cleared := b.rows - len(kept)

	out := Board{rows: b.rows, cols: b.cols, cells: make([][]core.Color, 0, b.rows)}
	for range cleared {
		out.cells = append(out.cells, make([]core.Color, b.cols))
	}
	out.cells = append(out.cells, kept...)
	return out, cleared
}

func rowFull(row []core.Color) bool {
	for _, c := range row {
		if c == core.ColorDefault {
			return false
		}
	}
	return len(row) > 0
}

// Clone returns a deep copy.
func (b Board) Clone() Board {
	out := Board{rows: b.rows, cols: b.cols, cells: make([][]core.Color, b.rows)}
	for y := range b.cells {
		out.cells[y] = append([]core.Color(nil), b.cells[y]...)
	}
	return out
}

// Cells returns a copy of the grid, indexed [row][col].
func (b Board) Cells() [][]core.Color {
	return b.Clone().cells
}

// String dumps the board one row per line using color glyphs.
func (b Board) String() string {
	rows := make([]string, b.rows)
	for y, row := range b.cells {
		var sb strings.Builder
		for _, c := range row {
			sb.WriteRune(c.Glyph())
		}
		rows[y] = sb.String()
	}
	return strings.Join(rows, "\n")
}
