package tetris

import (
	"strings"

	"github.com/outwit/tetris-challenge/internal/core"
)

// Shape is a binary occupancy matrix indexed [row][col].
type Shape [][]bool

// ParseShape builds a shape from rows of '#' (filled) and '.' (empty).
func ParseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, ch := range row {
			s[y][x] = ch == '#'
		}
	}
	return s
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Width returns the number of columns of the widest row.
func (s Shape) Width() int {
	w := 0
	for _, row := range s {
		w = max(w, len(row))
	}
	return w
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for y := range s {
		out[y] = append([]bool(nil), s[y]...)
	}
	return out
}

// Equal reports cell-for-cell equality.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(o[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// Rotate returns the shape turned 90° clockwise:
// out[i][j] = s[h-1-j][i].
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for i := range w {
		out[i] = make([]bool, h)
		for j := range h {
			if i < len(s[h-1-j]) {
				out[i][j] = s[h-1-j][i]
			}
		}
	}
	return out
}

// String renders the shape with '#' and '.'; rows are separated by '/'.
func (s Shape) String() string {
	rows := make([]string, len(s))
	for y, row := range s {
		var sb strings.Builder
		for _, filled := range row {
			if filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return strings.Join(rows, "/")
}

// Piece is a tetromino at a board position. X, Y is the top-left corner
// of its shape matrix. Pieces are values: transforms return new pieces.
type Piece struct {
	Kind  Kind
	Shape Shape
	Color core.Color
	X, Y  int
}

// Translate returns the piece moved by (dx, dy).
func (p Piece) Translate(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotate returns the piece with its shape turned clockwise. Position and
// color are kept; the result is not validated.
func (p Piece) Rotate() Piece {
	p.Shape = p.Shape.Rotate()
	return p
}

// Cells returns the board coordinates of every occupied cell.
func (p Piece) Cells() []core.Point {
	cells := make([]core.Point, 0, 4)
	for y, row := range p.Shape {
		for x, filled := range row {
			if filled {
				cells = append(cells, core.Point{X: p.X + x, Y: p.Y + y})
			}
		}
	}
	return cells
}

// Width returns the width of the current shape.
func (p Piece) Width() int {
	return p.Shape.Width()
}

// Height returns the height of the current shape.
func (p Piece) Height() int {
	return p.Shape.Height()
}

// Clone returns a copy that shares no memory with p.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}
