package tetris

import (
	"math/rand"

	"github.com/outwit/tetris-challenge/internal/core"
)

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindL
	KindJ
	KindT
	KindO
	KindS
	KindZ
)

// kindCount is the number of tetromino kinds.
const kindCount = 7

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindL:
		return "L"
	case KindJ:
		return "J"
	case KindT:
		return "T"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	default:
		return "?"
	}
}

// PieceSpec is the static definition of a kind: base matrix and color.
type PieceSpec struct {
	Shape Shape
	Color core.Color
}

// catalog holds the base matrices. Never hand these out directly.
var catalog = [kindCount]struct {
	rows  []string
	color core.Color
}{
	KindI: {[]string{"####"}, core.ColorCyan},
	KindL: {[]string{"..#", "###"}, core.ColorOrange},
	KindJ: {[]string{"#..", "###"}, core.ColorBlue},
	KindT: {[]string{".#.", "###"}, core.ColorMagenta},
	KindO: {[]string{"##", "##"}, core.ColorYellow},
	KindS: {[]string{".##", "##."}, core.ColorGreen},
	KindZ: {[]string{"##.", ".##"}, core.ColorRed},
}

// Kinds returns all kinds in catalog order.
func Kinds() []Kind {
	return []Kind{KindI, KindL, KindJ, KindT, KindO, KindS, KindZ}
}

// Catalog returns the seven piece definitions. Each call builds fresh
// matrices, so callers may modify the result freely.
func Catalog() map[Kind]PieceSpec {
	out := make(map[Kind]PieceSpec, kindCount)
	for _, k := range Kinds() {
		out[k] = specFor(k)
	}
	return out
}

func specFor(k Kind) PieceSpec {
	if k < 0 || int(k) >= kindCount {
		k = KindO
	}
	def := catalog[k]
	return PieceSpec{Shape: ParseShape(def.rows...), Color: def.color}
}

// NewPiece creates a piece of the given kind, centered horizontally on a
// board with cols columns, at the top row.
func NewPiece(kind Kind, cols int) Piece {
	spec := specFor(kind)
	return Piece{
		Kind:  kind,
		Shape: spec.Shape,
		Color: spec.Color,
		X:     cols/2 - spec.Shape.Width()/2,
		Y:     0,
	}
}

// RandomPiece picks a kind uniformly using rng and spawns it.
func RandomPiece(rng *rand.Rand, cols int) Piece {
	return NewPiece(Kind(rng.Intn(kindCount)), cols)
}
