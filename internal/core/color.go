package core

// Color tags a screen cell or a locked board cell.
// ColorDefault doubles as "empty" on the board.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

var colorNames = [...]string{
	ColorDefault: "empty",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
	ColorBlue:    "blue",
	ColorMagenta: "purple",
	ColorCyan:    "cyan",
	ColorWhite:   "white",
	ColorOrange:  "orange",
	ColorGray:    "gray",
}

// String returns the display name of the color.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// Glyph returns a single-letter tag for the color, used by text dumps of the board.
func (c Color) Glyph() rune {
	if c == ColorDefault {
		return '.'
	}
	name := c.String()
	return rune(name[0] - 'a' + 'A')
}
