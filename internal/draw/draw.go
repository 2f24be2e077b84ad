// Package draw renders to ANSI terminals: a half-block pixel canvas plus buffered,
// chunked text output suited to SSH sessions.
package draw

// Point represents a 2D coordinate in logical canvas space.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Ink is the color a canvas pixel is drawn in. InkNone is an empty pixel.
type Ink uint8

const (
	InkNone Ink = iota
	InkWhite
	InkGray
	InkCyan
	InkRed
)

// inkFG holds the SGR foreground code per ink; the background code is 10 higher.
var inkFG = [...]int{
	InkNone:  39,
	InkWhite: 97,
	InkGray:  90,
	InkCyan:  96,
	InkRed:   91,
}

// ANSI SGR sequences used by text overlays.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorRed        = "\033[31m"
	ColorYellow     = "\033[33m"
	ColorBrightCyan = "\033[96m"
)

// Colorize wraps s in the given color and a reset.
func Colorize(color, s string) string {
	return color + s + ColorReset
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
