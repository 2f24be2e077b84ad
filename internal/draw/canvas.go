package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// cell is what one terminal cell shows. The zero cell means "unknown" and never
// matches a rendered cell, so it forces a repaint.
type cell struct {
	ch     rune
	fg, bg Ink
}

// Canvas is a pixel buffer with two pixels per terminal cell, stacked vertically and
// drawn with half blocks. Drawing happens in a logical coordinate space that is scaled
// to the terminal, and Render only sends cells that changed since the previous frame.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int    // termHeight * 2
	pixels         []Ink  // [y*termWidth + x]
	cells          []cell // Last frame as shown on the terminal
	ink            Ink    // Pen for subsequent drawing

	logicalWidth  float64
	logicalHeight float64 // In sub-pixels
	scaleX        float64
	scaleY        float64

	// 0-based offset of the render area inside a larger terminal
	offsetCol int
	offsetRow int

	out             []byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewCanvas creates an unscaled canvas of width x height cells.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas of termWidth x termHeight cells onto which a
// logicalWidth x logicalHeight space is drawn.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		ink:           InkWhite,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize changes the cell dimensions and keeps the logical space.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Ink, c.subPixelHeight*termWidth)
		c.cells = make([]cell, termHeight*termWidth)
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset places the canvas at (col+1, row+1) of the terminal.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset of the render area.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset of the render area.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// SetInk selects the color used by subsequent drawing calls.
func (c *Canvas) SetInk(ink Ink) {
	c.ink = ink
}

// Clear empties every pixel. The terminal keeps its contents until the next Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render repaint every cell, e.g. after the terminal was cleared.
func (c *Canvas) ForceRedraw() {
	clear(c.cells)
}

// MarkTextDirty records that text covered n cells from the 1-based (col, row), so the
// next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	y := row - 1
	if y < 0 || y >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < col-1+n && x < c.termWidth; x++ {
		c.cells[y*c.termWidth+x] = cell{}
	}
}

// plot sets one sub-pixel in the current ink; points outside are dropped.
func (c *Canvas) plot(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = c.ink
	}
}

// cellAt folds the two sub-pixels of a cell into the glyph and colors that show them.
func (c *Canvas) cellAt(col, row int) cell {
	top := c.pixels[2*row*c.termWidth+col]
	bottom := c.pixels[(2*row+1)*c.termWidth+col]
	switch {
	case top == InkNone && bottom == InkNone:
		return cell{ch: ' '}
	case top == bottom:
		return cell{ch: BlockFull, fg: top}
	case bottom == InkNone:
		return cell{ch: BlockUpperHalf, fg: top}
	case top == InkNone:
		return cell{ch: BlockLowerHalf, fg: bottom}
	default:
		return cell{ch: BlockUpperHalf, fg: top, bg: bottom}
	}
}

func appendSGR(buf []byte, fg, bg Ink) []byte {
	buf = append(buf, "\033["...)
	buf = strconv.AppendInt(buf, int64(inkFG[fg]), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(inkFG[bg]+10), 10)
	return append(buf, 'm')
}

// Render writes the cells that changed since the previous Render. Cursor moves are
// skipped for runs of adjacent cells and colors are only sent when they change.
func (c *Canvas) Render(w io.Writer) error {
	out := c.out[:0]
	var pen cell
	styled := false
	nextCol, nextRow := -1, -1

	for row, rows := 0, c.termHeight; row < rows; row++ {
		for col, cols := 0, c.termWidth; col < cols; col++ {
			i := row*c.termWidth + col
			cur := c.cellAt(col, row)
			if c.cells[i] == cur {
				continue
			}
			c.cells[i] = cur

			if col != nextCol || row != nextRow {
				out = appendCursor(out, col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if cur.fg != pen.fg || cur.bg != pen.bg {
				out = appendSGR(out, cur.fg, cur.bg)
				pen = cur
				styled = true
			}
			out = utf8.AppendRune(out, cur.ch)
			nextCol, nextRow = col+1, row
		}
	}
	if styled {
		out = append(out, ColorReset...)
	}

	c.out = out
	return writeChunks(w, out)
}

// RenderBorder frames the render area when the terminal is larger than it: top and
// bottom bars need a row offset, side bars need a column offset, corners need both.
func (c *Canvas) RenderBorder(w io.Writer) error {
	sides := c.offsetCol >= 1
	bars := c.offsetRow >= 1
	if !sides && !bars {
		return nil
	}

	left, right := c.offsetCol, c.offsetCol+c.termWidth+1
	top, bottom := c.offsetRow, c.offsetRow+c.termHeight+1
	var buf []byte

	if bars {
		line := strings.Repeat("─", c.termWidth)
		edges := [...]struct {
			row         int
			first, last string
		}{{top, "┌", "┐"}, {bottom, "└", "┘"}}
		for _, e := range edges {
			if sides {
				buf = appendCursor(buf, left, e.row)
				buf = append(buf, e.first+line+e.last...)
			} else {
				buf = appendCursor(buf, left+1, e.row)
				buf = append(buf, line...)
			}
		}
	}

	if sides {
		for row := top + 1; row < bottom; row++ {
			buf = appendCursor(buf, left, row)
			buf = append(buf, "│"...)
			buf = appendCursor(buf, right, row)
			buf = append(buf, "│"...)
		}
	}
	return writeChunks(w, buf)
}

// LogicalWidth returns the width of the logical space.
func (c *Canvas) LogicalWidth() float64 { return c.logicalWidth }

// LogicalHeight returns the height of the logical space, in sub-pixels.
func (c *Canvas) LogicalHeight() float64 { return c.logicalHeight }

// TerminalWidth returns the canvas width in cells.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the canvas height in cells.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// LogicalToTerminal maps a logical point to the 1-based cell that shows it.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}
