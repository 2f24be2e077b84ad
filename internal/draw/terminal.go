package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// maxChunkSize keeps each write under a typical MTU so frames stream smoothly over SSH.
const maxChunkSize = 1400

// Control sequences for whole-screen operations.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
)

// appendCursor appends the sequence that moves the cursor to a 1-based terminal cell.
func appendCursor(buf []byte, col, row int) []byte {
	buf = append(buf, "\033["...)
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	return append(buf, 'H')
}

// writeChunks writes data to w in pieces of at most maxChunkSize bytes.
func writeChunks(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// ChunkWriter collects one frame of text overlay and canvas output, then sends it
// in MTU-sized chunks on Flush. Positions are 1-based canvas cells; the offset
// of the centered render area is added automatically.
type ChunkWriter struct {
	buf    []byte
	out    *bufio.Writer
	offCol int
	offRow int
}

var _ io.Writer = (*ChunkWriter)(nil)

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		buf:    make([]byte, 0, 8192),
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the render area offset, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// Write appends raw bytes, typically canvas output that already carries absolute positions.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.buf = append(cw.buf, p...)
	return len(p), nil
}

// WriteString appends s unpositioned.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf = append(cw.buf, s...)
}

// WriteAt appends s starting at canvas cell (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.buf = appendCursor(cw.buf, col+cw.offCol, row+cw.offRow)
	cw.buf = append(cw.buf, s...)
}

// Flush sends the frame and empties the buffer.
func (cw *ChunkWriter) Flush() error {
	err := writeChunks(cw.out, cw.buf)
	cw.buf = cw.buf[:0]
	if err != nil {
		return err
	}
	return cw.out.Flush()
}

// TermSizeFunc reports the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the process's own terminal.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	_, _ = io.WriteString(w, seqClear)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	_, _ = io.WriteString(w, seqHideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	_, _ = io.WriteString(w, seqShowCursor)
}
