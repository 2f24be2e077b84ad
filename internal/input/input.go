// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"sync"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report repeats, so holding a key shows up as a burst of presses.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit      bool
	Left      bool
	Right     bool
	Up        bool
	Down      bool
	Space     bool
	Enter     bool
	Backspace bool
	Escape    bool
	Pressed   []byte
}

// Any reports whether any byte arrived this frame.
func (in Input) Any() bool {
	return len(in.Pressed) > 0
}

// key identifies a tracked key.
type key int

const (
	keyQuit key = iota
	keyLeft
	keyRight
	keyUp
	keyDown
	keySpace
	keyEnter
	keyBackspace
	keyEscape
	numKeys
)

// byteKeys maps single bytes to keys. Vim and WASD layouts both move.
var byteKeys = map[byte]key{
	'q': keyQuit, 'Q': keyQuit,
	'a': keyLeft, 'A': keyLeft, 'h': keyLeft, 'H': keyLeft,
	'd': keyRight, 'D': keyRight, 'l': keyRight, 'L': keyRight,
	'w': keyUp, 'W': keyUp, 'k': keyUp, 'K': keyUp,
	's': keyDown, 'S': keyDown, 'j': keyDown, 'J': keyDown,
	' ': keySpace,
	'\r': keyEnter, '\n': keyEnter,
	'\b': keyBackspace, 0x7f: keyBackspace,
	0x1b: keyEscape,
}

// arrowKeys maps the final byte of an ESC [ sequence to a key.
var arrowKeys = map[byte]key{'A': keyUp, 'B': keyDown, 'C': keyRight, 'D': keyLeft}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	pressed [numKeys]time.Time // Last press per key
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r fails or Close is called.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:   make(chan byte, 128),
		now:  time.Now,
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Close stops forwarding bytes. A reader blocked in ReadByte exits on its next byte.
func (s *Stream) Close() {
	s.once.Do(func() { close(s.done) })
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Key state persists for keyHoldDuration so held keys read as continuously pressed.
func ReadInput(s *Stream) Input {
	now := s.now()
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.parse(buf, now)
}

func (s *Stream) parse(buf []byte, now time.Time) Input {
	for i := 0; i < len(buf); i++ {
		if buf[i] == 0x1b && i+2 < len(buf) && buf[i+1] == '[' {
			if k, ok := arrowKeys[buf[i+2]]; ok {
				s.pressed[k] = now
			}
			i += 2
			continue
		}
		if k, ok := byteKeys[buf[i]]; ok {
			s.pressed[k] = now
		}
	}

	held := func(k key) bool { return now.Sub(s.pressed[k]) < keyHoldDuration }

	return Input{
		Quit:      held(keyQuit),
		Left:      held(keyLeft),
		Right:     held(keyRight),
		Up:        held(keyUp),
		Down:      held(keyDown),
		Space:     held(keySpace),
		Enter:     held(keyEnter),
		Backspace: held(keyBackspace),
		Escape:    held(keyEscape),
		Pressed:   buf,
	}
}

// EditLine applies the bytes typed this frame to line: printable ASCII is appended up to
// maxLen characters, backspace removes the last one. Escape sequences are skipped.
func EditLine(line string, pressed []byte, maxLen int) string {
	out := []byte(line)
	for i := 0; i < len(pressed); i++ {
		b := pressed[i]
		switch {
		case b == '\x1b':
			if i+2 < len(pressed) && pressed[i+1] == '[' {
				i += 2
			}
		case b == '\b' || b == 0x7f:
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case b >= 0x20 && b < 0x7f:
			if len(out) < maxLen {
				out = append(out, b)
			}
		}
	}
	return string(out)
}

// ResetKeyInput forgets every held key, e.g. when switching screens.
func ResetKeyInput(s *Stream) {
	s.pressed = [numKeys]time.Time{}
}
