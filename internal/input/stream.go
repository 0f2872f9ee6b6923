package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last byte.
// Terminals only report presses, so holding relies on key repeat.
const keyHoldDuration = 100 * time.Millisecond

const ctrlC = 0x03

// Stream delivers terminal input bytes via a channel and tracks per-key
// timestamps so that simultaneous keys can be detected.
type Stream struct {
	ch      chan byte
	scheme  Scheme
	seen    map[string]time.Time
	last    time.Time // Last byte of any kind
	pending []byte    // Incomplete escape sequence from the previous read
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader, scheme Scheme) *Stream {
	s := newStream(scheme)
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream(scheme Scheme) *Stream {
	return &Stream{
		ch:     make(chan byte, 128),
		scheme: scheme,
		seen:   make(map[string]time.Time),
	}
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// returns the keys held at this instant.
func ReadInput(s *Stream) State {
	now := time.Now()
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	s.apply(buf, now)
	st := s.state(now)
	if s.closed {
		st.Quit = true
	}
	return st
}

// apply records the keys in buf as seen at now.
func (s *Stream) apply(buf []byte, now time.Time) {
	if len(s.pending) > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		s.last = now

		if b == '\x1b' {
			// CSI sequence: ESC [ <code>, possibly split across reads.
			if i+1 == len(buf) || (i+2 == len(buf) && buf[i+1] == '[') {
				s.pending = append(s.pending, buf[i:]...)
				return
			}
			if buf[i+1] == '[' {
				if name, ok := arrowKey(buf[i+2]); ok {
					s.seen[name] = now
				}
				i += 2
			}
			continue
		}

		if name, ok := byteKey(b); ok {
			s.seen[name] = now
		}
	}
}

// state reports keys seen within the hold window.
func (s *Stream) state(now time.Time) State {
	held := func(name string) bool {
		t, ok := s.seen[name]
		return ok && now.Sub(t) < keyHoldDuration
	}
	anyKey := !s.last.IsZero() && now.Sub(s.last) < keyHoldDuration
	return s.scheme.Resolve(held, anyKey)
}

func arrowKey(code byte) (string, bool) {
	switch code {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	}
	return "", false
}

func byteKey(b byte) (string, bool) {
	switch b {
	case 'q', 'Q', ctrlC:
		return KeyQuit, true
	case 'w', 'W':
		return KeyW, true
	case 'a', 'A':
		return KeyA, true
	case 's', 'S':
		return KeyS, true
	case 'd', 'D':
		return KeyD, true
	case ' ':
		return KeySpace, true
	}
	return "", false
}
