// internal/session/serial/splitter.go
package serial

import "bytes"

var debugMarker = []byte("[DEBUG]")

const (
	esc            = 0x1b
	maxDebugLine   = 256
	frameDelimiter = 0x00
)

type tokenKind uint8

const (
	tokenNone tokenKind = iota
	tokenFrame
	tokenDebug
	tokenOverflow
)

// token is what one byte may complete: a stuffed frame, a debug line, or
// the report of a frame dropped for length.
type token struct {
	kind  tokenKind
	frame []byte
	line  string
}

type splitState uint8

const (
	stateFrame splitState = iota
	stateMarker
	stateDebug
)

// splitter separates "[DEBUG] ..." text lines from 0x00 delimited frames.
// Bytes seen before the first delimiter belong to a frame whose start
// was missed and are dropped.
type splitter struct {
	state   splitState
	matched int

	synced bool
	buf    []byte

	line []byte
}

func newSplitter() *splitter {
	return &splitter{buf: make([]byte, 0, MaxFrameLen)}
}

// push feeds one byte. At most one token completes per byte.
func (s *splitter) push(b byte) token {
	switch s.state {
	case stateMarker:
		if b == debugMarker[s.matched] {
			s.matched++
			if s.matched == len(debugMarker) {
				s.state = stateDebug
				s.line = s.line[:0]
			}
			return token{}
		}
		// not a marker after all: replay the prefix as frame bytes
		n := s.matched
		s.state = stateFrame
		s.matched = 0
		for _, p := range debugMarker[:n] {
			s.frameByte(p)
		}
		return s.normal(b)

	case stateDebug:
		switch {
		case b == '\n' || b == '\r':
			s.state = stateFrame
			line := bytes.TrimSpace(s.line)
			if len(line) == 0 {
				return token{}
			}
			return token{kind: tokenDebug, line: string(line)}
		case b == esc:
			s.state = stateFrame
			s.line = s.line[:0]
		case b >= 0x20 && b <= 0x7e && len(s.line) < maxDebugLine:
			s.line = append(s.line, b)
		}
		return token{}

	default:
		return s.normal(b)
	}
}

func (s *splitter) normal(b byte) token {
	if b == debugMarker[0] {
		s.state = stateMarker
		s.matched = 1
		return token{}
	}
	return s.frameByte(b)
}

func (s *splitter) frameByte(b byte) token {
	if b == frameDelimiter {
		wasSynced := s.synced
		s.synced = true
		if !wasSynced || len(s.buf) == 0 {
			s.buf = s.buf[:0]
			return token{}
		}
		out := append([]byte(nil), s.buf...)
		s.buf = s.buf[:0]
		return token{kind: tokenFrame, frame: out}
	}

	if !s.synced {
		return token{}
	}
	if len(s.buf) >= MaxFrameLen {
		// oversized: drop it and resync on the next delimiter
		s.buf = s.buf[:0]
		s.synced = false
		return token{kind: tokenOverflow}
	}
	s.buf = append(s.buf, b)
	return token{}
}
