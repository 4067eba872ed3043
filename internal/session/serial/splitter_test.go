// internal/session/serial/splitter_test.go
package serial

import (
	"bytes"
	"testing"
)

func feed(s *splitter, in []byte) []token {
	var out []token
	for _, b := range in {
		if tok := s.push(b); tok.kind != tokenNone {
			out = append(out, tok)
		}
	}
	return out
}

func TestSplitter_FramesAndDebug(t *testing.T) {
	var in []byte
	in = append(in, 0x00, 'a', '[', 'b', 0x00)
	in = append(in, "[DEBUG] motor ready\n"...)
	in = append(in, 'c', 'd', 0x00)

	toks := feed(newSplitter(), in)
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %+v", len(toks), toks)
	}
	if toks[0].kind != tokenFrame || string(toks[0].frame) != "a[b" {
		t.Fatalf("tok0=%+v", toks[0])
	}
	if toks[1].kind != tokenDebug || toks[1].line != "motor ready" {
		t.Fatalf("tok1=%+v", toks[1])
	}
	if toks[2].kind != tokenFrame || string(toks[2].frame) != "cd" {
		t.Fatalf("tok2=%+v", toks[2])
	}
}

func TestSplitter_PartialMarkerReplayed(t *testing.T) {
	in := []byte{0x00}
	in = append(in, "[DEBx"...)
	in = append(in, 0x00)

	toks := feed(newSplitter(), in)
	if len(toks) != 1 || string(toks[0].frame) != "[DEBx" {
		t.Fatalf("toks=%+v", toks)
	}
}

func TestSplitter_DropsBytesBeforeFirstDelimiter(t *testing.T) {
	toks := feed(newSplitter(), []byte{0x31, 0x32, 0x00, 0x41, 0x00})
	if len(toks) != 1 || string(toks[0].frame) != "A" {
		t.Fatalf("toks=%+v", toks)
	}
}

func TestSplitter_EscAbortsDebugLine(t *testing.T) {
	in := []byte("[DEBUG] half")
	in = append(in, esc, 0x00, 'z', 0x00)

	toks := feed(newSplitter(), in)
	if len(toks) != 1 || toks[0].kind != tokenFrame || string(toks[0].frame) != "z" {
		t.Fatalf("toks=%+v", toks)
	}
}

func TestSplitter_OversizedFrameDiscarded(t *testing.T) {
	s := newSplitter()
	in := []byte{0x00}
	in = append(in, bytes.Repeat([]byte{0x22}, MaxFrameLen+10)...)
	in = append(in, 0x00, 0x33, 0x00)

	toks := feed(s, in)
	if len(toks) != 2 || toks[0].kind != tokenOverflow {
		t.Fatalf("toks=%+v", toks)
	}
	if toks[1].kind != tokenFrame || string(toks[1].frame) != "3" {
		t.Fatalf("tok1=%+v", toks[1])
	}
}
