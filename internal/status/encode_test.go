// internal/status/encode_test.go
package status

import "testing"

func TestEncode(t *testing.T) {
	s := Snapshot{
		State:        StateConnected,
		Sent:         3,
		Received:     10,
		Suppressed:   7,
		DecodeErrors: 1,
		Reconnects:   2,
		Triggered:    true,
	}

	want := "state=connected sent=3 received=10 suppressed=7 decode_errors=1 reconnects=2 triggered=true"
	if got := Encode(s); got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestStateString_Unknown(t *testing.T) {
	if got := State(99).String(); got != "unknown" {
		t.Fatalf("got %q", got)
	}
}
