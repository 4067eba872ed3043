// internal/display/limiter_test.go
package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/tamzrod/giga-relay/internal/command"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func giga() command.DeviceMessage {
	return command.DeviceMessage{Action: command.ActionGiga, Kind: command.KindMotor}
}

func reply() command.DeviceMessage {
	return command.DeviceMessage{Action: command.ActionSend, Kind: command.KindAck}
}

func TestLimiter_TelemetryOncePerWindow(t *testing.T) {
	const (
		n        = 50
		spacing  = 10 * time.Millisecond
		interval = 100 * time.Millisecond
	)

	l := NewLimiter(interval)

	emitted := 0
	for i := 0; i < n; i++ {
		if l.Allow(giga(), epoch.Add(time.Duration(i)*spacing)) {
			emitted++
		}
	}

	elapsed := time.Duration(n) * spacing
	want := int((elapsed + interval - 1) / interval) // ceil(elapsed/interval)
	if emitted != want {
		t.Fatalf("emitted %d telemetry messages, want %d", emitted, want)
	}
}

func TestLimiter_RepliesNeverSuppressed(t *testing.T) {
	l := NewLimiter(time.Second)

	emitted := 0
	for i := 0; i < 50; i++ {
		now := epoch.Add(time.Duration(i) * time.Millisecond)
		// interleave telemetry so the window is always "hot"
		l.Allow(giga(), now)
		if l.Allow(reply(), now) {
			emitted++
		}
	}
	if emitted != 50 {
		t.Fatalf("replies emitted=%d want 50", emitted)
	}
}

func TestLimiter_ZeroIntervalShowsAll(t *testing.T) {
	l := NewLimiter(0)
	for i := 0; i < 20; i++ {
		if !l.Allow(giga(), epoch) {
			t.Fatalf("message %d suppressed with zero interval", i)
		}
	}
}

func TestLimiter_SuppressedDoesNotMoveWindow(t *testing.T) {
	l := NewLimiter(100 * time.Millisecond)

	if !l.Allow(giga(), epoch) {
		t.Fatalf("first telemetry must pass")
	}
	if l.Allow(giga(), epoch.Add(90*time.Millisecond)) {
		t.Fatalf("message inside window passed")
	}
	// 100ms after the last *emitted* message, not the last suppressed one
	if !l.Allow(giga(), epoch.Add(100*time.Millisecond)) {
		t.Fatalf("window did not reopen at interval boundary")
	}
}

func TestPrinter_NAckShowsDeviceCode(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Message(command.DeviceMessage{
		Action:  command.ActionSend,
		Kind:    command.KindNAck,
		Payload: map[string]any{"code": uint64(1005)},
	})

	out := buf.String()
	if !strings.Contains(out, "NAck") || !strings.Contains(out, "1005 CRCError") {
		t.Fatalf("unexpected output %q", out)
	}
}
