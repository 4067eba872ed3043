// internal/display/limiter.go
package display

import (
	"time"

	"github.com/tamzrod/giga-relay/internal/command"
)

// Limiter throttles Giga telemetry on the operator's screen.
// Everything else passes: replies map 1:1 to operator actions.
//
// Not safe for concurrent use. The session task owns it.
type Limiter struct {
	interval time.Duration

	emitted  bool
	lastEmit time.Time
}

// NewLimiter builds a limiter. interval <= 0 shows every message.
func NewLimiter(interval time.Duration) *Limiter {
	if interval < 0 {
		interval = 0
	}
	return &Limiter{interval: interval}
}

// Allow decides whether msg is shown now.
// lastEmit only moves when Allow returns true; suppressed telemetry is dropped, not queued.
func (l *Limiter) Allow(msg command.DeviceMessage, now time.Time) bool {
	if !msg.IsTelemetry() {
		return true
	}

	if l.emitted && now.Sub(l.lastEmit) < l.interval {
		return false
	}

	l.emitted = true
	l.lastEmit = now
	return true
}
