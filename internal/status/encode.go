// internal/status/encode.go
package status

import "fmt"

// Encode renders a Snapshot as a single operator-facing line.
// No IO. No side effects.
func Encode(s Snapshot) string {
	return fmt.Sprintf(
		"state=%s sent=%d received=%d suppressed=%d decode_errors=%d reconnects=%d triggered=%t",
		s.State,
		s.Sent,
		s.Received,
		s.Suppressed,
		s.DecodeErrors,
		s.Reconnects,
		s.Triggered,
	)
}
