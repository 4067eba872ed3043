// internal/status/constants.go
package status

// State is one node of the device session state machine.
//
//	Disconnected -> Connecting -> Connected -> Disconnected (on error)
//	any -> Closing -> Terminated (on shutdown)
type State uint16

const (
	// StateDisconnected: no link; waiting for a reconnect request or retry tick.
	StateDisconnected State = iota

	// StateConnecting: one open attempt is in progress.
	StateConnecting

	// StateConnected: link is live; commands flow, messages are read.
	StateConnected

	// StateClosing: shutdown observed, link being torn down.
	StateClosing

	// StateTerminated: the session task has returned.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosing:
		return "closing"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
