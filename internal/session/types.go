// internal/session/types.go
package session

import (
	"errors"
	"time"

	"github.com/tamzrod/giga-relay/internal/command"
)

// Transport error taxonomy. Links wrap these so callers can use errors.Is.
var (
	// ErrNoData: the read timed out with no complete message. Not a failure.
	ErrNoData = errors.New("session: no data")

	// ErrLinkLost: the link is gone; the handle must be discarded.
	ErrLinkLost = errors.New("session: link lost")

	// ErrDecode: a frame arrived but could not be decoded. The link is still usable.
	ErrDecode = errors.New("session: decode failed")
)

// Opener creates a fresh link. ONE attempt per call, no retries.
type Opener interface {
	Open(port string, timeout time.Duration) (Link, error)
}

// Link is one live device session. Handles are never reused:
// after Close (or any link loss) the task asks the Opener for a new one.
type Link interface {
	// Send errors wrapping ErrLinkLost keep the command for resend after
	// the next open; any other error drops it.
	Send(cmd command.Command) error

	// Receive returns at most one message per call and blocks no longer
	// than the read timeout given to Open.
	Receive() (command.DeviceMessage, error)

	Close() error
}

// Output is where operator-visible lines go.
type Output interface {
	Message(msg command.DeviceMessage)
	Notice(format string, args ...any)
}

// Mirror receives a copy of every decoded message and connectivity changes.
// Implementations must not block.
type Mirror interface {
	Publish(msg command.DeviceMessage)
	SetOnline(online bool)
}

type noMirror struct{}

func (noMirror) Publish(command.DeviceMessage) {}
func (noMirror) SetOnline(bool)                {}

// Config is the minimal runtime config the session task needs.
type Config struct {
	Port    string
	Timeout time.Duration

	// RetryInterval > 0 enables automatic reopen attempts while disconnected.
	// 0 means only an operator reconnect request triggers a new attempt.
	RetryInterval time.Duration

	// IdleTick bounds how long the task sleeps while disconnected before
	// re-checking the shutdown flag. Defaults to Timeout.
	IdleTick time.Duration
}
