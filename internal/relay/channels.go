// internal/relay/channels.go
package relay

import (
	"github.com/tamzrod/giga-relay/internal/command"
	"github.com/tamzrod/giga-relay/internal/session"
)

// QueueCapacity bounds both channels. A full command queue blocks the
// input task; that is the only backpressure in the relay.
const QueueCapacity = 128

// Channels are the two bounded queues between the input task and the
// session task. Input pushes, the session task drains.
type Channels struct {
	Commands  chan command.Command
	Reconnect chan struct{}
}

func NewChannels() Channels {
	return Channels{
		Commands:  make(chan command.Command, QueueCapacity),
		Reconnect: make(chan struct{}, QueueCapacity),
	}
}

// Session returns the receive-only view handed to the session task.
func (c Channels) Session() session.Channels {
	return session.Channels{
		Commands:  c.Commands,
		Reconnect: c.Reconnect,
	}
}
