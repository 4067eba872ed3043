// internal/relay/builder.go
package relay

import (
	"io"

	"github.com/tamzrod/giga-relay/internal/config"
	"github.com/tamzrod/giga-relay/internal/mirror"
	"github.com/tamzrod/giga-relay/internal/session"
	"github.com/tamzrod/giga-relay/internal/session/serial"
)

// Build constructs a Supervisor from a validated, normalized config.
// The device is not opened here: the session task makes the first attempt
// and an unavailable port is a recoverable state, not a startup failure.
// The returned closer releases the mirror connection.
func Build(cfg *config.Config, in io.Reader, out io.Writer) (*Supervisor, func() error, error) {
	r := cfg.Relay

	// opener: ONE attempt per call
	opener := serial.NewOpener(r.Serial.BaudRate, r.Log.ShowBytes)

	var m session.Mirror
	closer := func() error { return nil }

	if r.Mirror.Broker != "" {
		mq, err := mirror.Dial(mirror.Config{
			Broker:      r.Mirror.Broker,
			TopicPrefix: r.Mirror.TopicPrefix,
			ClientID:    r.Mirror.ClientID,
		})
		if err != nil {
			return nil, nil, err
		}
		m = mq
		closer = func() error {
			mq.Close()
			return nil
		}
	}

	sup, err := NewSupervisor(
		Settings{
			Port:              r.Serial.Port,
			Timeout:           r.Serial.Timeout(),
			RetryInterval:     r.Session.RetryInterval(),
			TelemetryInterval: r.Display.TelemetryInterval(),
		},
		opener,
		m,
		in,
		out,
	)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}

	return sup, closer, nil
}
