// internal/command/command.go
package command

import (
	"encoding/json"
	"fmt"
)

// Command is one operator-issued unit bound for the device.
type Command struct {
	Action  Action
	Kind    Kind
	Payload Payload
}

func (c Command) String() string {
	return fmt.Sprintf("%s %s (%d entries)", c.Action, c.Kind, c.Payload.Len())
}

// MarshalJSON emits the same shape the operator types in.
func (c Command) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Action  string  `json:"action"`
		Kind    string  `json:"cmd"`
		Payload Payload `json:"payload"`
	}{
		Action:  c.Action.String(),
		Kind:    c.Kind.String(),
		Payload: c.Payload,
	})
}

// DeviceMessage is one decoded inbound frame.
// It is consumed once by the display path and then dropped.
type DeviceMessage struct {
	Action  Action
	Kind    Kind
	Payload map[string]any

	// Raw is the undecoded payload bytes as received.
	Raw []byte
}

// IsTelemetry reports whether m is device-originated Giga telemetry.
func (m DeviceMessage) IsTelemetry() bool {
	return m.Action == ActionGiga
}
