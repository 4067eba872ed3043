// internal/session/sensor.go
package session

import (
	"sort"

	"github.com/tamzrod/giga-relay/internal/command"
	"github.com/tamzrod/giga-relay/internal/logging"
)

// SensorTriggered reads the trigger state carried by a Sensor or SensorLow
// frame. ok is false for any other kind.
//
// A top-level "triggered" bool wins. Otherwise every map value that carries
// a "triggered" bool is a per-motor report and any true report means
// triggered. With neither, the kind decides: Sensor is released, SensorLow
// is triggered.
func SensorTriggered(msg command.DeviceMessage) (triggered bool, ok bool) {
	if msg.Kind != command.KindSensor && msg.Kind != command.KindSensorLow {
		return false, false
	}

	if v, found := msg.Payload["triggered"].(bool); found {
		return v, true
	}

	names := make([]string, 0, len(msg.Payload))
	for name := range msg.Payload {
		names = append(names, name)
	}
	sort.Strings(names)

	reported := false
	for _, name := range names {
		unit, isMap := msg.Payload[name].(map[string]any)
		if !isMap {
			continue
		}
		v, found := unit["triggered"].(bool)
		if !found {
			logging.Warningf("sensor report %q has no triggered flag", name)
			continue
		}
		reported = true
		triggered = triggered || v
	}
	if reported {
		return triggered, true
	}

	logging.Warningf("%s frame without trigger state, assuming from kind", msg.Kind)
	return msg.Kind == command.KindSensorLow, true
}

// trackSensor updates the trigger flag and tells the operator when it flips.
func (t *Task) trackSensor(msg command.DeviceMessage) {
	triggered, ok := SensorTriggered(msg)
	if !ok {
		return
	}
	if t.triggered.Swap(triggered) == triggered {
		return
	}
	logging.Infof("sensor triggered: %t", triggered)
	t.notice("sensor triggered: %t", triggered)
}
