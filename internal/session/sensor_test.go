// internal/session/sensor_test.go
package session

import (
	"strings"
	"testing"

	"github.com/tamzrod/giga-relay/internal/command"
)

func TestSensorTriggered(t *testing.T) {
	sensor := func(k command.Kind, p map[string]any) command.DeviceMessage {
		return command.DeviceMessage{Action: command.ActionGiga, Kind: k, Payload: p}
	}

	cases := []struct {
		name string
		msg  command.DeviceMessage
		want bool
		ok   bool
	}{
		{"top-level true", sensor(command.KindSensor, map[string]any{"name": "trigger_1", "triggered": true}), true, true},
		{"top-level false on low", sensor(command.KindSensorLow, map[string]any{"triggered": false}), false, true},
		{"per-unit any true", sensor(command.KindSensor, map[string]any{
			"PMb": map[string]any{"triggered": false},
			"PMt": map[string]any{"triggered": true},
		}), true, true},
		{"per-unit all false", sensor(command.KindSensorLow, map[string]any{
			"PMt": map[string]any{"triggered": false},
		}), false, true},
		{"sensor fallback", sensor(command.KindSensor, map[string]any{"PMt": map[string]any{"level": 1}}), false, true},
		{"sensor low fallback", sensor(command.KindSensorLow, nil), true, true},
		{"other kind", sensor(command.KindMotor, map[string]any{"triggered": true}), false, false},
	}

	for _, tc := range cases {
		got, ok := SensorTriggered(tc.msg)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("%s: got (%t,%t) want (%t,%t)", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRun_SensorTriggerNoticedOnChange(t *testing.T) {
	o := &fakeOpener{}
	frames := []command.DeviceMessage{
		{Action: command.ActionGiga, Kind: command.KindSensor},
		{Action: command.ActionGiga, Kind: command.KindSensorLow},
		{Action: command.ActionGiga, Kind: command.KindSensor, Payload: map[string]any{"triggered": true}},
		{Action: command.ActionGiga, Kind: command.KindSensor, Payload: map[string]any{"triggered": false}},
	}
	for _, f := range frames {
		o.push(fakeRead{msg: f})
	}

	h := newHarness(t, o, nil)
	h.start()
	waitFor(t, "all received", func() bool { return h.task.Stats().Received == uint64(len(frames)) })
	h.stop(t)

	h.out.mu.Lock()
	var flips []string
	for _, n := range h.out.notices {
		if strings.HasPrefix(n, "sensor triggered") {
			flips = append(flips, n)
		}
	}
	h.out.mu.Unlock()

	if strings.Join(flips, "|") != "sensor triggered: true|sensor triggered: false" {
		t.Fatalf("notices=%v", flips)
	}
	if h.task.Stats().Triggered {
		t.Fatalf("final trigger state should be released")
	}
}
