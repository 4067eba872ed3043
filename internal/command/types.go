// internal/command/types.go
package command

import (
	"fmt"
	"strings"
)

// Action is the first byte of every frame.
type Action uint8

const (
	ActionNone Action = 0x00
	ActionRead Action = 0xA8
	ActionSend Action = 0xAA

	// ActionGiga marks device-originated telemetry.
	// Operators never issue it.
	ActionGiga Action = 0xAE
)

func (a Action) String() string {
	switch a {
	case ActionSend:
		return "SEND"
	case ActionRead:
		return "READ"
	case ActionGiga:
		return "GIGA"
	default:
		return "NONE"
	}
}

// ActionFromByte maps a wire byte to an Action.
// Unknown bytes map to ActionNone.
func ActionFromByte(b byte) Action {
	switch a := Action(b); a {
	case ActionSend, ActionRead, ActionGiga:
		return a
	default:
		return ActionNone
	}
}

// ParseAction accepts SEND / READ / GIGA in any letter case.
func ParseAction(s string) (Action, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SEND":
		return ActionSend, nil
	case "READ":
		return ActionRead, nil
	case "GIGA":
		return ActionGiga, nil
	default:
		return ActionNone, fmt.Errorf("unknown action %q", s)
	}
}

// Kind is the command byte that follows the action byte.
type Kind uint8

const (
	KindNone      Kind = 0x00
	KindAck       Kind = 0x01
	KindNAck      Kind = 0x02
	KindMotor     Kind = 0x03
	KindSetID     Kind = 0x04
	KindFile      Kind = 0x05
	KindSensor    Kind = 0x06
	KindSensorLow Kind = 0x07
)

var kindNames = map[Kind]string{
	KindAck:       "Ack",
	KindNAck:      "NAck",
	KindMotor:     "Motor",
	KindSetID:     "SetID",
	KindFile:      "File",
	KindSensor:    "Sensor",
	KindSensorLow: "SensorLow",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "None"
}

// KindFromByte maps a wire byte to a Kind.
// Unknown bytes map to KindNone.
func KindFromByte(b byte) Kind {
	if _, ok := kindNames[Kind(b)]; ok {
		return Kind(b)
	}
	return KindNone
}

// ParseKind matches kind names case-insensitively ("motor", "NACK", ...).
func ParseKind(s string) (Kind, error) {
	want := strings.TrimSpace(s)
	for k, name := range kindNames {
		if strings.EqualFold(name, want) {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown command kind %q", s)
}
