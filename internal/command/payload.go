// internal/command/payload.go
package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// MotorFields is the fixed record carried by one Set sub-command.
// Every field has a fixed width; volt/temp/amp are echoed back by the device.
type MotorFields struct {
	ID     uint8   `json:"id" cbor:"id"`
	Motion uint8   `json:"motion" cbor:"motion"`
	RPM    int64   `json:"rpm" cbor:"rpm"`
	Acc    uint64  `json:"acc" cbor:"acc"`
	Volt   float32 `json:"volt" cbor:"volt"`
	Temp   float32 `json:"temp" cbor:"temp"`
	Amp    float32 `json:"amp" cbor:"amp"`
}

// FieldNames is the device's standard field-name list, in wire order.
var FieldNames = []string{"id", "motion", "rpm", "acc", "volt", "temp", "amp"}

// SetLabels is the closed set of Set sub-command labels (one per motor unit).
var SetLabels = map[string]struct{}{
	"PMt": {},
	"PMb": {},
}

// IsSetLabel reports whether label belongs to the closed Set label set.
func IsSetLabel(label string) bool {
	_, ok := SetLabels[label]
	return ok
}

// Payload is a tagged sum: exactly one of Set or Read is non-nil.
type Payload struct {
	Set  map[string]MotorFields
	Read map[string]any
}

// SetPayload wraps a Set mapping.
func SetPayload(m map[string]MotorFields) Payload {
	if m == nil {
		m = map[string]MotorFields{}
	}
	return Payload{Set: m}
}

// ReadPayload wraps a Read mapping.
func ReadPayload(m map[string]any) Payload {
	if m == nil {
		m = map[string]any{}
	}
	return Payload{Read: m}
}

// IsSet reports whether p carries the Set shape.
func (p Payload) IsSet() bool { return p.Set != nil }

// Len is the number of sub-entries.
func (p Payload) Len() int {
	if p.Set != nil {
		return len(p.Set)
	}
	return len(p.Read)
}

// Value returns the payload as a plain value for encoders.
func (p Payload) Value() any {
	if p.Set != nil {
		return p.Set
	}
	if p.Read != nil {
		return p.Read
	}
	return map[string]any{}
}

func (p Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Value())
}

var errPayloadShape = errors.New("payload must be a JSON object")

// DecodePayload classifies raw JSON structurally.
// A non-empty object whose keys are all Set labels must decode strictly as
// Set records; any other object is a Read payload.
func DecodePayload(raw json.RawMessage) (Payload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Payload{}, errors.New("missing payload")
	}
	if trimmed[0] != '{' {
		return Payload{}, errPayloadShape
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return Payload{}, fmt.Errorf("payload: %w", err)
	}

	if len(entries) > 0 && allSetLabels(entries) {
		set := make(map[string]MotorFields, len(entries))
		for label, v := range entries {
			mf, err := decodeMotorFields(v)
			if err != nil {
				return Payload{}, fmt.Errorf("payload %q: %w", label, err)
			}
			set[label] = mf
		}
		return SetPayload(set), nil
	}

	var read map[string]any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&read); err != nil {
		return Payload{}, fmt.Errorf("payload: %w", err)
	}
	return ReadPayload(read), nil
}

func allSetLabels(entries map[string]json.RawMessage) bool {
	for k := range entries {
		if !IsSetLabel(k) {
			return false
		}
	}
	return true
}

func decodeMotorFields(raw json.RawMessage) (MotorFields, error) {
	var mf MotorFields
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return mf, errors.New("set entry must be an object")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&mf); err != nil {
		return mf, err
	}
	return mf, nil
}
