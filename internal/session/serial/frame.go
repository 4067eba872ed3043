// internal/session/serial/frame.go
package serial

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/tamzrod/giga-relay/internal/command"
)

// MaxFrameLen bounds one frame on the wire, before and after stuffing.
const MaxFrameLen = 1024

// action(1) kind(1) len(2) ... crc(2)
const frameOverhead = 6

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("serial: CBOR encoder init: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("serial: CBOR decoder init: " + err.Error())
	}
}

// ------------------------------------------------------------
// outbound
// ------------------------------------------------------------

// EncodeCommand returns the full wire image: 0x00 | COBS(frame) | 0x00.
func EncodeCommand(cmd command.Command) ([]byte, error) {
	payload, err := encMode.Marshal(cborValue(cmd.Payload.Value()))
	if err != nil {
		return nil, fmt.Errorf("cbor encode %s: %w", cmd.Kind, err)
	}

	raw, err := buildFrame(cmd.Action, cmd.Kind, payload)
	if err != nil {
		return nil, err
	}

	stuffed := cobsEncode(raw)
	wire := make([]byte, 0, len(stuffed)+2)
	wire = append(wire, 0x00)
	wire = append(wire, stuffed...)
	wire = append(wire, 0x00)
	return wire, nil
}

func buildFrame(action command.Action, kind command.Kind, payload []byte) ([]byte, error) {
	if len(payload)+frameOverhead > MaxFrameLen {
		return nil, fmt.Errorf("frame too large: payload=%d max=%d", len(payload), MaxFrameLen-frameOverhead)
	}

	f := make([]byte, 4, len(payload)+frameOverhead)
	f[0] = byte(action)
	f[1] = byte(kind)
	binary.LittleEndian.PutUint16(f[2:4], uint16(len(payload)))
	f = append(f, payload...)

	crc := crc16USB(f[2:])
	f = binary.LittleEndian.AppendUint16(f, crc)
	return f, nil
}

// cborValue rewrites json.Number leaves into integers or floats so the
// device sees CBOR numbers rather than text.
func cborValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = cborValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cborValue(e)
		}
		return out
	default:
		return v
	}
}

// ------------------------------------------------------------
// inbound
// ------------------------------------------------------------

// DecodeFrame decodes one COBS-stuffed frame (delimiters stripped).
func DecodeFrame(stuffed []byte) (command.DeviceMessage, error) {
	raw, err := cobsDecode(stuffed)
	if err != nil {
		return command.DeviceMessage{}, err
	}
	return parseFrame(raw)
}

func parseFrame(f []byte) (command.DeviceMessage, error) {
	if len(f) < frameOverhead {
		return command.DeviceMessage{}, fmt.Errorf("frame too short: %d bytes", len(f))
	}

	n := int(binary.LittleEndian.Uint16(f[2:4]))
	if len(f) != n+frameOverhead {
		return command.DeviceMessage{}, fmt.Errorf("length mismatch: header=%d frame=%d", n, len(f)-frameOverhead)
	}

	want := binary.LittleEndian.Uint16(f[len(f)-2:])
	got := crc16USB(f[2 : len(f)-2])
	if want != got {
		return command.DeviceMessage{}, fmt.Errorf("crc mismatch: frame=%04X calc=%04X", want, got)
	}

	msg := command.DeviceMessage{
		Action:  command.ActionFromByte(f[0]),
		Kind:    command.KindFromByte(f[1]),
		Payload: map[string]any{},
		Raw:     append([]byte(nil), f[4:4+n]...),
	}
	if n == 0 {
		return msg, nil
	}
	if err := decMode.Unmarshal(msg.Raw, &msg.Payload); err != nil {
		return command.DeviceMessage{}, fmt.Errorf("cbor decode: %w", err)
	}
	return msg, nil
}
