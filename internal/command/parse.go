// internal/command/parse.go
package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParsedType tags the variant held by Parsed.
type ParsedType int

const (
	ParsedMalformed ParsedType = iota
	ParsedQuit
	ParsedReconnect
	ParsedGenerateTest
	ParsedCommand
)

func (t ParsedType) String() string {
	switch t {
	case ParsedQuit:
		return "quit"
	case ParsedReconnect:
		return "reconnect"
	case ParsedGenerateTest:
		return "generate-test"
	case ParsedCommand:
		return "command"
	default:
		return "malformed"
	}
}

// Parsed is the result of classifying one operator line.
// Only the field matching Type is meaningful.
type Parsed struct {
	Type    ParsedType
	Count   int     // ParsedGenerateTest
	Command Command // ParsedCommand
	Reason  string  // ParsedMalformed
}

const testPrefix = "/t="

// ParseLine classifies one operator line. It never fails hard:
// anything unusable comes back as ParsedMalformed with a reason.
func ParseLine(text string) Parsed {
	line := strings.TrimSpace(text)

	switch line {
	case "q", "/q":
		return Parsed{Type: ParsedQuit}
	case "r", "/r":
		return Parsed{Type: ParsedReconnect}
	}

	// "/t=" is only special when followed by a valid count;
	// otherwise the line falls through to JSON and fails there.
	if strings.HasPrefix(line, testPrefix) {
		if n, err := strconv.ParseUint(line[len(testPrefix):], 10, 16); err == nil {
			return Parsed{Type: ParsedGenerateTest, Count: int(n)}
		}
	}

	cmd, err := ParseCommand(line)
	if err != nil {
		return Parsed{Type: ParsedMalformed, Reason: err.Error()}
	}
	return Parsed{Type: ParsedCommand, Command: cmd}
}

type operatorCommand struct {
	Action  *string         `json:"action"`
	Kind    *string         `json:"cmd"`
	Payload json.RawMessage `json:"payload"`
}

// ParseCommand decodes one operator JSON object into a Command.
func ParseCommand(line string) (Command, error) {
	if line == "" {
		return Command{}, errors.New("empty input")
	}

	dec := json.NewDecoder(strings.NewReader(line))
	dec.DisallowUnknownFields()

	var oc operatorCommand
	if err := dec.Decode(&oc); err != nil {
		return Command{}, fmt.Errorf("invalid command json: %w", err)
	}
	if dec.More() {
		return Command{}, errors.New("invalid command json: trailing data after object")
	}

	if oc.Action == nil {
		return Command{}, errors.New("missing field \"action\"")
	}
	if oc.Kind == nil {
		return Command{}, errors.New("missing field \"cmd\"")
	}

	action, err := ParseAction(*oc.Action)
	if err != nil {
		return Command{}, err
	}
	if action == ActionGiga {
		return Command{}, errors.New("action GIGA is reserved for device telemetry")
	}

	kind, err := ParseKind(*oc.Kind)
	if err != nil {
		return Command{}, err
	}

	payload, err := DecodePayload(oc.Payload)
	if err != nil {
		return Command{}, err
	}

	return Command{Action: action, Kind: kind, Payload: payload}, nil
}
