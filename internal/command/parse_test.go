// internal/command/parse_test.go
package command

import (
	"encoding/json"
	"testing"
)

func TestParseLine_ControlWords(t *testing.T) {
	cases := map[string]ParsedType{
		"q":      ParsedQuit,
		"/q":     ParsedQuit,
		"  q \n": ParsedQuit,
		"r":      ParsedReconnect,
		"/r":     ParsedReconnect,
		"/t=0":   ParsedGenerateTest,
		"/t=12":  ParsedGenerateTest,
		"quit":   ParsedMalformed,
		"":       ParsedMalformed,
	}

	for in, want := range cases {
		got := ParseLine(in)
		if got.Type != want {
			t.Fatalf("ParseLine(%q) type=%s want=%s", in, got.Type, want)
		}
	}
}

func TestParseLine_TestCountMustBeInteger(t *testing.T) {
	for _, in := range []string{"/t=abc", "/t=", "/t=-1", "/t=1.5", "/t=+3"} {
		got := ParseLine(in)
		if got.Type != ParsedMalformed {
			t.Fatalf("ParseLine(%q) type=%s want=malformed", in, got.Type)
		}
		if got.Reason == "" {
			t.Fatalf("ParseLine(%q) malformed without reason", in)
		}
	}

	got := ParseLine("/t=7")
	if got.Count != 7 {
		t.Fatalf("expected count 7, got %d", got.Count)
	}
}

func TestParseLine_MotorSetScenario(t *testing.T) {
	in := `{"action":"SEND","cmd":"Motor","payload":{"PMt":{"id":1,"motion":1,"rpm":500,"acc":0,"volt":0,"temp":0,"amp":0}}}`

	got := ParseLine(in)
	if got.Type != ParsedCommand {
		t.Fatalf("expected command, got %s (%s)", got.Type, got.Reason)
	}

	cmd := got.Command
	if cmd.Action != ActionSend {
		t.Fatalf("action=%s want SEND", cmd.Action)
	}
	if cmd.Kind != KindMotor {
		t.Fatalf("kind=%s want Motor", cmd.Kind)
	}
	if !cmd.Payload.IsSet() {
		t.Fatalf("expected Set payload")
	}
	if len(cmd.Payload.Set) != 1 {
		t.Fatalf("expected 1 sub-entry, got %d", len(cmd.Payload.Set))
	}

	pmt, ok := cmd.Payload.Set["PMt"]
	if !ok {
		t.Fatalf("missing PMt entry")
	}
	if pmt.ID != 1 || pmt.Motion != 1 || pmt.RPM != 500 {
		t.Fatalf("unexpected PMt fields: %+v", pmt)
	}
}

func TestParseLine_ReadPayloadIsOpenEnded(t *testing.T) {
	in := `{"action":"read","cmd":"sensor","payload":{"trigger_1":"triggered","PMt":1}}`

	got := ParseLine(in)
	if got.Type != ParsedCommand {
		t.Fatalf("expected command, got %s (%s)", got.Type, got.Reason)
	}
	if got.Command.Payload.IsSet() {
		t.Fatalf("mixed keys must classify as Read payload")
	}
	if got.Command.Action != ActionRead || got.Command.Kind != KindSensor {
		t.Fatalf("unexpected header: %s", got.Command)
	}
	if len(got.Command.Payload.Read) != 2 {
		t.Fatalf("expected 2 read keys, got %d", len(got.Command.Payload.Read))
	}
}

func TestParseLine_Malformed(t *testing.T) {
	cases := []string{
		`not json`,
		`{"action":"SEND","cmd":"Motor"}`,
		`{"action":"SEND","cmd":"Motor","payload":[1,2]}`,
		`{"action":"SEND","cmd":"Motor","payload":null}`,
		`{"action":"GIGA","cmd":"Motor","payload":{}}`,
		`{"action":"JUMP","cmd":"Motor","payload":{}}`,
		`{"action":"SEND","cmd":"Laser","payload":{}}`,
		`{"cmd":"Motor","payload":{}}`,
		`{"action":"SEND","payload":{}}`,
		`{"action":"SEND","cmd":"Motor","payload":{},"extra":1}`,
		`{"action":"SEND","cmd":"Motor","payload":{}} trailing`,
		// Set labels with records that do not fit the fixed field types.
		`{"action":"SEND","cmd":"Motor","payload":{"PMt":{"id":300}}}`,
		`{"action":"SEND","cmd":"Motor","payload":{"PMt":{"id":1,"rpm":1.5}}}`,
		`{"action":"SEND","cmd":"Motor","payload":{"PMt":{"id":1,"speed":10}}}`,
		`{"action":"SEND","cmd":"Motor","payload":{"PMb":7}}`,
	}

	for _, in := range cases {
		got := ParseLine(in)
		if got.Type != ParsedMalformed {
			t.Fatalf("ParseLine(%q) type=%s want=malformed", in, got.Type)
		}
	}
}

func TestParseCommand_RoundTrip(t *testing.T) {
	inputs := []string{
		`{"action":"SEND","cmd":"Motor","payload":{"PMb":{"id":4,"motion":1,"rpm":-1500,"acc":400,"volt":12.5,"temp":26,"amp":0.5},"PMt":{"id":5,"motion":0,"rpm":100,"acc":300,"volt":0,"temp":0,"amp":0}}}`,
		`{"action":"READ","cmd":"File","payload":{"name":"log.txt","offset":128,"flags":[1,2,3]}}`,
		`{"action":"SEND","cmd":"NAck","payload":{}}`,
	}

	for _, in := range inputs {
		cmd, err := ParseCommand(in)
		if err != nil {
			t.Fatalf("ParseCommand(%q) err=%v", in, err)
		}

		out, err := json.Marshal(cmd)
		if err != nil {
			t.Fatalf("marshal err=%v", err)
		}

		var want, got any
		if err := json.Unmarshal([]byte(in), &want); err != nil {
			t.Fatalf("bad fixture: %v", err)
		}
		if err := json.Unmarshal(out, &got); err != nil {
			t.Fatalf("bad output: %v", err)
		}

		wantJSON, _ := json.Marshal(want)
		gotJSON, _ := json.Marshal(got)
		if string(wantJSON) != string(gotJSON) {
			t.Fatalf("round trip mismatch:\n in=%s\nout=%s", wantJSON, gotJSON)
		}
	}
}

func TestGenerateTest_Shape(t *testing.T) {
	for n := 0; n <= 50; n++ {
		cmd := GenerateTest(n)

		if cmd.Action != ActionRead || cmd.Kind != KindMotor {
			t.Fatalf("n=%d: header=%s want READ Motor", n, cmd)
		}
		if cmd.Payload.IsSet() {
			t.Fatalf("n=%d: expected Read payload", n)
		}
		if cmd.Payload.Len() != n {
			t.Fatalf("n=%d: got %d sub-payloads", n, cmd.Payload.Len())
		}

		for label, v := range cmd.Payload.Read {
			names, ok := v.([]any)
			if !ok {
				t.Fatalf("n=%d: entry %s has type %T", n, label, v)
			}
			if len(names) != len(FieldNames) {
				t.Fatalf("n=%d: entry %s has %d fields", n, label, len(names))
			}
			for i, f := range FieldNames {
				if names[i] != f {
					t.Fatalf("n=%d: entry %s field %d = %v want %s", n, label, i, names[i], f)
				}
			}
		}
	}
}

func TestErrorCodeOf(t *testing.T) {
	code, ok := ErrorCodeOf(map[string]any{"code": uint64(1005)})
	if !ok || code != CodeCRCError {
		t.Fatalf("got %v ok=%v", code, ok)
	}
	if got := ErrorCode(4242).String(); got != "UnknownError" {
		t.Fatalf("unknown code name=%s", got)
	}
	if _, ok := ErrorCodeOf(map[string]any{"status": 1}); ok {
		t.Fatalf("expected no code")
	}
}
