// internal/display/printer.go
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/tamzrod/giga-relay/internal/command"
)

// Printer serialises everything the operator sees onto one writer.
// Both the input task and the session task print, hence the mutex.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Message renders one device message as "<ACTION> <Kind> <payload>".
func (p *Printer) Message(msg command.DeviceMessage) {
	p.println(FormatMessage(msg))
}

// Notice prints a relay status line.
func (p *Printer) Notice(format string, args ...any) {
	p.println("* " + fmt.Sprintf(format, args...))
}

// Malformed reports rejected operator input.
func (p *Printer) Malformed(reason string) {
	p.println("! malformed input: " + reason)
}

func (p *Printer) println(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.out, line)
}

// FormatMessage is the pure rendering used by Message.
func FormatMessage(msg command.DeviceMessage) string {
	body := "{}"
	if len(msg.Payload) > 0 {
		if b, err := json.Marshal(msg.Payload); err == nil {
			body = string(b)
		} else {
			body = fmt.Sprintf("%v", msg.Payload)
		}
	}

	line := fmt.Sprintf("%-4s %-9s %s", msg.Action, msg.Kind, body)

	if msg.Kind == command.KindNAck {
		if code, ok := command.ErrorCodeOf(msg.Payload); ok {
			line += " [" + code.Describe() + "]"
		}
	}
	return line
}
