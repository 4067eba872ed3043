// internal/session/serial/client.go
package serial

import (
	"errors"
	"fmt"
	"io"
	"time"

	goserial "github.com/goburrow/serial"

	"github.com/tamzrod/giga-relay/internal/command"
	"github.com/tamzrod/giga-relay/internal/logging"
	"github.com/tamzrod/giga-relay/internal/session"
)

// DefaultBaudRate matches the controller firmware.
const DefaultBaudRate = 460800

const readChunk = 256

// Opener implements session.Opener over a serial port, 8N1.
type Opener struct {
	BaudRate  int
	ShowBytes bool

	// dial is replaced in tests
	dial func(cfg *goserial.Config) (io.ReadWriteCloser, error)
}

// NewOpener returns an opener for real ports. baud <= 0 selects DefaultBaudRate.
func NewOpener(baud int, showBytes bool) *Opener {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	return &Opener{
		BaudRate:  baud,
		ShowBytes: showBytes,
		dial: func(cfg *goserial.Config) (io.ReadWriteCloser, error) {
			return goserial.Open(cfg)
		},
	}
}

// Open makes exactly one attempt.
func (o *Opener) Open(port string, timeout time.Duration) (session.Link, error) {
	if port == "" {
		return nil, errors.New("serial: port required")
	}

	rw, err := o.dial(&goserial.Config{
		Address:  port,
		BaudRate: o.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", port, err)
	}

	return &Link{
		port:      port,
		rw:        rw,
		split:     newSplitter(),
		showBytes: o.ShowBytes,
	}, nil
}

// Link is one open port plus its receive state.
// Not safe for concurrent use; the session task owns it.
type Link struct {
	port      string
	rw        io.ReadWriteCloser
	split     *splitter
	showBytes bool

	// read but not yet fed to the splitter
	backlog []byte
	chunk   [readChunk]byte

	closed bool
}

// ---- session.Link interface ----

func (l *Link) Send(cmd command.Command) error {
	if l.closed {
		return fmt.Errorf("send on closed port: %w", session.ErrLinkLost)
	}

	wire, err := EncodeCommand(cmd)
	if err != nil {
		return err
	}
	if l.dumpBytes() {
		logging.Debugf("tx %s size=%d % X", l.port, len(wire), wire)
	}

	if _, err := l.rw.Write(wire); err != nil {
		return fmt.Errorf("write %s: %v: %w", l.port, err, session.ErrLinkLost)
	}
	return nil
}

// Receive performs at most one port read and returns at most one message.
// Bytes past a completed frame stay buffered for the next call.
func (l *Link) Receive() (command.DeviceMessage, error) {
	if l.closed {
		return command.DeviceMessage{}, fmt.Errorf("receive on closed port: %w", session.ErrLinkLost)
	}

	if msg, ok, err := l.drain(); ok || err != nil {
		return msg, err
	}

	n, err := l.rw.Read(l.chunk[:])
	if n > 0 {
		if l.dumpBytes() {
			logging.Debugf("rx %s size=%d % X", l.port, n, l.chunk[:n])
		}
		l.backlog = append(l.backlog, l.chunk[:n]...)
	}
	if err != nil && !errors.Is(err, goserial.ErrTimeout) {
		return command.DeviceMessage{}, fmt.Errorf("read %s: %v: %w", l.port, err, session.ErrLinkLost)
	}

	if msg, ok, err := l.drain(); ok || err != nil {
		return msg, err
	}
	return command.DeviceMessage{}, session.ErrNoData
}

// dumpBytes skips hex formatting when debug output is off.
func (l *Link) dumpBytes() bool {
	return l.showBytes && logging.DebugEnabled()
}

func (l *Link) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	l.backlog = nil
	return l.rw.Close()
}

// drain feeds buffered bytes until one frame completes.
func (l *Link) drain() (command.DeviceMessage, bool, error) {
	for i, b := range l.backlog {
		tok := l.split.push(b)
		switch tok.kind {
		case tokenDebug:
			logging.Debugf("device: %s", tok.line)
		case tokenOverflow:
			l.backlog = l.backlog[i+1:]
			return command.DeviceMessage{}, false,
				fmt.Errorf("%s: frame longer than %d bytes: %w", l.port, MaxFrameLen, session.ErrDecode)
		case tokenFrame:
			l.backlog = l.backlog[i+1:]
			msg, err := DecodeFrame(tok.frame)
			if err != nil {
				return command.DeviceMessage{}, false, fmt.Errorf("%s: %v: %w", l.port, err, session.ErrDecode)
			}
			return msg, true, nil
		}
	}
	l.backlog = l.backlog[:0]
	return command.DeviceMessage{}, false, nil
}
