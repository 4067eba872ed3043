// internal/relay/input.go
package relay

import (
	"bufio"
	"io"

	"go.uber.org/atomic"

	"github.com/tamzrod/giga-relay/internal/command"
	"github.com/tamzrod/giga-relay/internal/logging"
)

// Console is what the input task prints to.
type Console interface {
	Notice(format string, args ...any)
	Malformed(reason string)
}

// Input is the operator read loop. It parses one line at a time and
// pushes commands and reconnect requests; it never touches the transport.
type Input struct {
	in          io.Reader
	ch          Channels
	shutdown    *atomic.Bool
	console     Console
	sessionDone <-chan struct{}

	lines chan string
	stop  chan struct{}

	// lines read while blocked on a full queue, replayed in order
	held []string

	done chan struct{}
}

func NewInput(in io.Reader, ch Channels, shutdown *atomic.Bool, console Console, sessionDone <-chan struct{}) *Input {
	return &Input{
		in:          in,
		ch:          ch,
		shutdown:    shutdown,
		console:     console,
		sessionDone: sessionDone,
		lines:       make(chan string),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Done is closed when Run returns.
func (i *Input) Done() <-chan struct{} {
	return i.done
}

// Run reads until quit, end of input, or the session task going away.
// The shutdown flag is set on every exit path.
func (i *Input) Run() {
	defer close(i.done)
	defer i.quit()

	go i.scan()

	for {
		var line string
		if len(i.held) > 0 {
			line, i.held = i.held[0], i.held[1:]
		} else {
			select {
			case l, ok := <-i.lines:
				if !ok {
					logging.Infof("input closed, shutting down")
					return
				}
				line = l
			case <-i.sessionDone:
				return
			}
		}

		if !i.handle(line) {
			return
		}
	}
}

// scan feeds lines until EOF or stop. A read blocked on the terminal is
// abandoned at process exit.
func (i *Input) scan() {
	defer close(i.lines)

	sc := bufio.NewScanner(i.in)
	for sc.Scan() {
		select {
		case i.lines <- sc.Text():
		case <-i.stop:
			return
		}
	}
	if err := sc.Err(); err != nil {
		logging.Warningf("input read: %v", err)
	}
}

// handle applies one line. It returns false when the loop must end.
func (i *Input) handle(line string) bool {
	p := command.ParseLine(line)

	switch p.Type {
	case command.ParsedQuit:
		logging.Infof("quit requested")
		return false

	case command.ParsedReconnect:
		return i.requestReconnect()

	case command.ParsedGenerateTest:
		cmd := command.GenerateTest(p.Count)
		logging.Debugf("generated test command with %d entries", p.Count)
		return i.push(cmd)

	case command.ParsedCommand:
		return i.push(p.Command)

	default:
		i.console.Malformed(p.Reason)
		return true
	}
}

func (i *Input) requestReconnect() bool {
	select {
	case i.ch.Reconnect <- struct{}{}:
	case <-i.sessionDone:
		return false
	default:
		// queue full of requests that collapse into one anyway
	}
	return true
}

// push enqueues cmd, blocking while the queue is full. While blocked the
// task still reads input: quit and reconnect act at once, other lines are held.
func (i *Input) push(cmd command.Command) bool {
	select {
	case i.ch.Commands <- cmd:
		return true
	default:
	}

	capacity := cap(i.ch.Commands)
	logging.Warningf("command queue full (%d), waiting for the device", capacity)
	i.console.Notice("command queue full (%d), waiting for the device", capacity)

	lines := i.lines
	for {
		select {
		case i.ch.Commands <- cmd:
			return true

		case <-i.sessionDone:
			return false

		case line, ok := <-lines:
			if !ok {
				// end of input: finish this push, then the main loop sees EOF
				lines = nil
				continue
			}
			switch command.ParseLine(line).Type {
			case command.ParsedQuit:
				logging.Infof("quit requested while queue full")
				return false
			case command.ParsedReconnect:
				// the session may need a reopen before it drains the queue
				if !i.requestReconnect() {
					return false
				}
			default:
				i.held = append(i.held, line)
			}
		}
	}
}

func (i *Input) quit() {
	i.shutdown.Store(true)
	select {
	case <-i.stop:
	default:
		close(i.stop)
	}
}
