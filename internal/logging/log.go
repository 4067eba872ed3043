// internal/logging/log.go
package logging

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/logger"
)

// Options selects the sinks. Dir == "" means console only.
type Options struct {
	Name    string
	Dir     string
	Rotate  time.Duration
	Verbose bool // echo info/warning to the console
	Debug   bool // let Debugf through
}

type state struct {
	mtx   sync.RWMutex
	lg    *logger.Logger
	file  *rollingFile
	debug bool
}

var std state

func init() {
	std.lg = logger.Init("gigarelay", true, false, io.Discard)
}

// Init swaps the package logger for one built from opts.
// Errors come only from opening the first log file.
func Init(opts Options) error {
	name := opts.Name
	if name == "" {
		name = "gigarelay"
	}

	var sink io.Writer = io.Discard
	var file *rollingFile
	if opts.Dir != "" {
		f, err := openRolling(opts.Dir, name, opts.Rotate)
		if err != nil {
			return err
		}
		file = f
		sink = f
	}

	lg := logger.Init(name, opts.Verbose, false, sink)

	std.mtx.Lock()
	old, oldFile := std.lg, std.file
	std.lg, std.file, std.debug = lg, file, opts.Debug
	std.mtx.Unlock()

	old.Close()
	if oldFile != nil {
		_ = oldFile.Close()
	}
	return nil
}

// Close flushes and closes the file sink. Safe to call more than once.
func Close() {
	std.mtx.Lock()
	defer std.mtx.Unlock()

	std.lg.Close()
	if std.file != nil {
		if err := std.file.Close(); err != nil {
			std.lg.Warningf("close log file: %v", err)
		}
		std.file = nil
	}
}

// DebugEnabled reports whether Debugf output is kept.
func DebugEnabled() bool {
	std.mtx.RLock()
	defer std.mtx.RUnlock()
	return std.debug
}

func Debugf(format string, v ...any) {
	std.mtx.RLock()
	defer std.mtx.RUnlock()
	if !std.debug {
		return
	}
	std.lg.InfoDepth(1, "DEBUG "+fmt.Sprintf(format, v...))
}

func Infof(format string, v ...any) {
	std.mtx.RLock()
	defer std.mtx.RUnlock()
	std.lg.InfoDepth(1, fmt.Sprintf(format, v...))
}

func Warningf(format string, v ...any) {
	std.mtx.RLock()
	defer std.mtx.RUnlock()
	std.lg.WarningDepth(1, fmt.Sprintf(format, v...))
}

func Errorf(format string, v ...any) {
	std.mtx.RLock()
	defer std.mtx.RUnlock()
	std.lg.ErrorDepth(1, fmt.Sprintf(format, v...))
}
