// Package audit records every external command invocation to an
// append-only text log. The format is part of the external contract:
// operators tail this file, and support tooling greps it, so it must stay
// byte-stable. The log is never rotated or truncated here; file management
// belongs to whatever ships the binary.
package audit

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/slate-integrations/ipman/internal/clock"
	"github.com/slate-integrations/ipman/internal/logging"
)

const separator = "============================================================"

// Entry is one command invocation, successful or not.
type Entry struct {
	Command string // the literal command line
	Stdout  string
	Stderr  string
	Success bool
}

// Log appends command records to a single file.
type Log struct {
	mu   sync.Mutex
	path string
	clk  clock.Clock
	log  *logging.Logger
}

// New creates an audit log writing to path. The file is created on first
// write; an existing file is always appended to.
func New(path string, clk clock.Clock, log *logging.Logger) *Log {
	if clk == nil {
		clk = &clock.RealClock{}
	}
	if log == nil {
		log = logging.Default()
	}
	return &Log{path: path, clk: clk, log: log.WithComponent("audit")}
}

// Path returns the backing file path.
func (l *Log) Path() string {
	return l.path
}

// Record appends one entry. Failures to write are logged and swallowed:
// auditing must never break the operation being audited.
func (l *Log) Record(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.log.Error("audit log open failed", "path", l.path, "error", err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(l.format(e)); err != nil {
		l.log.Error("audit log write failed", "path", l.path, "error", err)
	}
}

func (l *Log) format(e Entry) string {
	status := "FAILED"
	if e.Success {
		status = "SUCCESS"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", separator)
	fmt.Fprintf(&b, "[%s] %s\n", l.clk.Now().Format(clock.Stamp), status)
	fmt.Fprintf(&b, "Command: %s\n", e.Command)
	if strings.TrimSpace(e.Stdout) != "" {
		fmt.Fprintf(&b, "STDOUT:\n%s\n", e.Stdout)
	}
	if strings.TrimSpace(e.Stderr) != "" {
		fmt.Fprintf(&b, "STDERR:\n%s\n", e.Stderr)
	}
	return b.String()
}
