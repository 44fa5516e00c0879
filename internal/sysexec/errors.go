package sysexec

import (
	"fmt"
	"strings"
	"time"
)

// ExecError means the external process could not be spawned, or (when
// built by a caller from a Result) exited non-zero. Detail carries the
// command's own stderr/stdout when available.
type ExecError struct {
	Command  string
	Detail   string
	ExitCode int
	Err      error
}

func (e *ExecError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("command %q failed: %s", e.Command, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command %q failed with exit code %d", e.Command, e.ExitCode)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// NewExitError builds an ExecError from a non-zero Result, surfacing the
// command's stderr, falling back to stdout, then to a generic message.
func NewExitError(command string, res Result) *ExecError {
	detail := firstNonEmpty(res.Stderr, res.Stdout)
	return &ExecError{Command: command, Detail: detail, ExitCode: res.ExitCode}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// TimeoutError means the process exceeded its execution bound. Treated
// as an execution failure for audit purposes.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %q timed out after %s", e.Command, e.Timeout)
}
