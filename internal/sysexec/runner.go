// Package sysexec executes the external administration tools (route,
// netsh, powershell) and captures their output. Callers depend on the
// Runner interface so tests can substitute MockRunner; the real
// implementation enforces a timeout on every invocation.
package sysexec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds every external invocation that does not carry
// its own deadline.
const DefaultTimeout = 30 * time.Second

// Result captures what an external process produced. A non-zero exit is
// not an error at this layer; callers inspect ExitCode and decide.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Ok reports whether the process exited zero.
func (r Result) Ok() bool {
	return r.ExitCode == 0
}

// Runner executes an external command and captures its output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, name string, args ...string) (Result, error)

func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return f(ctx, name, args...)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct {
	// Timeout applies when the caller's context has no deadline.
	// Zero means DefaultTimeout.
	Timeout time.Duration
}

// Run executes the command, waits for it to finish or time out, and
// returns captured stdout/stderr. The error is non-nil only for spawn
// failures (*ExecError) and deadline hits (*TimeoutError).
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		return res, nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		return res, &TimeoutError{Command: CommandLine(name, args), Timeout: timeout}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	// The process never started (missing binary, permission, ...).
	return res, &ExecError{Command: CommandLine(name, args), Err: err}
}

// CommandLine renders the literal command line for logs and errors.
func CommandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
