package sysexec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewExitErrorPrefersStderr(t *testing.T) {
	err := NewExitError("route add", Result{
		Stdout:   "some output",
		Stderr:   "The requested operation requires elevation.\n",
		ExitCode: 1,
	})
	assert.Contains(t, err.Error(), "The requested operation requires elevation.")
	assert.NotContains(t, err.Error(), "some output")
}

func TestNewExitErrorFallsBackToStdout(t *testing.T) {
	err := NewExitError("route add", Result{
		Stdout:   "The route addition failed: Access is denied.",
		Stderr:   "   ",
		ExitCode: 1,
	})
	assert.Contains(t, err.Error(), "Access is denied")
}

func TestNewExitErrorGenericWhenSilent(t *testing.T) {
	err := NewExitError("route add", Result{ExitCode: 3})
	assert.Contains(t, err.Error(), "exit code 3")
}

func TestTimeoutErrorMessage(t *testing.T) {
	err := &TimeoutError{Command: "route print -4", Timeout: 30 * time.Second}
	assert.Contains(t, err.Error(), "route print -4")
	assert.Contains(t, err.Error(), "30s")
}

func TestCommandLine(t *testing.T) {
	assert.Equal(t, "route", CommandLine("route", nil))
	assert.Equal(t, "route print -4", CommandLine("route", []string{"print", "-4"}))
}

func TestResultOk(t *testing.T) {
	assert.True(t, Result{}.Ok())
	assert.False(t, Result{ExitCode: 1}.Ok())
}
