package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slate-integrations/ipman/internal/clock"
)

func testClock() *clock.MockClock {
	return clock.NewMockClock(time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC))
}

func TestRecordFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "route_manager.log")
	l := New(path, testClock(), nil)

	l.Record(Entry{
		Command: "route print -4",
		Stdout:  "Active Routes:\n",
		Success: true,
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "============================================================")
	assert.Contains(t, out, "[2025-03-14 09:26:53] SUCCESS")
	assert.Contains(t, out, "Command: route print -4")
	assert.Contains(t, out, "STDOUT:\nActive Routes:")
	assert.NotContains(t, out, "STDERR:")
}

func TestRecordFailureIncludesStderr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "route_manager.log")
	l := New(path, testClock(), nil)

	l.Record(Entry{
		Command: "route add 10.0.0.0 mask 255.0.0.0 10.0.0.1",
		Stderr:  "The requested operation requires elevation.\n",
		Success: false,
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "STDERR:\nThe requested operation requires elevation.")
	assert.NotContains(t, out, "STDOUT:")
}

func TestRecordAppendsNeverTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "route_manager.log")
	l := New(path, testClock(), nil)

	l.Record(Entry{Command: "first", Success: true})
	l.Record(Entry{Command: "second", Success: false})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Less(t, strings.Index(out, "Command: first"), strings.Index(out, "Command: second"))
}

func TestRecordSwallowsWriteErrors(t *testing.T) {
	// Point at a path whose parent does not exist; Record must not panic
	// or return an error to the caller.
	l := New(filepath.Join(t.TempDir(), "missing", "deep", "log.txt"), testClock(), nil)
	l.Record(Entry{Command: "route print -4", Success: true})
}
