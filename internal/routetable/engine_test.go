package routetable

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slate-integrations/ipman/internal/logging"
	"github.com/slate-integrations/ipman/internal/sysexec"
)

func testLogger() *logging.Logger {
	return logging.New(logging.Config{Level: logging.LevelError, Output: os.Stderr})
}

func staticRunner(output string) sysexec.Runner {
	return sysexec.RunnerFunc(func(ctx context.Context, name string, args ...string) (sysexec.Result, error) {
		return sysexec.Result{Stdout: output}, nil
	})
}

func TestRefreshNowPublishesSnapshot(t *testing.T) {
	e := NewEngine(staticRunner(sampleOutput), testLogger())

	e.RefreshNow(context.Background())

	snap := e.Snapshot()
	require.Len(t, snap.Routes, 7)
	assert.False(t, snap.Taken.IsZero())
}

func TestSnapshotClassified(t *testing.T) {
	e := NewEngine(staticRunner(sampleOutput), testLogger())
	e.RefreshNow(context.Background())

	byDest := map[string]Persistence{}
	for _, r := range e.Snapshot().Routes {
		byDest[r.Destination] = r.Persistence
	}
	assert.Equal(t, PersistenceYes, byDest["10.20.0.0"])
	assert.Equal(t, PersistenceUnknown, byDest["0.0.0.0"])
	assert.Equal(t, PersistenceNo, byDest["192.168.1.0"])
}

func TestPersistentDefaultRouteClassifiedYes(t *testing.T) {
	out := `Active Routes:
          0.0.0.0          0.0.0.0      192.168.1.1     192.168.1.50     25
Persistent Routes:
          0.0.0.0          0.0.0.0      192.168.1.1       1
`
	e := NewEngine(staticRunner(out), testLogger())
	e.RefreshNow(context.Background())

	routes := e.Snapshot().Routes
	require.Len(t, routes, 1)
	assert.Equal(t, PersistenceYes, routes[0].Persistence)
}

func TestFetchFailureKeepsPreviousSnapshot(t *testing.T) {
	var fail atomic.Bool
	runner := sysexec.RunnerFunc(func(ctx context.Context, name string, args ...string) (sysexec.Result, error) {
		if fail.Load() {
			return sysexec.Result{}, errors.New("command failed")
		}
		return sysexec.Result{Stdout: sampleOutput}, nil
	})

	e := NewEngine(runner, testLogger())
	e.RefreshNow(context.Background())
	before := e.Snapshot()
	require.Len(t, before.Routes, 7)

	fail.Store(true)
	e.RefreshNow(context.Background())

	assert.Same(t, before, e.Snapshot())
}

func TestNonZeroExitKeepsPreviousSnapshot(t *testing.T) {
	var fail atomic.Bool
	runner := sysexec.RunnerFunc(func(ctx context.Context, name string, args ...string) (sysexec.Result, error) {
		if fail.Load() {
			return sysexec.Result{Stderr: "The requested operation requires elevation.", ExitCode: 1}, nil
		}
		return sysexec.Result{Stdout: sampleOutput}, nil
	})

	e := NewEngine(runner, testLogger())
	e.RefreshNow(context.Background())
	before := e.Snapshot()

	fail.Store(true)
	e.RefreshNow(context.Background())

	assert.Same(t, before, e.Snapshot())
}

func TestFilterAndCounts(t *testing.T) {
	e := NewEngine(staticRunner(sampleOutput), testLogger())
	e.RefreshNow(context.Background())

	all := e.Filter(CategoryAll)
	persistent := e.Filter(CategoryPersistent)
	temporary := e.Filter(CategoryTemporary)

	assert.Len(t, all, 7)
	require.Len(t, persistent, 1)
	assert.Equal(t, "10.20.0.0", persistent[0].Destination)
	// The five well-known routes are neither persistent nor temporary.
	assert.Len(t, temporary, 1)

	c := e.Counts()
	assert.Equal(t, Counts{All: 7, Persistent: 1, Temporary: 1}, c)
	assert.Equal(t, c.All-c.Persistent-c.Temporary, 5)
}

func TestFilterReturnsCopy(t *testing.T) {
	e := NewEngine(staticRunner(sampleOutput), testLogger())
	e.RefreshNow(context.Background())

	all := e.Filter(CategoryAll)
	all[0].Destination = "mutated"
	assert.Equal(t, "0.0.0.0", e.Snapshot().Routes[0].Destination)
}

func TestEmptySnapshotBeforeFirstCycle(t *testing.T) {
	e := NewEngine(staticRunner(sampleOutput), testLogger())
	snap := e.Snapshot()
	require.NotNil(t, snap)
	assert.Empty(t, snap.Routes)
}

func TestRefreshCoalesces(t *testing.T) {
	e := NewEngine(staticRunner(sampleOutput), testLogger())
	e.Refresh()
	e.Refresh()
	e.Refresh()
	assert.Len(t, e.refresh, 1)
}

func TestSingleCycleInFlight(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	runner := sysexec.RunnerFunc(func(ctx context.Context, name string, args ...string) (sysexec.Result, error) {
		n := inFlight.Add(1)
		for {
			old := maxInFlight.Load()
			if n <= old || maxInFlight.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return sysexec.Result{Stdout: sampleOutput}, nil
	})

	e := NewEngine(runner, testLogger(), WithPollInterval(time.Millisecond))
	e.Start(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				e.Refresh()
				time.Sleep(time.Millisecond)
			}
		}()
	}
	wg.Wait()
	e.Stop()

	assert.Equal(t, int32(1), maxInFlight.Load())
}

func TestStartIsIdempotentAndStops(t *testing.T) {
	var cycles atomic.Int32
	runner := sysexec.RunnerFunc(func(ctx context.Context, name string, args ...string) (sysexec.Result, error) {
		cycles.Add(1)
		return sysexec.Result{Stdout: sampleOutput}, nil
	})

	e := NewEngine(runner, testLogger(), WithPollInterval(time.Millisecond))
	e.Start(context.Background())
	e.Start(context.Background())
	time.Sleep(10 * time.Millisecond)
	e.Stop()
	e.Stop()

	after := cycles.Load()
	assert.Greater(t, after, int32(0))
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, cycles.Load())
}

func TestWorkerUsesRouteCommand(t *testing.T) {
	var gotName string
	var gotArgs []string
	runner := sysexec.RunnerFunc(func(ctx context.Context, name string, args ...string) (sysexec.Result, error) {
		gotName = name
		gotArgs = args
		return sysexec.Result{Stdout: sampleOutput}, nil
	})

	e := NewEngine(runner, testLogger(), WithRouteCommand("route.exe"))
	e.RefreshNow(context.Background())

	assert.Equal(t, "route.exe", gotName)
	assert.Equal(t, []string{"print", "-4"}, gotArgs)
}
