package routetable

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slate-integrations/ipman/internal/clock"
	"github.com/slate-integrations/ipman/internal/ledger"
	"github.com/slate-integrations/ipman/internal/sysexec"
	"github.com/slate-integrations/ipman/internal/validation"
)

func elevated() bool    { return true }
func notElevated() bool { return false }

func newTestGateway(t *testing.T, runner sysexec.Runner, isElevated func() bool) (*Gateway, *ledger.Store) {
	t.Helper()

	store, err := ledger.Open(filepath.Join(t.TempDir(), "history.json"), testLogger())
	require.NoError(t, err)

	engine := NewEngine(staticRunner(sampleOutput), testLogger())
	clk := clock.NewMockClock(time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC))
	return NewGateway(runner, store, engine, isElevated, clk, testLogger()), store
}

func TestAddRouteTemporary(t *testing.T) {
	runner := new(sysexec.MockRunner)
	runner.On("Run", mock.Anything, "route", "add", "10.20.0.0", "mask", "255.255.0.0", "192.168.1.1").
		Return(sysexec.Result{Stdout: " OK!"}, nil)

	gw, store := newTestGateway(t, runner, elevated)
	err := gw.AddRoute(context.Background(), AddRequest{
		Destination:   "10.20.0.0",
		Mask:          "255.255.0.0",
		Gateway:       "192.168.1.1",
		InterfaceName: "Ethernet0",
	})
	require.NoError(t, err)
	runner.AssertExpectations(t)

	recs := store.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "10.20.0.0", recs[0].Destination)
	assert.False(t, recs[0].Persistent)
	assert.Equal(t, "2025-03-14 09:26:53", recs[0].Timestamp)
}

func TestAddRoutePersistentUsesDashP(t *testing.T) {
	runner := new(sysexec.MockRunner)
	runner.On("Run", mock.Anything, "route", "-p", "add", "10.20.0.0", "mask", "255.255.0.0", "192.168.1.1").
		Return(sysexec.Result{}, nil)

	gw, store := newTestGateway(t, runner, elevated)
	err := gw.AddRoute(context.Background(), AddRequest{
		Destination: "10.20.0.0",
		Mask:        "255.255.0.0",
		Gateway:     "192.168.1.1",
		Persistent:  true,
		Confirmed:   true,
	})
	require.NoError(t, err)
	runner.AssertExpectations(t)
	assert.True(t, store.Records()[0].Persistent)
}

func TestAddRouteWithInterfaceIndex(t *testing.T) {
	runner := new(sysexec.MockRunner)
	runner.On("Run", mock.Anything, "route", "add", "10.20.0.0", "mask", "255.255.0.0", "192.168.1.1", "IF", "12").
		Return(sysexec.Result{}, nil)

	gw, _ := newTestGateway(t, runner, elevated)
	err := gw.AddRoute(context.Background(), AddRequest{
		Destination:    "10.20.0.0",
		Mask:           "255.255.0.0",
		Gateway:        "192.168.1.1",
		InterfaceIndex: "12",
	})
	require.NoError(t, err)
	runner.AssertExpectations(t)
}

func TestAddRoutePersistentRequiresConfirmation(t *testing.T) {
	runner := new(sysexec.MockRunner)
	gw, store := newTestGateway(t, runner, elevated)

	err := gw.AddRoute(context.Background(), AddRequest{
		Destination: "10.20.0.0",
		Mask:        "255.255.0.0",
		Gateway:     "192.168.1.1",
		Persistent:  true,
	})
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	assert.Empty(t, store.Records())
}

func TestAddRouteRequiresElevation(t *testing.T) {
	runner := new(sysexec.MockRunner)
	gw, store := newTestGateway(t, runner, notElevated)

	err := gw.AddRoute(context.Background(), AddRequest{
		Destination: "10.20.0.0",
		Mask:        "255.255.0.0",
		Gateway:     "192.168.1.1",
	})

	var permErr *PermissionError
	require.ErrorAs(t, err, &permErr)
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	assert.Empty(t, store.Records())
}

func TestAddRouteValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   AddRequest
		field string
	}{
		{
			name:  "bad destination",
			req:   AddRequest{Destination: "300.1.1.1", Mask: "255.0.0.0", Gateway: "192.168.1.1"},
			field: "destination",
		},
		{
			name:  "non-contiguous mask",
			req:   AddRequest{Destination: "10.0.0.0", Mask: "255.0.255.0", Gateway: "192.168.1.1"},
			field: "mask",
		},
		{
			name:  "missing gateway",
			req:   AddRequest{Destination: "10.0.0.0", Mask: "255.0.0.0"},
			field: "gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := new(sysexec.MockRunner)
			gw, store := newTestGateway(t, runner, elevated)

			err := gw.AddRoute(context.Background(), tt.req)

			var vErr *validation.Error
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
			assert.Empty(t, store.Records())
		})
	}
}

func TestAddRouteCommandFailureSkipsLedger(t *testing.T) {
	runner := new(sysexec.MockRunner)
	runner.On("Run", mock.Anything, "route", "add", "10.20.0.0", "mask", "255.255.0.0", "192.168.1.1").
		Return(sysexec.Result{Stderr: "The route addition failed: Access is denied.", ExitCode: 1}, nil)

	gw, store := newTestGateway(t, runner, elevated)
	err := gw.AddRoute(context.Background(), AddRequest{
		Destination: "10.20.0.0",
		Mask:        "255.255.0.0",
		Gateway:     "192.168.1.1",
	})

	var execErr *sysexec.ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Contains(t, execErr.Error(), "Access is denied")
	assert.Empty(t, store.Records())
}

func TestAddRouteRunnerErrorSkipsLedger(t *testing.T) {
	runner := new(sysexec.MockRunner)
	runner.On("Run", mock.Anything, "route", "add", "10.20.0.0", "mask", "255.255.0.0", "192.168.1.1").
		Return(sysexec.Result{}, errors.New("spawn failed"))

	gw, store := newTestGateway(t, runner, elevated)
	err := gw.AddRoute(context.Background(), AddRequest{
		Destination: "10.20.0.0",
		Mask:        "255.255.0.0",
		Gateway:     "192.168.1.1",
	})
	require.Error(t, err)
	assert.Empty(t, store.Records())
}

func TestDeleteRoute(t *testing.T) {
	runner := new(sysexec.MockRunner)
	runner.On("Run", mock.Anything, "route", "delete", "10.20.0.0").
		Return(sysexec.Result{}, nil)

	gw, _ := newTestGateway(t, runner, elevated)
	err := gw.DeleteRoute(context.Background(), "10.20.0.0", true)
	require.NoError(t, err)
	runner.AssertExpectations(t)
}

func TestDeleteRouteRequiresConfirmation(t *testing.T) {
	runner := new(sysexec.MockRunner)
	gw, _ := newTestGateway(t, runner, elevated)

	err := gw.DeleteRoute(context.Background(), "10.20.0.0", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestDeleteRouteLeavesLedgerAlone(t *testing.T) {
	addRunner := new(sysexec.MockRunner)
	addRunner.On("Run", mock.Anything, "route", "add", "10.20.0.0", "mask", "255.255.0.0", "192.168.1.1").
		Return(sysexec.Result{}, nil)
	addRunner.On("Run", mock.Anything, "route", "delete", "10.20.0.0").
		Return(sysexec.Result{}, nil)

	gw, store := newTestGateway(t, addRunner, elevated)
	require.NoError(t, gw.AddRoute(context.Background(), AddRequest{
		Destination: "10.20.0.0",
		Mask:        "255.255.0.0",
		Gateway:     "192.168.1.1",
	}))
	require.NoError(t, gw.DeleteRoute(context.Background(), "10.20.0.0", true))

	// History records what was added, not what currently exists.
	assert.Len(t, store.Records(), 1)
}

func TestDeleteRouteValidatesDestination(t *testing.T) {
	runner := new(sysexec.MockRunner)
	gw, _ := newTestGateway(t, runner, elevated)

	err := gw.DeleteRoute(context.Background(), "not-an-ip", true)
	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}
