package routetable

import (
	"context"

	"github.com/slate-integrations/ipman/internal/clock"
	"github.com/slate-integrations/ipman/internal/ledger"
	"github.com/slate-integrations/ipman/internal/logging"
	"github.com/slate-integrations/ipman/internal/metrics"
	"github.com/slate-integrations/ipman/internal/sysexec"
	"github.com/slate-integrations/ipman/internal/validation"
)

// Gateway validates and issues route mutations. All checks run before
// any command: privilege, then field validation, then confirmation.
// Nothing that fails those checks ever reaches the runner (or the audit
// log).
type Gateway struct {
	runner   sysexec.Runner
	ledger   *ledger.Store
	engine   *Engine
	elevated func() bool
	clk      clock.Clock
	log      *logging.Logger
	routeCmd string
}

// NewGateway wires a mutation gateway. elevated is the privilege probe;
// engine may not be nil (successful mutations force a refresh through
// it).
func NewGateway(runner sysexec.Runner, store *ledger.Store, engine *Engine, elevated func() bool, clk clock.Clock, log *logging.Logger) *Gateway {
	if clk == nil {
		clk = &clock.RealClock{}
	}
	return &Gateway{
		runner:   runner,
		ledger:   store,
		engine:   engine,
		elevated: elevated,
		clk:      clk,
		log:      log.WithComponent("gateway"),
		routeCmd: "route",
	}
}

// SetRouteCommand overrides the route tool binary name.
func (g *Gateway) SetRouteCommand(cmd string) {
	if cmd != "" {
		g.routeCmd = cmd
	}
}

// AddRequest describes a route addition.
type AddRequest struct {
	Destination    string
	Mask           string
	Gateway        string
	InterfaceIndex string // numeric OS interface index, optional
	InterfaceName  string // human label recorded in the ledger
	Persistent     bool
	Confirmed      bool // required when Persistent
}

// AddRoute validates req, issues the add command and, on success,
// appends a ledger record and triggers an engine refresh. A ledger write
// failure is returned to the caller, but the OS-level route change is
// not rolled back.
func (g *Gateway) AddRoute(ctx context.Context, req AddRequest) error {
	if !g.elevated() {
		return &PermissionError{Op: "adding a route"}
	}

	if err := validation.CheckIPv4("destination", req.Destination); err != nil {
		return err
	}
	if err := validation.CheckSubnetMask("mask", req.Mask); err != nil {
		return err
	}
	if err := validation.CheckIPv4("gateway", req.Gateway); err != nil {
		return err
	}

	if req.Persistent && !req.Confirmed {
		return ErrConfirmationRequired
	}

	args := []string{"add"}
	if req.Persistent {
		args = []string{"-p", "add"}
	}
	args = append(args, req.Destination, "mask", req.Mask, req.Gateway)
	if req.InterfaceIndex != "" {
		args = append(args, "IF", req.InterfaceIndex)
	}

	res, err := g.runner.Run(ctx, g.routeCmd, args...)
	if err != nil {
		return err
	}
	if !res.Ok() {
		return sysexec.NewExitError(sysexec.CommandLine(g.routeCmd, args), res)
	}

	metrics.RoutesAdded.Inc()
	g.log.Info("route added",
		"destination", req.Destination,
		"gateway", req.Gateway,
		"persistent", req.Persistent)

	record := ledger.Record{
		Destination: req.Destination,
		Mask:        req.Mask,
		Gateway:     req.Gateway,
		Interface:   req.InterfaceName,
		Persistent:  req.Persistent,
		Timestamp:   g.clk.Now().Format(clock.Stamp),
	}
	appendErr := g.ledger.Append(record)

	g.engine.Refresh()

	// The route is live even if the history write failed; surface the
	// write failure without undoing the add.
	return appendErr
}

// DeleteRoute validates and issues a delete. The ledger is pure history
// and is deliberately left untouched.
func (g *Gateway) DeleteRoute(ctx context.Context, destination string, confirmed bool) error {
	if !g.elevated() {
		return &PermissionError{Op: "deleting a route"}
	}
	if err := validation.CheckIPv4("destination", destination); err != nil {
		return err
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	args := []string{"delete", destination}
	res, err := g.runner.Run(ctx, g.routeCmd, args...)
	if err != nil {
		return err
	}
	if !res.Ok() {
		return sysexec.NewExitError(sysexec.CommandLine(g.routeCmd, args), res)
	}

	metrics.RoutesDeleted.Inc()
	g.log.Info("route deleted", "destination", destination)

	g.engine.Refresh()
	return nil
}
