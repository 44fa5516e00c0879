// Package cmd implements the ipman subcommands. Each RunX function is
// invoked from main after flag parsing and owns its own exit semantics
// via returned errors.
package cmd

import (
	"context"
	"os"

	"github.com/slate-integrations/ipman/internal/audit"
	"github.com/slate-integrations/ipman/internal/clock"
	"github.com/slate-integrations/ipman/internal/config"
	"github.com/slate-integrations/ipman/internal/ledger"
	"github.com/slate-integrations/ipman/internal/logging"
	"github.com/slate-integrations/ipman/internal/metrics"
	"github.com/slate-integrations/ipman/internal/netcfg"
	"github.com/slate-integrations/ipman/internal/privilege"
	"github.com/slate-integrations/ipman/internal/routetable"
	"github.com/slate-integrations/ipman/internal/serialconsole"
	"github.com/slate-integrations/ipman/internal/sysexec"
)

// App holds everything the subcommands share, wired once from the
// config file.
type App struct {
	Config  *config.Config
	Log     *logging.Logger
	Runner  sysexec.Runner
	Ledger  *ledger.Store
	Engine  *routetable.Engine
	Gateway *routetable.Gateway
	Net     *netcfg.Service

	stopMetrics context.CancelFunc
}

// NewApp loads configuration and wires the application. Every command
// the app issues flows through the audited runner, so the audit trail
// is complete regardless of which subcommand ran it.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Output: os.Stderr,
		JSON:   cfg.LogJSON,
	})
	logging.SetDefault(log)

	clk := &clock.RealClock{}
	auditLog := audit.New(cfg.AuditLog, clk, log)
	runner := sysexec.NewAuditedRunner(&sysexec.ExecRunner{}, auditLog)

	store, err := ledger.Open(cfg.LedgerPath, log)
	if err != nil {
		return nil, err
	}

	engine := routetable.NewEngine(runner, log,
		routetable.WithPollInterval(cfg.Interval()),
		routetable.WithRouteCommand(cfg.Commands.Route),
	)

	gateway := routetable.NewGateway(runner, store, engine, privilege.IsElevated, clk, log)
	gateway.SetRouteCommand(cfg.Commands.Route)

	net := netcfg.NewService(runner, privilege.IsElevated, log)
	net.SetCommands(cfg.Commands.PowerShell, cfg.Commands.Netsh)

	app := &App{
		Config:  cfg,
		Log:     log,
		Runner:  runner,
		Ledger:  store,
		Engine:  engine,
		Gateway: gateway,
		Net:     net,
	}

	if cfg.MetricsListen != "" {
		ctx, cancel := context.WithCancel(context.Background())
		app.stopMetrics = cancel
		go metrics.Serve(ctx, cfg.MetricsListen, log)
	}

	return app, nil
}

// Close stops background work.
func (a *App) Close() {
	a.Engine.Stop()
	if a.stopMetrics != nil {
		a.stopMetrics()
	}
}

// Backend methods for the TUI.

func (a *App) Snapshot() *routetable.Snapshot { return a.Engine.Snapshot() }

func (a *App) Filter(c routetable.Category) []routetable.Route { return a.Engine.Filter(c) }

func (a *App) Counts() routetable.Counts { return a.Engine.Counts() }

func (a *App) Refresh() { a.Engine.Refresh() }

func (a *App) AddRoute(ctx context.Context, req routetable.AddRequest) error {
	return a.Gateway.AddRoute(ctx, req)
}

func (a *App) DeleteRoute(ctx context.Context, destination string, confirmed bool) error {
	return a.Gateway.DeleteRoute(ctx, destination, confirmed)
}

func (a *App) Interfaces(ctx context.Context) ([]netcfg.Interface, error) {
	return a.Net.Interfaces(ctx)
}

func (a *App) Adapters(ctx context.Context) ([]netcfg.Adapter, error) {
	return a.Net.Adapters(ctx)
}

func (a *App) History() []ledger.Record { return a.Ledger.Records() }

func (a *App) ClearHistory() error { return a.Ledger.Clear() }

func (a *App) SerialPorts() ([]serialconsole.PortInfo, error) {
	return serialconsole.ListPorts()
}
