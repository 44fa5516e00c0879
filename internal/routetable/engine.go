package routetable

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/slate-integrations/ipman/internal/clock"
	"github.com/slate-integrations/ipman/internal/logging"
	"github.com/slate-integrations/ipman/internal/metrics"
	"github.com/slate-integrations/ipman/internal/sysexec"
)

// DefaultPollInterval is the auto-refresh cadence.
const DefaultPollInterval = 2 * time.Second

// Engine owns the route snapshot. A single worker goroutine runs the
// fetch/parse/classify cycle on a polling cadence; manual refresh
// requests coalesce into a buffered-1 channel, so at most one cycle is
// ever in flight and a request arriving mid-cycle triggers exactly one
// follow-up cycle instead of a concurrent one.
type Engine struct {
	runner   sysexec.Runner
	log      *logging.Logger
	clk      clock.Clock
	interval time.Duration
	routeCmd string

	snapshot atomic.Pointer[Snapshot]
	refresh  chan struct{}

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithPollInterval overrides the poll cadence.
func WithPollInterval(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithRouteCommand overrides the route tool binary name.
func WithRouteCommand(cmd string) EngineOption {
	return func(e *Engine) {
		if cmd != "" {
			e.routeCmd = cmd
		}
	}
}

// WithClock injects a mockable clock.
func WithClock(clk clock.Clock) EngineOption {
	return func(e *Engine) {
		e.clk = clk
	}
}

// NewEngine creates an engine reading the route table through runner.
func NewEngine(runner sysexec.Runner, log *logging.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		runner:   runner,
		log:      log.WithComponent("routetable"),
		clk:      &clock.RealClock{},
		interval: DefaultPollInterval,
		routeCmd: "route",
		refresh:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.snapshot.Store(&Snapshot{})
	return e
}

// Start launches the poll worker. The first cycle runs immediately so
// callers have data as soon as possible. Start is idempotent while
// running.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})
	e.running = true

	go e.run(ctx)
	e.log.Info("poll worker started", "interval", e.interval)
}

// Stop cancels the worker and waits for any in-flight cycle to finish.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	cancel, done := e.cancel, e.done
	e.mu.Unlock()

	cancel()
	<-done
	e.log.Info("poll worker stopped")
}

// Refresh requests an immediate cycle. If one is already pending or in
// flight the request coalesces; it never starts a concurrent cycle and
// never blocks.
func (e *Engine) Refresh() {
	select {
	case e.refresh <- struct{}{}:
	default:
	}
}

// RefreshNow runs one synchronous cycle on the caller's goroutine. Used
// by one-shot CLI commands that have no worker running.
func (e *Engine) RefreshNow(ctx context.Context) {
	e.cycle(ctx)
}

// Snapshot returns the current published snapshot. The returned value is
// immutable; callers may hold it as long as they like.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Filter returns the routes in the given category, in table order.
// Unknown routes appear only under CategoryAll.
func (e *Engine) Filter(category Category) []Route {
	snap := e.Snapshot()
	if category == CategoryAll {
		out := make([]Route, len(snap.Routes))
		copy(out, snap.Routes)
		return out
	}

	want := PersistenceYes
	if category == CategoryTemporary {
		want = PersistenceNo
	}

	var out []Route
	for _, r := range snap.Routes {
		if r.Persistence == want {
			out = append(out, r)
		}
	}
	return out
}

// Counts recomputes category totals from the current snapshot.
func (e *Engine) Counts() Counts {
	snap := e.Snapshot()
	c := Counts{All: len(snap.Routes)}
	for _, r := range snap.Routes {
		switch r.Persistence {
		case PersistenceYes:
			c.Persistent++
		case PersistenceNo:
			c.Temporary++
		}
	}
	return c
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.done)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	// Prime the snapshot before the first tick.
	e.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-e.refresh:
		}
		e.cycle(ctx)
	}
}

// cycle runs one fetch/parse/classify/publish pass. Any fetch failure
// aborts the cycle and keeps the previous snapshot; the failure is
// visible in the audit log but never to snapshot readers.
func (e *Engine) cycle(ctx context.Context) {
	res, err := e.runner.Run(ctx, e.routeCmd, "print", "-4")
	if err != nil {
		metrics.PollFailures.Inc()
		e.log.Warn("route table fetch failed", "error", err)
		return
	}
	if !res.Ok() {
		metrics.PollFailures.Inc()
		e.log.Warn("route table fetch exited non-zero", "exit_code", res.ExitCode)
		return
	}

	routes, persistent := ParseRouteTable(res.Stdout)
	classified := ClassifyAll(routes, persistent)

	e.snapshot.Store(&Snapshot{
		Routes: classified,
		Taken:  e.clk.Now(),
	})
	metrics.PollCycles.Inc()
	e.log.Debug("snapshot published", "routes", len(classified), "persistent", len(persistent))
}
