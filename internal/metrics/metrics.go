// Package metrics exposes Prometheus counters for the poll loop and the
// mutation path, plus an optional /metrics HTTP listener.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/slate-integrations/ipman/internal/logging"
)

var (
	// PollCycles counts completed route-table refresh cycles.
	PollCycles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ipman",
		Name:      "poll_cycles_total",
		Help:      "Route table refresh cycles that published a snapshot.",
	})

	// PollFailures counts refresh cycles aborted on a fetch failure.
	PollFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ipman",
		Name:      "poll_failures_total",
		Help:      "Route table refresh cycles that kept the stale snapshot.",
	})

	// CommandRuns counts external command invocations.
	CommandRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ipman",
		Name:      "command_runs_total",
		Help:      "External commands executed through the audited runner.",
	})

	// CommandFailures counts invocations that spawned badly, timed out
	// or exited non-zero.
	CommandFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ipman",
		Name:      "command_failures_total",
		Help:      "External command invocations that failed.",
	})

	// RoutesAdded counts successful route additions.
	RoutesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ipman",
		Name:      "routes_added_total",
		Help:      "Routes added through the mutation gateway.",
	})

	// RoutesDeleted counts successful route deletions.
	RoutesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ipman",
		Name:      "routes_deleted_total",
		Help:      "Routes deleted through the mutation gateway.",
	})
)

// Serve exposes /metrics on addr until ctx is cancelled. Errors other
// than a clean shutdown are returned.
func Serve(ctx context.Context, addr string, log *logging.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics listener started", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
