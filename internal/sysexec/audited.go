package sysexec

import (
	"context"

	"github.com/slate-integrations/ipman/internal/audit"
	"github.com/slate-integrations/ipman/internal/metrics"
)

// AuditedRunner wraps another Runner and records every invocation,
// successful or not, to the audit log before returning.
type AuditedRunner struct {
	next Runner
	log  *audit.Log
}

// NewAuditedRunner decorates next with audit logging.
func NewAuditedRunner(next Runner, log *audit.Log) *AuditedRunner {
	return &AuditedRunner{next: next, log: log}
}

// Run executes the command through the wrapped runner and appends an
// audit entry. Success means the process spawned, finished in time and
// exited zero.
func (r *AuditedRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	res, err := r.next.Run(ctx, name, args...)

	success := err == nil && res.Ok()
	metrics.CommandRuns.Inc()
	if !success {
		metrics.CommandFailures.Inc()
	}

	entry := audit.Entry{
		Command: CommandLine(name, args),
		Stdout:  res.Stdout,
		Stderr:  res.Stderr,
		Success: success,
	}
	if err != nil && entry.Stderr == "" {
		entry.Stderr = err.Error()
	}
	r.log.Record(entry)

	return res, err
}
