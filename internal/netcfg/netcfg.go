// Package netcfg reads and changes host interface configuration. Reads
// go through PowerShell cmdlets emitting JSON, with a plain-text netsh
// fallback for hosts where PowerShell is restricted; writes always use
// netsh, whose syntax has been stable for decades.
package netcfg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/slate-integrations/ipman/internal/logging"
	"github.com/slate-integrations/ipman/internal/sysexec"
)

// Service issues discovery and configuration commands.
type Service struct {
	runner   sysexec.Runner
	log      *logging.Logger
	elevated func() bool
	psCmd    string
	netshCmd string
}

// NewService wires a network configuration service. elevated gates the
// mutating operations only; discovery never needs it.
func NewService(runner sysexec.Runner, elevated func() bool, log *logging.Logger) *Service {
	return &Service{
		runner:   runner,
		log:      log.WithComponent("netcfg"),
		elevated: elevated,
		psCmd:    "powershell",
		netshCmd: "netsh",
	}
}

// SetCommands overrides the tool binary names.
func (s *Service) SetCommands(powershell, netsh string) {
	if powershell != "" {
		s.psCmd = powershell
	}
	if netsh != "" {
		s.netshCmd = netsh
	}
}

func (s *Service) runPowerShell(ctx context.Context, script string) (sysexec.Result, error) {
	return s.runner.Run(ctx, s.psCmd, "-NoProfile", "-NonInteractive", "-Command", script)
}

// decodeList parses PowerShell ConvertTo-Json output, which emits a bare
// object instead of a one-element array when the pipeline produced a
// single item.
func decodeList[T any](data []byte) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var out []T
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return out, nil
	}
	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	return []T{one}, nil
}
