package netcfg

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/slate-integrations/ipman/internal/sysexec"
)

// Interface is one IPv4-capable interface as the OS reports it. Index is
// what the route tool's IF argument expects.
type Interface struct {
	Index     int
	Name      string
	IPv4      string
	Connected bool
}

const interfacesScript = `Get-NetIPInterface -AddressFamily IPv4 | ForEach-Object {
  $addr = Get-NetIPAddress -InterfaceIndex $_.ifIndex -AddressFamily IPv4 -ErrorAction SilentlyContinue
  [pscustomobject]@{
    ifIndex         = $_.ifIndex
    InterfaceAlias  = $_.InterfaceAlias
    ConnectionState = "$($_.ConnectionState)"
    IPv4            = "$($addr.IPAddress | Select-Object -First 1)"
  }
} | ConvertTo-Json`

type psInterface struct {
	Index int             `json:"ifIndex"`
	Alias string          `json:"InterfaceAlias"`
	State json.RawMessage `json:"ConnectionState"`
	IPv4  string          `json:"IPv4"`
}

// Interfaces lists IPv4 interfaces. PowerShell is tried first; if it is
// unavailable or its output cannot be decoded, the netsh listing is
// parsed instead.
func (s *Service) Interfaces(ctx context.Context) ([]Interface, error) {
	res, err := s.runPowerShell(ctx, interfacesScript)
	if err == nil && res.Ok() {
		items, decErr := decodeList[psInterface](([]byte)(res.Stdout))
		if decErr == nil {
			out := make([]Interface, 0, len(items))
			for _, it := range items {
				out = append(out, Interface{
					Index:     it.Index,
					Name:      it.Alias,
					IPv4:      it.IPv4,
					Connected: connectionUp(it.State),
				})
			}
			return out, nil
		}
		s.log.Warn("powershell interface listing undecodable, falling back to netsh", "error", decErr)
	} else {
		s.log.Warn("powershell interface listing failed, falling back to netsh", "error", err, "exit_code", res.ExitCode)
	}

	res, err = s.runner.Run(ctx, s.netshCmd, "interface", "ipv4", "show", "interfaces")
	if err != nil {
		return nil, err
	}
	if !res.Ok() {
		return nil, sysexec.NewExitError(s.netshCmd+" interface ipv4 show interfaces", res)
	}
	return parseNetshInterfaces(res.Stdout), nil
}

// connectionUp normalizes ConnectionState, which ConvertTo-Json renders
// as a number on some PowerShell versions and as a string on others.
func connectionUp(raw json.RawMessage) bool {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n == 1
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return strings.EqualFold(str, "Connected")
	}
	return false
}

// parseNetshInterfaces reads the fixed-column netsh listing:
//
//	Idx     Met         MTU          State                Name
//	---  ----------  ----------  ------------  -------------------------
//	  1          75  4294967295  connected     Loopback Pseudo-Interface 1
//
// Interface names may contain spaces, so everything after the state
// column belongs to the name.
func parseNetshInterfaces(output string) []Interface {
	var out []Interface
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			// Header and separator rows.
			continue
		}
		out = append(out, Interface{
			Index:     idx,
			Name:      strings.Join(fields[4:], " "),
			Connected: strings.EqualFold(fields[3], "connected"),
		})
	}
	return out
}
