package netcfg

import (
	"context"
	"fmt"

	"github.com/slate-integrations/ipman/internal/sysexec"
)

// Adapter is a physical or virtual network adapter with its current IPv4
// configuration attached.
type Adapter struct {
	Name       string   `json:"Name"`
	Status     string   `json:"Status"`
	Index      int      `json:"Index"`
	MacAddress string   `json:"MacAddress"`
	DHCP       bool     `json:"Dhcp"`
	IPAddress  string   `json:"IPAddress"`
	PrefixLen  int      `json:"PrefixLength"`
	Gateway    string   `json:"Gateway"`
	DNS        []string `json:"Dns"`
}

// Netmask renders the adapter's prefix length as a dotted-quad mask.
func (a Adapter) Netmask() string {
	p := a.PrefixLen
	if p < 0 || p > 32 {
		return ""
	}
	bits := uint32(0)
	if p > 0 {
		bits = ^uint32(0) << (32 - p)
	}
	return fmt.Sprintf("%d.%d.%d.%d", byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
}

// adaptersScript joins adapter identity with its IP configuration so one
// invocation answers everything the adapter view shows.
const adaptersScript = `Get-NetAdapter | ForEach-Object {
  $conf = Get-NetIPConfiguration -InterfaceIndex $_.ifIndex -ErrorAction SilentlyContinue
  $dhcp = Get-NetIPInterface -InterfaceIndex $_.ifIndex -AddressFamily IPv4 -ErrorAction SilentlyContinue
  [pscustomobject]@{
    Name         = $_.Name
    Status       = "$($_.Status)"
    Index        = $_.ifIndex
    MacAddress   = $_.MacAddress
    Dhcp         = ($dhcp.Dhcp -eq 'Enabled')
    IPAddress    = "$($conf.IPv4Address.IPAddress)"
    PrefixLength = [int]($conf.IPv4Address.PrefixLength | Select-Object -First 1)
    Gateway      = "$($conf.IPv4DefaultGateway.NextHop)"
    Dns          = @($conf.DNSServer | Where-Object { $_.AddressFamily -eq 2 } | ForEach-Object { $_.ServerAddresses })
  }
} | ConvertTo-Json -Depth 3`

// Adapters lists adapters with their IPv4 configuration. Unlike
// Interfaces there is no netsh fallback; the adapter view simply needs
// PowerShell.
func (s *Service) Adapters(ctx context.Context) ([]Adapter, error) {
	res, err := s.runPowerShell(ctx, adaptersScript)
	if err != nil {
		return nil, err
	}
	if !res.Ok() {
		return nil, sysexec.NewExitError(s.psCmd+" Get-NetAdapter", res)
	}
	return decodeList[Adapter]([]byte(res.Stdout))
}
