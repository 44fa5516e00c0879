package netcfg

import (
	"context"
	"fmt"

	"github.com/slate-integrations/ipman/internal/sysexec"
	"github.com/slate-integrations/ipman/internal/validation"
)

// PermissionError means the process lacks elevation for a configuration
// change.
type PermissionError struct {
	Op string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s requires administrator privileges", e.Op)
}

func (s *Service) netsh(ctx context.Context, args ...string) error {
	res, err := s.runner.Run(ctx, s.netshCmd, args...)
	if err != nil {
		return err
	}
	if !res.Ok() {
		return sysexec.NewExitError(sysexec.CommandLine(s.netshCmd, args), res)
	}
	return nil
}

// EnableDHCP switches the named interface to DHCP addressing and DHCP
// DNS in one operation, matching what the adapter form offers.
func (s *Service) EnableDHCP(ctx context.Context, iface string) error {
	if !s.elevated() {
		return &PermissionError{Op: "changing interface addressing"}
	}
	if err := s.netsh(ctx, "interface", "ip", "set", "address", iface, "dhcp"); err != nil {
		return err
	}
	err := s.netsh(ctx, "interface", "ip", "set", "dns", iface, "dhcp")
	if err == nil {
		s.log.Info("interface switched to dhcp", "interface", iface)
	}
	return err
}

// StaticConfig is a full static IPv4 assignment. SecondaryDNS is
// optional; everything else is required.
type StaticConfig struct {
	IPAddress    string
	Netmask      string
	Gateway      string
	PrimaryDNS   string
	SecondaryDNS string
}

func (c StaticConfig) validate() error {
	if err := validation.CheckIPv4("ip address", c.IPAddress); err != nil {
		return err
	}
	if err := validation.CheckSubnetMask("netmask", c.Netmask); err != nil {
		return err
	}
	if err := validation.CheckIPv4("gateway", c.Gateway); err != nil {
		return err
	}
	if err := validation.CheckIPv4("primary dns", c.PrimaryDNS); err != nil {
		return err
	}
	if c.SecondaryDNS != "" {
		if err := validation.CheckIPv4("secondary dns", c.SecondaryDNS); err != nil {
			return err
		}
	}
	return nil
}

// SetStatic applies a static configuration to the named interface:
// address first, then DNS. A DNS failure after a successful address
// change is returned as-is; the address change is not rolled back.
func (s *Service) SetStatic(ctx context.Context, iface string, cfg StaticConfig) error {
	if !s.elevated() {
		return &PermissionError{Op: "changing interface addressing"}
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	if err := s.netsh(ctx, "interface", "ip", "set", "address",
		iface, "static", cfg.IPAddress, cfg.Netmask, cfg.Gateway); err != nil {
		return err
	}

	if err := s.netsh(ctx, "interface", "ip", "set", "dns",
		iface, "static", cfg.PrimaryDNS); err != nil {
		return err
	}
	if cfg.SecondaryDNS != "" {
		if err := s.netsh(ctx, "interface", "ip", "add", "dns",
			iface, cfg.SecondaryDNS, "index=2"); err != nil {
			return err
		}
	}

	s.log.Info("interface set to static",
		"interface", iface, "ip", cfg.IPAddress, "gateway", cfg.Gateway)
	return nil
}
