// Package config handles the program's HCL configuration file. A
// missing file is not an error; every setting has a default the tool
// can run with.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// DefaultPath is where the tool looks when no --config flag is given.
const DefaultPath = "ipman.hcl"

// Config is the full tool configuration.
type Config struct {
	// PollInterval is how often the route table view refreshes, as a
	// duration string ("2s").
	PollInterval string `hcl:"poll_interval,optional"`
	// LedgerPath is the route addition history file.
	LedgerPath string `hcl:"ledger_path,optional"`
	// AuditLog is the command audit trail file.
	AuditLog string `hcl:"audit_log,optional"`

	LogLevel string `hcl:"log_level,optional"`
	LogJSON  bool   `hcl:"log_json,optional"`

	// MetricsListen enables the Prometheus endpoint when non-empty
	// ("127.0.0.1:9090").
	MetricsListen string `hcl:"metrics_listen,optional"`

	Commands *Commands `hcl:"commands,block"`
}

// Commands overrides the external tool binaries, mostly useful for
// testing against fakes.
type Commands struct {
	Route      string `hcl:"route,optional"`
	Netsh      string `hcl:"netsh,optional"`
	PowerShell string `hcl:"powershell,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PollInterval: "2s",
		LedgerPath:   "added_routes.json",
		AuditLog:     "route_audit.log",
		LogLevel:     "info",
		Commands: &Commands{
			Route:      "route",
			Netsh:      "netsh",
			PowerShell: "powershell",
		},
	}
}

// Load reads the config at path. A missing file yields the defaults;
// a present but invalid file is an error, never silently ignored.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.applyFallbacks()
	return cfg, nil
}

// applyFallbacks restores defaults for fields the file left empty.
func (c *Config) applyFallbacks() {
	d := Default()
	if c.PollInterval == "" {
		c.PollInterval = d.PollInterval
	}
	if c.LedgerPath == "" {
		c.LedgerPath = d.LedgerPath
	}
	if c.AuditLog == "" {
		c.AuditLog = d.AuditLog
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Commands == nil {
		c.Commands = d.Commands
		return
	}
	if c.Commands.Route == "" {
		c.Commands.Route = d.Commands.Route
	}
	if c.Commands.Netsh == "" {
		c.Commands.Netsh = d.Commands.Netsh
	}
	if c.Commands.PowerShell == "" {
		c.Commands.PowerShell = d.Commands.PowerShell
	}
}

// Interval parses PollInterval, falling back to the default on garbage.
func (c *Config) Interval() time.Duration {
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}

// WriteDefault writes a commented starter config to path. Refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	d := Default()
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("poll_interval", cty.StringVal(d.PollInterval))
	body.SetAttributeValue("ledger_path", cty.StringVal(d.LedgerPath))
	body.SetAttributeValue("audit_log", cty.StringVal(d.AuditLog))
	body.SetAttributeValue("log_level", cty.StringVal(d.LogLevel))
	body.AppendNewline()

	cmds := body.AppendNewBlock("commands", nil).Body()
	cmds.SetAttributeValue("route", cty.StringVal(d.Commands.Route))
	cmds.SetAttributeValue("netsh", cty.StringVal(d.Commands.Netsh))
	cmds.SetAttributeValue("powershell", cty.StringVal(d.Commands.PowerShell))

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, f.Bytes(), 0o644)
}
