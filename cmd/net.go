package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/slate-integrations/ipman/internal/netcfg"
)

// RunInterfaces lists IPv4 interfaces with their OS index.
func RunInterfaces(configPath string) error {
	app, err := NewApp(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	ifaces, err := app.Net.Interfaces(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tIPV4\tSTATE")
	for _, it := range ifaces {
		state := "Disconnected"
		if it.Connected {
			state = "Connected"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", it.Index, it.Name, it.IPv4, state)
	}
	return w.Flush()
}

// RunAdapters lists adapters with their IPv4 configuration.
func RunAdapters(configPath string) error {
	app, err := NewApp(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	adapters, err := app.Net.Adapters(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATUS\tMODE\tIP\tNETMASK\tGATEWAY\tDNS")
	for _, a := range adapters {
		mode := "Static"
		if a.DHCP {
			mode = "DHCP"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.Name, a.Status, mode, a.IPAddress, a.Netmask(), a.Gateway,
			strings.Join(a.DNS, ","))
	}
	return w.Flush()
}

// RunAdapterDHCP switches an interface to DHCP.
func RunAdapterDHCP(configPath, iface string) error {
	app, err := NewApp(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Net.EnableDHCP(context.Background(), iface); err != nil {
		return err
	}
	fmt.Printf("%s switched to DHCP\n", iface)
	return nil
}

// RunAdapterStatic applies a static IPv4 configuration to an interface.
func RunAdapterStatic(configPath, iface string, cfg netcfg.StaticConfig) error {
	app, err := NewApp(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Net.SetStatic(context.Background(), iface, cfg); err != nil {
		return err
	}
	fmt.Printf("%s configured: %s/%s via %s\n", iface, cfg.IPAddress, cfg.Netmask, cfg.Gateway)
	return nil
}
