package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/slate-integrations/ipman/cmd"
	"github.com/slate-integrations/ipman/internal/config"
	"github.com/slate-integrations/ipman/internal/netcfg"
	"github.com/slate-integrations/ipman/internal/serialconsole"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "tui":
		flags := flag.NewFlagSet("tui", flag.ExitOnError)
		configFile := configFlag(flags)
		flags.Parse(os.Args[2:])
		err = cmd.RunTui(*configFile)

	case "routes":
		flags := flag.NewFlagSet("routes", flag.ExitOnError)
		configFile := configFlag(flags)
		filter := flags.String("filter", "all", "Show all, persistent or temporary routes")
		flags.Parse(os.Args[2:])
		err = cmd.RunRoutes(*configFile, *filter)

	case "add":
		flags := flag.NewFlagSet("add", flag.ExitOnError)
		configFile := configFlag(flags)
		var opts cmd.AddOptions
		flags.StringVar(&opts.Destination, "dest", "", "Destination network (required)")
		flags.StringVar(&opts.Mask, "mask", "", "Subnet mask (required)")
		flags.StringVar(&opts.Gateway, "gateway", "", "Gateway address (required)")
		flags.StringVar(&opts.InterfaceIndex, "if", "", "Interface index (optional)")
		flags.BoolVar(&opts.Persistent, "p", false, "Make the route persistent across reboots")
		flags.BoolVar(&opts.Yes, "yes", false, "Confirm the operation")
		flags.Parse(os.Args[2:])
		err = cmd.RunAdd(*configFile, opts)

	case "delete":
		flags := flag.NewFlagSet("delete", flag.ExitOnError)
		configFile := configFlag(flags)
		dest := flags.String("dest", "", "Destination network (required)")
		yes := flags.Bool("yes", false, "Confirm the operation")
		flags.Parse(os.Args[2:])
		err = cmd.RunDelete(*configFile, *dest, *yes)

	case "history":
		flags := flag.NewFlagSet("history", flag.ExitOnError)
		configFile := configFlag(flags)
		clear := flags.Bool("clear", false, "Clear the addition history")
		flags.Parse(os.Args[2:])
		err = cmd.RunHistory(*configFile, *clear)

	case "interfaces":
		flags := flag.NewFlagSet("interfaces", flag.ExitOnError)
		configFile := configFlag(flags)
		flags.Parse(os.Args[2:])
		err = cmd.RunInterfaces(*configFile)

	case "adapters":
		flags := flag.NewFlagSet("adapters", flag.ExitOnError)
		configFile := configFlag(flags)
		dhcp := flags.String("dhcp", "", "Switch the named interface to DHCP")
		static := flags.String("static", "", "Apply a static config to the named interface")
		ip := flags.String("ip", "", "Static IP address")
		mask := flags.String("mask", "", "Static subnet mask")
		gateway := flags.String("gateway", "", "Static default gateway")
		dns1 := flags.String("dns", "", "Primary DNS server")
		dns2 := flags.String("dns2", "", "Secondary DNS server (optional)")
		flags.Parse(os.Args[2:])

		switch {
		case *dhcp != "":
			err = cmd.RunAdapterDHCP(*configFile, *dhcp)
		case *static != "":
			err = cmd.RunAdapterStatic(*configFile, *static, netcfg.StaticConfig{
				IPAddress:    *ip,
				Netmask:      *mask,
				Gateway:      *gateway,
				PrimaryDNS:   *dns1,
				SecondaryDNS: *dns2,
			})
		default:
			err = cmd.RunAdapters(*configFile)
		}

	case "serial":
		flags := flag.NewFlagSet("serial", flag.ExitOnError)
		configFile := configFlag(flags)
		list := flags.Bool("list", false, "List serial ports and exit")
		var settings serialconsole.Settings
		flags.StringVar(&settings.Port, "port", "", "Serial port name (COM3, /dev/ttyUSB0)")
		flags.IntVar(&settings.BaudRate, "baud", 9600, "Baud rate")
		flags.IntVar(&settings.DataBits, "databits", 8, "Data bits")
		flags.StringVar(&settings.Parity, "parity", "none", "Parity: none, odd, even")
		flags.StringVar(&settings.StopBits, "stopbits", "1", "Stop bits: 1, 1.5, 2")
		flags.Parse(os.Args[2:])

		if *list {
			err = cmd.RunSerialList()
		} else {
			err = cmd.RunSerial(*configFile, settings)
		}

	case "transfer":
		flags := flag.NewFlagSet("transfer", flag.ExitOnError)
		configFile := configFlag(flags)
		var opts cmd.TransferOptions
		flags.StringVar(&opts.Protocol, "protocol", "sftp", "Protocol: ftp, sftp, scp, tftp")
		flags.StringVar(&opts.Host, "host", "", "Target host (required)")
		flags.IntVar(&opts.Port, "port", 0, "Target port (0 = protocol default)")
		flags.StringVar(&opts.Username, "user", "", "Username")
		flags.StringVar(&opts.Password, "password", "", "Password")
		flags.BoolVar(&opts.Test, "test", false, "Test connectivity and exit")
		flags.BoolVar(&opts.Upload, "upload", false, "Upload local to remote (default is download)")
		flags.StringVar(&opts.LocalPath, "local", "", "Local file path (required)")
		flags.StringVar(&opts.RemotePath, "remote", "", "Remote file path (required)")
		flags.Parse(os.Args[2:])
		err = cmd.RunTransfer(*configFile, opts)

	case "init-config":
		flags := flag.NewFlagSet("init-config", flag.ExitOnError)
		path := flags.String("path", config.DefaultPath, "Where to write the config file")
		flags.Parse(os.Args[2:])
		err = cmd.RunInitConfig(*path)

	case "version":
		cmd.RunVersion()

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func configFlag(flags *flag.FlagSet) *string {
	return flags.String("config", config.DefaultPath, "Configuration file")
}

func printUsage() {
	fmt.Print(`ipman - IPv4 route and network manager

Usage: ipman <command> [flags]

Commands:
  tui          Interactive terminal interface
  routes       Print the route table (--filter all|persistent|temporary)
  add          Add a route (--dest --mask --gateway [--if] [-p] --yes)
  delete       Delete a route (--dest --yes)
  history      Show routes added by this tool (--clear)
  interfaces   List IPv4 interfaces
  adapters     Show adapters; --dhcp/--static to reconfigure one
  serial       Serial console (--list, --port, --baud)
  transfer     Copy files to/from devices (ftp, sftp, scp, tftp)
  init-config  Write a starter configuration file
  version      Print the version

Run 'ipman <command> -h' for command flags.
`)
}
