package cmd

import (
	"context"
	"fmt"

	"github.com/slate-integrations/ipman/internal/transfer"
)

// TransferOptions carries the transfer subcommand's flags.
type TransferOptions struct {
	Protocol string
	Host     string
	Port     int
	Username string
	Password string

	Test       bool // connectivity check only, no file moved
	Upload     bool // direction: true = local to remote
	LocalPath  string
	RemotePath string
}

// RunTransfer moves one file to or from a device.
func RunTransfer(configPath string, opts TransferOptions) error {
	app, err := NewApp(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	settings := transfer.Settings{
		Protocol: transfer.Protocol(opts.Protocol),
		Host:     opts.Host,
		Port:     opts.Port,
		Username: opts.Username,
		Password: opts.Password,
	}

	client, err := transfer.NewClient(settings, app.Log)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	if opts.Test {
		if err := client.Test(ctx); err != nil {
			return err
		}
		fmt.Printf("%s connection to %s OK\n", opts.Protocol, settings.Addr())
		return nil
	}
	if opts.Upload {
		if err := client.Upload(ctx, opts.LocalPath, opts.RemotePath); err != nil {
			return err
		}
		fmt.Printf("Uploaded %s to %s:%s\n", opts.LocalPath, opts.Host, opts.RemotePath)
		return nil
	}

	if err := client.Download(ctx, opts.RemotePath, opts.LocalPath); err != nil {
		return err
	}
	fmt.Printf("Downloaded %s:%s to %s\n", opts.Host, opts.RemotePath, opts.LocalPath)
	return nil
}
