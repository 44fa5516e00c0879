package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/slate-integrations/ipman/internal/routetable"
	"github.com/slate-integrations/ipman/internal/tui"
)

// RunTui starts the interactive terminal interface.
func RunTui(configPath string) error {
	app, err := NewApp(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Engine.Start(context.Background())
	return tui.Run(app)
}

// RunRoutes prints the route table once and exits. filter is "all",
// "persistent" or "temporary".
func RunRoutes(configPath, filter string) error {
	app, err := NewApp(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	var category routetable.Category
	switch filter {
	case "", "all":
		category = routetable.CategoryAll
	case "persistent":
		category = routetable.CategoryPersistent
	case "temporary":
		category = routetable.CategoryTemporary
	default:
		return fmt.Errorf("unknown filter %q (want all, persistent or temporary)", filter)
	}

	app.Engine.RefreshNow(context.Background())

	routes := app.Engine.Filter(category)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DESTINATION\tNETMASK\tGATEWAY\tINTERFACE\tMETRIC\tPERSISTENT")
	for _, r := range routes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Destination, r.Netmask, r.Gateway, r.Interface, r.Metric, r.Persistence)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	c := app.Engine.Counts()
	fmt.Printf("\n%d routes (%d persistent, %d temporary)\n", c.All, c.Persistent, c.Temporary)
	return nil
}

// AddOptions carries the add subcommand's flags.
type AddOptions struct {
	Destination    string
	Mask           string
	Gateway        string
	InterfaceIndex string
	Persistent     bool
	Yes            bool // skip the confirmation prompt
}

// RunAdd adds a route. Persistent adds need --yes; there is no
// interactive prompt in one-shot mode.
func RunAdd(configPath string, opts AddOptions) error {
	app, err := NewApp(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	err = app.Gateway.AddRoute(context.Background(), routetable.AddRequest{
		Destination:    opts.Destination,
		Mask:           opts.Mask,
		Gateway:        opts.Gateway,
		InterfaceIndex: opts.InterfaceIndex,
		Persistent:     opts.Persistent,
		Confirmed:      opts.Yes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Route to %s added\n", opts.Destination)
	return nil
}

// RunDelete deletes a route. Requires --yes; deletion is immediate and
// unrecoverable.
func RunDelete(configPath, destination string, yes bool) error {
	app, err := NewApp(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Gateway.DeleteRoute(context.Background(), destination, yes); err != nil {
		return err
	}

	fmt.Printf("Route to %s deleted\n", destination)
	return nil
}
