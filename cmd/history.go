package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
)

// RunHistory prints the route addition ledger, or clears it.
func RunHistory(configPath string, clear bool) error {
	app, err := NewApp(configPath)
	if err != nil {
		return err
	}
	defer app.Close()

	if clear {
		if err := app.Ledger.Clear(); err != nil {
			return err
		}
		fmt.Println("History cleared")
		return nil
	}

	records := app.Ledger.Records()
	if len(records) == 0 {
		fmt.Println("No routes have been added by this tool")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tDESTINATION\tMASK\tGATEWAY\tINTERFACE\tPERSISTENT")
	for _, r := range records {
		persistent := "No"
		if r.Persistent {
			persistent = "Yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Timestamp, r.Destination, r.Mask, r.Gateway, r.Interface, persistent)
	}
	return w.Flush()
}
