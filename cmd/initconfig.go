package cmd

import (
	"fmt"

	"github.com/slate-integrations/ipman/internal/config"
)

// RunInitConfig writes a starter configuration file.
func RunInitConfig(path string) error {
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
