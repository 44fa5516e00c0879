package cmd

import "fmt"

// Version is stamped at build time via -ldflags.
var Version = "dev"

// RunVersion prints the program version.
func RunVersion() {
	fmt.Printf("ipman %s\n", Version)
}
