//go:build !windows

package serialconsole

// listPortsFallback has no registry to consult off Windows.
func listPortsFallback() []PortInfo {
	return nil
}
