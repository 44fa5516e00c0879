//go:build windows

package serialconsole

import (
	"golang.org/x/sys/windows/registry"
)

// listPortsFallback reads HKLM\HARDWARE\DEVICEMAP\SERIALCOMM, which maps
// driver names to COM port names. It survives on stripped-down systems
// where SetupAPI enumeration does not.
func listPortsFallback() []PortInfo {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, `HARDWARE\DEVICEMAP\SERIALCOMM`, registry.QUERY_VALUE)
	if err != nil {
		return nil
	}
	defer key.Close()

	names, err := key.ReadValueNames(0)
	if err != nil {
		return nil
	}

	var out []PortInfo
	for _, name := range names {
		port, _, err := key.GetStringValue(name)
		if err != nil {
			continue
		}
		out = append(out, PortInfo{Name: port})
	}
	return out
}
