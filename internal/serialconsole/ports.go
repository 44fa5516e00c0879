// Package serialconsole provides an interactive serial terminal for
// talking to network equipment consoles. Port discovery prefers the
// OS enumeration API and falls back to the registry on Windows hosts
// where enumeration fails.
package serialconsole

import (
	"fmt"

	"go.bug.st/serial/enumerator"
)

// PortInfo describes a discovered serial port.
type PortInfo struct {
	Name    string
	Product string
	IsUSB   bool
}

// Label renders the port for pickers: "COM3 (USB Serial Device)".
func (p PortInfo) Label() string {
	if p.Product == "" {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.Product)
}

// ListPorts enumerates serial ports with device details.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		if fallback := listPortsFallback(); len(fallback) > 0 {
			return fallback, nil
		}
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}

	out := make([]PortInfo, 0, len(details))
	for _, d := range details {
		out = append(out, PortInfo{
			Name:    d.Name,
			Product: d.Product,
			IsUSB:   d.IsUSB,
		})
	}
	return out, nil
}
