package routetable

import (
	"strings"

	"github.com/slate-integrations/ipman/internal/validation"
)

// Section markers in `route print -4` output. The format is positional
// and locale-sensitive; this parser is deliberately forgiving: anything
// it cannot understand is skipped, never an error.
const (
	activeMarker     = "Active Routes:"
	persistentMarker = "Persistent Routes:"
	columnHeader     = "Network Destination"
	noneToken        = "None"
)

// ParseRouteTable splits route-print output into active route rows and
// the set of persistent destinations. Row order is preserved and
// duplicate rows are kept. Both sections come from a single invocation
// of the route tool, so they describe the same instant.
func ParseRouteTable(output string) ([]Route, PersistentSet) {
	routes := parseActive(output)
	persistent := parsePersistent(output)
	return routes, persistent
}

// parseActive extracts rows between "Active Routes:" and
// "Persistent Routes:". A row needs at least five whitespace-separated
// fields and a destination that parses as IPv4; extra trailing fields
// (some localized builds append an extra column) are ignored.
func parseActive(output string) []Route {
	var routes []Route

	inActive := false
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, activeMarker) {
			inActive = true
			continue
		}
		if strings.Contains(line, persistentMarker) {
			break
		}
		if !inActive {
			continue
		}
		if strings.Contains(line, columnHeader) {
			continue
		}
		if strings.Contains(line, "==") {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		if !validation.IsIPv4(fields[0]) {
			// Footer and summary lines land here.
			continue
		}

		routes = append(routes, Route{
			Destination: fields[0],
			Netmask:     fields[1],
			Gateway:     fields[2],
			Interface:   fields[3],
			Metric:      fields[4],
		})
	}

	return routes
}

// parsePersistent collects destination addresses listed after
// "Persistent Routes:". A body of "None" yields an empty set.
func parsePersistent(output string) PersistentSet {
	persistent := make(PersistentSet)

	inPersistent := false
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, persistentMarker) {
			inPersistent = true
			continue
		}
		if !inPersistent {
			continue
		}
		if strings.Contains(line, "==") {
			continue
		}
		if strings.Contains(line, noneToken) {
			break
		}

		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}
		if validation.IsIPv4(fields[0]) {
			persistent[fields[0]] = struct{}{}
		}
	}

	return persistent
}
