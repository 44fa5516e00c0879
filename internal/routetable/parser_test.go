package routetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutput = `===========================================================================
Interface List
 12...00 1c 42 9f 8a 3d ......Intel(R) 82574L Gigabit Network Connection
  1...........................Software Loopback Interface 1
===========================================================================

IPv4 Route Table
===========================================================================
Active Routes:
Network Destination        Netmask          Gateway       Interface  Metric
          0.0.0.0          0.0.0.0      192.168.1.1     192.168.1.50     25
        10.20.0.0      255.255.0.0      192.168.1.1     192.168.1.50     26
        127.0.0.0        255.0.0.0         On-link         127.0.0.1    331
        127.0.0.1  255.255.255.255         On-link         127.0.0.1    331
      192.168.1.0    255.255.255.0         On-link      192.168.1.50    281
        224.0.0.0        240.0.0.0         On-link         127.0.0.1    331
  255.255.255.255  255.255.255.255         On-link         127.0.0.1    331
===========================================================================
Persistent Routes:
  Network Address          Netmask  Gateway Address  Metric
        10.20.0.0      255.255.0.0      192.168.1.1       1
===========================================================================
`

const sampleNoPersistent = `IPv4 Route Table
===========================================================================
Active Routes:
Network Destination        Netmask          Gateway       Interface  Metric
          0.0.0.0          0.0.0.0      192.168.1.1     192.168.1.50     25
===========================================================================
Persistent Routes:
  None
===========================================================================
`

func TestParseActiveRoutes(t *testing.T) {
	routes, _ := ParseRouteTable(sampleOutput)
	require.Len(t, routes, 7)

	assert.Equal(t, Route{
		Destination: "0.0.0.0",
		Netmask:     "0.0.0.0",
		Gateway:     "192.168.1.1",
		Interface:   "192.168.1.50",
		Metric:      "25",
	}, routes[0])

	assert.Equal(t, Route{
		Destination: "10.20.0.0",
		Netmask:     "255.255.0.0",
		Gateway:     "192.168.1.1",
		Interface:   "192.168.1.50",
		Metric:      "26",
	}, routes[1])
}

func TestParsePreservesTableOrder(t *testing.T) {
	routes, _ := ParseRouteTable(sampleOutput)
	var dests []string
	for _, r := range routes {
		dests = append(dests, r.Destination)
	}
	assert.Equal(t, []string{
		"0.0.0.0", "10.20.0.0", "127.0.0.0", "127.0.0.1",
		"192.168.1.0", "224.0.0.0", "255.255.255.255",
	}, dests)
}

func TestParsePersistentSection(t *testing.T) {
	_, persistent := ParseRouteTable(sampleOutput)
	assert.True(t, persistent.Contains("10.20.0.0"))
	assert.False(t, persistent.Contains("0.0.0.0"))
}

func TestParsePersistentNone(t *testing.T) {
	routes, persistent := ParseRouteTable(sampleNoPersistent)
	assert.Len(t, routes, 1)
	assert.Empty(t, persistent)
}

func TestParseSkipsHeadersAndSeparators(t *testing.T) {
	routes, _ := ParseRouteTable(sampleOutput)
	for _, r := range routes {
		assert.NotEqual(t, "Network", r.Destination)
		assert.NotContains(t, r.Destination, "=")
	}
}

func TestParseIgnoresShortAndMalformedLines(t *testing.T) {
	out := `Active Routes:
          0.0.0.0          0.0.0.0
garbage line that means nothing
        10.0.0.0        255.0.0.0      192.168.1.1     192.168.1.50     30
Persistent Routes:
  None
`
	routes, _ := ParseRouteTable(out)
	require.Len(t, routes, 1)
	assert.Equal(t, "10.0.0.0", routes[0].Destination)
}

func TestParseKeepsDuplicateDestinations(t *testing.T) {
	out := `Active Routes:
      192.168.1.0    255.255.255.0         On-link      192.168.1.50    281
      192.168.1.0    255.255.255.0         On-link      192.168.2.10    281
Persistent Routes:
  None
`
	routes, _ := ParseRouteTable(out)
	require.Len(t, routes, 2)
	assert.Equal(t, routes[0].Destination, routes[1].Destination)
	assert.NotEqual(t, routes[0].Interface, routes[1].Interface)
}

func TestParseEmptyOutput(t *testing.T) {
	routes, persistent := ParseRouteTable("")
	assert.Empty(t, routes)
	assert.Empty(t, persistent)
}

func TestParseIgnoresExtraTrailingFields(t *testing.T) {
	out := `Active Routes:
        10.0.0.0        255.0.0.0      192.168.1.1     192.168.1.50     30   extra
Persistent Routes:
  None
`
	routes, _ := ParseRouteTable(out)
	require.Len(t, routes, 1)
	assert.Equal(t, "30", routes[0].Metric)
}
