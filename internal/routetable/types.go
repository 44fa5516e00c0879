// Package routetable is the heart of the program: it turns the text the
// OS route tool prints into a normalized model, classifies each route's
// durability, keeps an auto-refreshing snapshot, and issues validated
// add/delete commands.
package routetable

import "time"

// Persistence classifies a route's durability across reboots.
type Persistence int

const (
	// PersistenceUnknown marks the handful of well-known system routes
	// (loopback, broadcast, multicast) whose durability the route tool
	// does not report meaningfully.
	PersistenceUnknown Persistence = iota
	// PersistenceYes means the destination appears under the route
	// tool's "Persistent Routes:" section.
	PersistenceYes
	// PersistenceNo means the route lives only in the active table.
	PersistenceNo
)

func (p Persistence) String() string {
	switch p {
	case PersistenceYes:
		return "Yes"
	case PersistenceNo:
		return "No"
	default:
		return "Unknown"
	}
}

// Route is one row of the active IPv4 route table. The OS table may list
// the same destination on several interfaces; rows are kept as printed,
// never deduplicated.
type Route struct {
	Destination string
	Netmask     string
	Gateway     string
	Interface   string
	Metric      string
	Persistence Persistence
}

// PersistentSet is the set of destinations the route tool reports under
// its persistent section. Membership test only; never displayed.
type PersistentSet map[string]struct{}

// Contains reports whether dest is in the set.
func (s PersistentSet) Contains(dest string) bool {
	_, ok := s[dest]
	return ok
}

// Snapshot is the complete route table at a point in time. Snapshots are
// immutable once published; the engine swaps in a whole new one on every
// refresh.
type Snapshot struct {
	Routes []Route
	Taken  time.Time
}

// Category selects a slice of the snapshot for display.
type Category int

const (
	CategoryAll Category = iota
	CategoryPersistent
	CategoryTemporary
)

func (c Category) String() string {
	switch c {
	case CategoryPersistent:
		return "persistent"
	case CategoryTemporary:
		return "temporary"
	default:
		return "all"
	}
}

// Counts summarizes a snapshot per category. Unknown routes count toward
// All only.
type Counts struct {
	All        int
	Persistent int
	Temporary  int
}
