package routetable

// wellKnownDestinations are system routes the route tool always shows in
// the active table but whose persistence it never reports: the default
// route anchor, loopback net and host, multicast base, and limited
// broadcast. Kept as literal addresses, not CIDR ranges, to match the
// route tool's own output.
var wellKnownDestinations = map[string]struct{}{
	"0.0.0.0":         {},
	"127.0.0.0":       {},
	"127.0.0.1":       {},
	"224.0.0.0":       {},
	"255.255.255.255": {},
}

// Classify determines a destination's durability. Membership in the
// persistent set wins over the well-known list: a well-known destination
// that the OS reports as persistent is Yes, not Unknown.
func Classify(destination string, persistent PersistentSet) Persistence {
	if persistent.Contains(destination) {
		return PersistenceYes
	}
	if _, ok := wellKnownDestinations[destination]; ok {
		return PersistenceUnknown
	}
	return PersistenceNo
}

// ClassifyAll returns a copy of routes with Persistence filled in.
func ClassifyAll(routes []Route, persistent PersistentSet) []Route {
	out := make([]Route, len(routes))
	for i, r := range routes {
		r.Persistence = Classify(r.Destination, persistent)
		out[i] = r
	}
	return out
}
