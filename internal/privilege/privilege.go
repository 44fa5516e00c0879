// Package privilege answers one question: may this process change
// network configuration? Mutating commands check it up front so the
// user gets a clear error instead of a cryptic tool failure.
package privilege

// IsElevated reports whether the process has administrative rights.
func IsElevated() bool {
	return isElevated()
}
