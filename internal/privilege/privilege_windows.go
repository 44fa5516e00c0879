//go:build windows

package privilege

import "golang.org/x/sys/windows"

// isElevated checks the process token. Membership in the Administrators
// group is not enough under UAC; the token itself must be elevated.
func isElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
