// Package validation holds the input checks every mutating command relies
// on. The IPv4 and subnet-mask rules intentionally mirror the route tool's
// own acceptance rules rather than net.ParseIP: four 1-3 digit groups with
// each octet <= 255 (leading zeros allowed), and masks must be a contiguous
// run of 1-bits followed by 0-bits.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var rxIPv4 = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})$`)

// IsIPv4 reports whether s is a well-formed dotted-quad IPv4 address.
func IsIPv4(s string) bool {
	m := rxIPv4.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return false
	}
	for _, octet := range m[1:] {
		n, err := strconv.Atoi(octet)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}

// IsSubnetMask reports whether s is a valid IPv4 subnet mask: a valid
// address whose 32-bit expansion never has a 0-bit followed by a 1-bit.
// The check scans the concatenated 8-bit binary octets for the forbidden
// "01" pattern.
func IsSubnetMask(s string) bool {
	if !IsIPv4(s) {
		return false
	}
	var b strings.Builder
	for _, octet := range strings.Split(strings.TrimSpace(s), ".") {
		n, _ := strconv.Atoi(octet)
		fmt.Fprintf(&b, "%08b", n)
	}
	return !strings.Contains(b.String(), "01")
}

// IsPort reports whether s is a valid TCP/UDP port number (1-65535).
func IsPort(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n >= 1 && n <= 65535
}

// Error describes a rejected input field. Validation failures happen
// before any command is issued and are never written to the audit log.
type Error struct {
	Field  string
	Value  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// CheckIPv4 returns a typed error when s is not a valid IPv4 address.
func CheckIPv4(field, s string) error {
	if !IsIPv4(s) {
		return &Error{Field: field, Value: s, Reason: "not a valid IPv4 address"}
	}
	return nil
}

// CheckSubnetMask returns a typed error when s is not a contiguous mask.
func CheckSubnetMask(field, s string) error {
	if !IsIPv4(s) {
		return &Error{Field: field, Value: s, Reason: "not a valid IPv4 address"}
	}
	if !IsSubnetMask(s) {
		return &Error{Field: field, Value: s, Reason: "mask bits are not contiguous"}
	}
	return nil
}
