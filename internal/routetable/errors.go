package routetable

import (
	"errors"
	"fmt"
)

// ErrConfirmationRequired is returned when a side-effecting operation
// needs an explicit acknowledgement the caller has not supplied:
// persistent adds (they survive reboot) and all deletes.
var ErrConfirmationRequired = errors.New("operation requires explicit confirmation")

// PermissionError means the process lacks elevation for a mutating
// command. Raised before anything is executed.
type PermissionError struct {
	Op string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s requires administrator privileges", e.Op)
}
