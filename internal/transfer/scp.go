package transfer

import (
	"github.com/slate-integrations/ipman/internal/logging"
)

// dialSCP serves SCP targets through the SSH file subsystem. Devices
// offering SCP run an OpenSSH-derived server where the subsystem is
// available too, and it gives the same copy semantics without the
// legacy scp wire protocol.
func dialSCP(settings Settings, log *logging.Logger) (Client, error) {
	return dialSSHFileClient(settings, ProtocolSCP, log)
}
