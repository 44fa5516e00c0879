package transfer

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slate-integrations/ipman/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.New(logging.Config{Level: logging.LevelError, Output: os.Stderr})
}

func TestDefaultPorts(t *testing.T) {
	assert.Equal(t, 21, ProtocolFTP.DefaultPort())
	assert.Equal(t, 69, ProtocolTFTP.DefaultPort())
	assert.Equal(t, 22, ProtocolSFTP.DefaultPort())
	assert.Equal(t, 22, ProtocolSCP.DefaultPort())
}

func TestAddrAppliesDefaultPort(t *testing.T) {
	s := Settings{Protocol: ProtocolFTP, Host: "192.168.1.10"}
	assert.Equal(t, "192.168.1.10:21", s.Addr())

	s.Port = 2121
	assert.Equal(t, "192.168.1.10:2121", s.Addr())
}

func TestTimeoutDefault(t *testing.T) {
	assert.Equal(t, DefaultTimeout, Settings{}.timeout())
	assert.Equal(t, time.Second, Settings{Timeout: time.Second}.timeout())
}

func TestNewClientRejectsUnknownProtocol(t *testing.T) {
	_, err := NewClient(Settings{Protocol: "gopher", Host: "h"}, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported protocol")
}

func TestNewClientTFTPNeedsNoServer(t *testing.T) {
	// TFTP is connectionless; building the client succeeds without a
	// listener on the other end.
	c, err := NewClient(Settings{Protocol: ProtocolTFTP, Host: "127.0.0.1"}, testLogger())
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}

func TestJobIDsAreUnique(t *testing.T) {
	assert.NotEqual(t, newJobID(), newJobID())
}
