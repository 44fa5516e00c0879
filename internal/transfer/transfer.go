// Package transfer moves firmware images and configuration files to and
// from network equipment over the protocols such gear commonly speaks:
// FTP, SFTP, SCP and TFTP.
package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slate-integrations/ipman/internal/logging"
)

// Protocol names a transfer protocol.
type Protocol string

const (
	ProtocolFTP  Protocol = "ftp"
	ProtocolSFTP Protocol = "sftp"
	ProtocolSCP  Protocol = "scp"
	ProtocolTFTP Protocol = "tftp"
)

// Protocols lists what the transfer UI offers, in display order.
var Protocols = []Protocol{ProtocolFTP, ProtocolSFTP, ProtocolSCP, ProtocolTFTP}

// DefaultPort returns the protocol's well-known port.
func (p Protocol) DefaultPort() int {
	switch p {
	case ProtocolFTP:
		return 21
	case ProtocolTFTP:
		return 69
	case ProtocolSFTP, ProtocolSCP:
		return 22
	default:
		return 0
	}
}

// DefaultTimeout bounds connection establishment.
const DefaultTimeout = 15 * time.Second

// Settings describe a transfer target. Port 0 means the protocol
// default; TFTP ignores the credentials.
type Settings struct {
	Protocol Protocol
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// Addr renders host:port with defaults applied.
func (s Settings) Addr() string {
	port := s.Port
	if port == 0 {
		port = s.Protocol.DefaultPort()
	}
	return fmt.Sprintf("%s:%d", s.Host, port)
}

func (s Settings) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}

// Client is an open connection to a transfer target. Implementations are
// not safe for concurrent use; run one transfer at a time per client.
type Client interface {
	// Test checks the target is reachable and the session usable
	// without moving any data.
	Test(ctx context.Context) error
	// Upload copies a local file to remotePath on the target.
	Upload(ctx context.Context, localPath, remotePath string) error
	// Download copies remotePath from the target to a local file.
	Download(ctx context.Context, remotePath, localPath string) error
	Close() error
}

// NewClient dials the target described by settings.
func NewClient(settings Settings, log *logging.Logger) (Client, error) {
	log = log.WithComponent("transfer")
	switch settings.Protocol {
	case ProtocolFTP:
		return dialFTP(settings, log)
	case ProtocolSFTP:
		return dialSFTP(settings, log)
	case ProtocolSCP:
		return dialSCP(settings, log)
	case ProtocolTFTP:
		return dialTFTP(settings, log)
	default:
		return nil, fmt.Errorf("unsupported protocol %q", settings.Protocol)
	}
}

// newJobID tags one transfer for log correlation.
func newJobID() string {
	return uuid.NewString()
}
