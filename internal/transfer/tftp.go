package transfer

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/pin/tftp/v3"

	"github.com/slate-integrations/ipman/internal/logging"
)

type tftpClient struct {
	client  *tftp.Client
	addr    string
	timeout time.Duration
	log     *logging.Logger
}

// dialTFTP builds a TFTP client. TFTP is connectionless, so failures
// surface on the first transfer rather than here.
func dialTFTP(settings Settings, log *logging.Logger) (Client, error) {
	client, err := tftp.NewClient(settings.Addr())
	if err != nil {
		return nil, fmt.Errorf("tftp client %s: %w", settings.Addr(), err)
	}
	client.SetTimeout(settings.timeout())
	return &tftpClient{client: client, addr: settings.Addr(), timeout: settings.timeout(), log: log}, nil
}

// Test probes the server's UDP port. UDP has no handshake, so this only
// proves a socket can be bound toward the target, the same guarantee
// the transfer form's test button has always given.
func (c *tftpClient) Test(ctx context.Context) error {
	conn, err := net.DialTimeout("udp", c.addr, c.timeout)
	if err != nil {
		return fmt.Errorf("tftp probe %s: %w", c.addr, err)
	}
	return conn.Close()
}

func (c *tftpClient) Upload(ctx context.Context, localPath, remotePath string) error {
	job := newJobID()
	c.log.Info("upload started", "job", job, "protocol", "tftp", "local", localPath, "remote", remotePath)

	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	wt, err := c.client.Send(remotePath, "octet")
	if err != nil {
		return fmt.Errorf("tftp send %s: %w", remotePath, err)
	}
	if _, err := wt.ReadFrom(f); err != nil {
		return fmt.Errorf("tftp upload %s: %w", remotePath, err)
	}
	c.log.Info("upload finished", "job", job)
	return nil
}

func (c *tftpClient) Download(ctx context.Context, remotePath, localPath string) error {
	job := newJobID()
	c.log.Info("download started", "job", job, "protocol", "tftp", "remote", remotePath, "local", localPath)

	wt, err := c.client.Receive(remotePath, "octet")
	if err != nil {
		return fmt.Errorf("tftp receive %s: %w", remotePath, err)
	}

	f, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := wt.WriteTo(f); err != nil {
		return fmt.Errorf("tftp download %s: %w", remotePath, err)
	}
	c.log.Info("download finished", "job", job)
	return nil
}

func (c *tftpClient) Close() error {
	return nil
}
