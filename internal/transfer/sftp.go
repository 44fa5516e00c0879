package transfer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/slate-integrations/ipman/internal/logging"
)

type sftpClient struct {
	ssh      *ssh.Client
	sftp     *sftp.Client
	protocol Protocol
	log      *logging.Logger
}

func dialSFTP(settings Settings, log *logging.Logger) (Client, error) {
	return dialSSHFileClient(settings, ProtocolSFTP, log)
}

// dialSSHFileClient opens an SSH connection and its SFTP subsystem.
// Network gear consoles present ephemeral host keys, so verification is
// skipped; these transfers run on lab and management networks.
func dialSSHFileClient(settings Settings, protocol Protocol, log *logging.Logger) (Client, error) {
	cfg := &ssh.ClientConfig{
		User:            settings.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(settings.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         settings.timeout(),
	}

	sshConn, err := ssh.Dial("tcp", settings.Addr(), cfg)
	if err != nil {
		return nil, fmt.Errorf("ssh dial %s: %w", settings.Addr(), err)
	}

	fileConn, err := sftp.NewClient(sshConn)
	if err != nil {
		sshConn.Close()
		return nil, fmt.Errorf("open sftp subsystem: %w", err)
	}

	return &sftpClient{ssh: sshConn, sftp: fileConn, protocol: protocol, log: log}, nil
}

func (c *sftpClient) Test(ctx context.Context) error {
	if _, err := c.sftp.Getwd(); err != nil {
		return fmt.Errorf("session check: %w", err)
	}
	return nil
}

func (c *sftpClient) Upload(ctx context.Context, localPath, remotePath string) error {
	job := newJobID()
	c.log.Info("upload started", "job", job, "protocol", string(c.protocol), "local", localPath, "remote", remotePath)

	src, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := c.sftp.Create(remotePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", remotePath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("upload %s: %w", remotePath, err)
	}
	c.log.Info("upload finished", "job", job)
	return nil
}

func (c *sftpClient) Download(ctx context.Context, remotePath, localPath string) error {
	job := newJobID()
	c.log.Info("download started", "job", job, "protocol", string(c.protocol), "remote", remotePath, "local", localPath)

	src, err := c.sftp.Open(remotePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", remotePath, err)
	}
	defer src.Close()

	dst, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("download %s: %w", remotePath, err)
	}
	c.log.Info("download finished", "job", job)
	return nil
}

func (c *sftpClient) Close() error {
	c.sftp.Close()
	return c.ssh.Close()
}
