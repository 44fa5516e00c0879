package transfer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jlaffaye/ftp"

	"github.com/slate-integrations/ipman/internal/logging"
)

type ftpClient struct {
	conn *ftp.ServerConn
	log  *logging.Logger
}

func dialFTP(settings Settings, log *logging.Logger) (Client, error) {
	conn, err := ftp.Dial(settings.Addr(), ftp.DialWithTimeout(settings.timeout()))
	if err != nil {
		return nil, fmt.Errorf("ftp dial %s: %w", settings.Addr(), err)
	}

	user := settings.Username
	pass := settings.Password
	if user == "" {
		user, pass = "anonymous", "anonymous"
	}
	if err := conn.Login(user, pass); err != nil {
		conn.Quit()
		return nil, fmt.Errorf("ftp login: %w", err)
	}

	return &ftpClient{conn: conn, log: log}, nil
}

func (c *ftpClient) Test(ctx context.Context) error {
	return c.conn.NoOp()
}

func (c *ftpClient) Upload(ctx context.Context, localPath, remotePath string) error {
	job := newJobID()
	c.log.Info("upload started", "job", job, "protocol", "ftp", "local", localPath, "remote", remotePath)

	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := c.conn.StorFrom(remotePath, f, 0); err != nil {
		return fmt.Errorf("ftp store %s: %w", remotePath, err)
	}
	c.log.Info("upload finished", "job", job)
	return nil
}

func (c *ftpClient) Download(ctx context.Context, remotePath, localPath string) error {
	job := newJobID()
	c.log.Info("download started", "job", job, "protocol", "ftp", "remote", remotePath, "local", localPath)

	resp, err := c.conn.Retr(remotePath)
	if err != nil {
		return fmt.Errorf("ftp retrieve %s: %w", remotePath, err)
	}
	defer resp.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp); err != nil {
		return fmt.Errorf("ftp download %s: %w", remotePath, err)
	}
	c.log.Info("download finished", "job", job)
	return nil
}

func (c *ftpClient) Close() error {
	return c.conn.Quit()
}
