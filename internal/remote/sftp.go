package remote

// sftp.go 提供基于 SSH 的 SFTP 实现。SFTP 协议没有服务端"当前目录"，
// 这里在客户端维护游标，所有相对路径都以游标为基准解析。

import (
	"context"
	"fmt"
	"io"
	"net"
	"path"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// sftpConn 真实 SFTP 连接实现
type sftpConn struct {
	sftpClient *sftp.Client
	sshClient  *ssh.Client
	cwd        string
}

// DialSFTP 使用密码认证建立 SSH 连接并启动 SFTP 子系统
func DialSFTP(ctx context.Context, ep Endpoint) (Conn, error) {
	config := &ssh.ClientConfig{
		User: ep.User,
		Auth: []ssh.AuthMethod{
			ssh.Password(ep.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         ep.timeout(),
	}

	addr := ep.Address()
	d := net.Dialer{Timeout: ep.timeout()}
	tcpConn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("SSH 连接失败 (%s): %w", addr, err)
	}
	c, chans, reqs, err := ssh.NewClientConn(tcpConn, addr, config)
	if err != nil {
		tcpConn.Close()
		return nil, fmt.Errorf("SSH 认证失败 (%s@%s): %w", ep.User, addr, err)
	}
	sshConn := ssh.NewClient(c, chans, reqs)

	sftpClient, err := sftp.NewClient(sshConn)
	if err != nil {
		sshConn.Close()
		return nil, fmt.Errorf("SFTP 连接失败: %w", err)
	}

	cwd, err := sftpClient.Getwd()
	if err != nil || cwd == "" {
		cwd = "/"
	}

	return &sftpConn{
		sftpClient: sftpClient,
		sshClient:  sshConn,
		cwd:        cwd,
	}, nil
}

func (c *sftpConn) resolve(p string) string {
	if p == "" {
		return c.cwd
	}
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Join(c.cwd, p)
}

func (c *sftpConn) List(dir string) ([]Entry, error) {
	infos, err := c.sftpClient.ReadDir(c.resolve(dir))
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(infos))
	for _, fi := range infos {
		entries = append(entries, Entry{Name: fi.Name(), Dir: fi.IsDir()})
	}
	return entries, nil
}

func (c *sftpConn) MakeDir(dir string) error {
	return c.sftpClient.Mkdir(c.resolve(dir))
}

func (c *sftpConn) ChangeDir(dir string) error {
	target := c.resolve(dir)
	fi, err := c.sftpClient.Stat(target)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s: %w", target, ErrNotDirectory)
	}
	c.cwd = target
	return nil
}

func (c *sftpConn) CurrentDir() (string, error) {
	return c.cwd, nil
}

func (c *sftpConn) Store(name string, r io.Reader) error {
	f, err := c.sftpClient.Create(c.resolve(name))
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return err
	}
	return nil
}

func (c *sftpConn) Quit() error {
	c.sftpClient.Close()
	return c.sshClient.Close()
}
