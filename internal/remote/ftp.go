package remote

import (
	"context"
	"fmt"
	"io"

	"github.com/jlaffaye/ftp"
)

// ftpConn 基于 jlaffaye/ftp 的真实实现
type ftpConn struct {
	conn *ftp.ServerConn
}

// DialFTP 连接 FTP 服务器并以明文用户名/密码登录
func DialFTP(ctx context.Context, ep Endpoint) (Conn, error) {
	addr := ep.Address()
	c, err := ftp.Dial(addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(ep.timeout()),
	)
	if err != nil {
		return nil, fmt.Errorf("FTP 连接失败 (%s): %w", addr, err)
	}

	if err := c.Login(ep.User, ep.Password); err != nil {
		_ = c.Quit()
		return nil, fmt.Errorf("FTP 登录失败 (%s@%s): %w", ep.User, addr, err)
	}

	return &ftpConn{conn: c}, nil
}

// List 使用 LIST 命令；条目类型由库按 Unix/DOS/MLSD 等格式解析
func (c *ftpConn) List(dir string) ([]Entry, error) {
	raw, err := c.conn.List(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, Entry{
			Name: e.Name,
			Dir:  e.Type == ftp.EntryTypeFolder,
		})
	}
	return entries, nil
}

func (c *ftpConn) MakeDir(dir string) error {
	return c.conn.MakeDir(dir)
}

func (c *ftpConn) ChangeDir(dir string) error {
	return c.conn.ChangeDir(dir)
}

func (c *ftpConn) CurrentDir() (string, error) {
	return c.conn.CurrentDir()
}

// Store 以二进制模式（STOR）上传
func (c *ftpConn) Store(name string, r io.Reader) error {
	return c.conn.Stor(name, r)
}

func (c *ftpConn) Quit() error {
	return c.conn.Quit()
}
