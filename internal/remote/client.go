package remote

import (
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrClosed 连接已关闭后仍被使用
var ErrClosed = errors.New("connection already closed")

// Client 在 Conn 之上维护"根目录"并提供按需建目录的游标移动。
// 根目录为登录后的初始目录，每次上传结束后游标都会回到这里。
type Client struct {
	conn   Conn
	root   string
	logger *log.Logger
	closed bool
}

// NewClient 包装已认证的连接；logger 为 nil 时不输出调试信息
func NewClient(conn Conn, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	root, err := conn.CurrentDir()
	if err != nil || root == "" {
		logger.Debug("cannot read login directory, using /", "err", err)
		root = "/"
	}
	return &Client{conn: conn, root: root, logger: logger}
}

// Root 返回远程根目录
func (c *Client) Root() string {
	return c.root
}

// DirectoryExists 判断当前目录下是否存在名为 name 的子目录（名称须完全一致）
func (c *Client) DirectoryExists(name string) (bool, error) {
	if c.closed {
		return false, ErrClosed
	}
	entries, err := c.conn.List("")
	if err != nil {
		return false, fmt.Errorf("failed to list remote directory: %w", err)
	}
	for _, e := range entries {
		if e.Dir && e.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Chdir 进入当前目录下的 dir，不存在时先创建。"/" 表示回到根目录，不会创建。
func (c *Client) Chdir(dir string) error {
	if c.closed {
		return ErrClosed
	}
	c.logger.Debug("chdir", "dir", dir)

	switch dir {
	case "/":
		return c.changeDir(c.root)
	case "..":
		return c.changeDir(dir)
	}

	exists, err := c.DirectoryExists(dir)
	if err != nil {
		return err
	}
	if !exists {
		c.logger.Debug("mkdir", "dir", dir)
		if err := c.conn.MakeDir(dir); err != nil {
			return fmt.Errorf("failed to create remote directory %s: %w", dir, err)
		}
	}
	return c.changeDir(dir)
}

func (c *Client) changeDir(dir string) error {
	if err := c.conn.ChangeDir(dir); err != nil {
		return fmt.Errorf("failed to change remote directory to %s: %w", dir, err)
	}
	return nil
}

// ChdirNested 逐级进入多段路径（如 a/b/c），每一级都按需创建。
// 以 / 开头的路径从根目录开始。
func (c *Client) ChdirNested(dir string) error {
	p := path.Clean(filepath.ToSlash(dir))
	if p == "." {
		return nil
	}
	if strings.HasPrefix(p, "/") {
		if err := c.Chdir("/"); err != nil {
			return err
		}
		p = strings.TrimPrefix(p, "/")
	}
	if p == "" {
		return nil
	}
	for _, seg := range strings.Split(p, "/") {
		if err := c.Chdir(seg); err != nil {
			return err
		}
	}
	return nil
}

// Close 退出连接，重复调用无副作用
func (c *Client) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Quit()
}
