// Package remote 管理与文件传输服务器的连接：目录游标移动、按需建目录、上传文件。
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

var (
	ErrUnknownProtocol = errors.New("unknown transfer protocol")
	ErrNotDirectory    = errors.New("not a directory")
)

const (
	ProtocolFTP  = "ftp"
	ProtocolSFTP = "sftp"

	DefaultFTPPort  = 21
	DefaultSFTPPort = 22
	DefaultTimeout  = 30 * time.Second
)

// Entry 远程目录列表中的一项（已按协议格式解析）
type Entry struct {
	Name string
	Dir  bool
}

// Conn 抽象带"当前目录"游标的已认证连接，支持 mock 测试
type Conn interface {
	// List 列出 dir 下的条目，dir 为空时列出当前目录
	List(dir string) ([]Entry, error)
	MakeDir(dir string) error
	ChangeDir(dir string) error
	CurrentDir() (string, error)
	// Store 将 r 的内容写入当前目录下的 name
	Store(name string, r io.Reader) error
	Quit() error
}

// Endpoint 连接参数
type Endpoint struct {
	Protocol string
	Host     string
	Port     int // 0 表示使用协议默认端口；Host 自带端口时忽略
	User     string
	Password string
	Timeout  time.Duration
}

// DialFunc 建立连接并完成认证
type DialFunc func(ctx context.Context, ep Endpoint) (Conn, error)

// Dial 按 ep.Protocol 选择 FTP 或 SFTP 建立连接
func Dial(ctx context.Context, ep Endpoint) (Conn, error) {
	switch ep.Protocol {
	case "", ProtocolFTP:
		return DialFTP(ctx, ep)
	case ProtocolSFTP:
		return DialSFTP(ctx, ep)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProtocol, ep.Protocol)
}

// Address 返回 host:port；Host 已包含端口时原样返回
func (ep Endpoint) Address() string {
	if _, _, err := net.SplitHostPort(ep.Host); err == nil {
		return ep.Host
	}
	port := ep.Port
	if port == 0 {
		port = DefaultFTPPort
		if ep.Protocol == ProtocolSFTP {
			port = DefaultSFTPPort
		}
	}
	return net.JoinHostPort(ep.Host, strconv.Itoa(port))
}

func (ep Endpoint) timeout() time.Duration {
	if ep.Timeout > 0 {
		return ep.Timeout
	}
	return DefaultTimeout
}
