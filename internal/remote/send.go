package remote

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// UploadTask 描述一次上传
type UploadTask struct {
	LocalPath  string // 读取内容的本地路径
	RemotePath string // 相对路径，其目录部分在远程端镜像；为空时使用 LocalPath
	BaseDir    string // 远程基准目录，可为空
	RenameTo   string // 可选的新文件名
}

// RemoteName 计算远程文件名。RenameTo 带扩展名时只替换扩展名，
// 不带扩展名时替换主文件名。
func (t UploadTask) RemoteName() string {
	name, ext := splitExt(filepath.Base(t.LocalPath))
	if t.RenameTo != "" {
		rname, rext := splitExt(path.Base(filepath.ToSlash(t.RenameTo)))
		if rext != "" {
			ext = rext
		} else {
			name = rname
		}
	}
	return name + ext
}

// RemoteDir 返回需要在远程镜像的目录部分，无目录时返回 "."
func (t UploadTask) RemoteDir() string {
	rel := t.RemotePath
	if rel == "" {
		rel = t.LocalPath
	}
	return path.Dir(path.Clean(filepath.ToSlash(rel)))
}

// splitExt 拆分扩展名，开头的点不视为扩展名分隔符（.env 没有扩展名）
func splitExt(base string) (string, string) {
	trimmed := strings.TrimLeft(base, ".")
	idx := strings.LastIndex(trimmed, ".")
	if idx <= 0 {
		return base, ""
	}
	cut := len(base) - len(trimmed) + idx
	return base[:cut], base[cut:]
}

// SendFile 上传单个文件：进入 BaseDir 和文件所在目录（按需创建），
// 以二进制方式写入，结束后无论成功与否都回到根目录。
func (c *Client) SendFile(task UploadTask) (err error) {
	if c.closed {
		return ErrClosed
	}

	f, err := os.Open(task.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", task.LocalPath, err)
	}
	defer f.Close()

	defer func() {
		if rerr := c.Chdir("/"); rerr != nil && err == nil {
			err = rerr
		}
	}()

	if task.BaseDir != "" {
		if err := c.ChdirNested(task.BaseDir); err != nil {
			return err
		}
	}
	if dir := task.RemoteDir(); dir != "." {
		if err := c.ChdirNested(dir); err != nil {
			return err
		}
	}

	name := task.RemoteName()
	c.logger.Debug("STOR", "name", name, "local", task.LocalPath)
	if err := c.conn.Store(name, f); err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	return nil
}
