// Package remotetest 提供内存版 remote.Conn，用于测试上传流程。
package remotetest

import (
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/hwuu/gitftp/internal/remote"
)

// FakeConn 在内存中模拟一个带目录游标的服务器，并按顺序记录所有命令。
// 命令记录格式："LIST <cwd>"、"MKD <abs>"、"CWD <abs>"、"STOR <abs>"、"QUIT"。
type FakeConn struct {
	Dirs  map[string]bool
	Files map[string][]byte
	Cwd   string
	Calls []string
	Quits int

	// 可选的故障注入
	StoreErr   error
	MakeDirErr error
	ListErr    error
}

// NewFakeConn 创建只有根目录的服务器，dirs 为额外预建目录（绝对路径）
func NewFakeConn(dirs ...string) *FakeConn {
	f := &FakeConn{
		Dirs:  map[string]bool{"/": true},
		Files: map[string][]byte{},
		Cwd:   "/",
	}
	for _, d := range dirs {
		d = path.Clean("/" + d)
		for p := d; p != "/"; p = path.Dir(p) {
			f.Dirs[p] = true
		}
	}
	return f
}

func (f *FakeConn) resolve(p string) string {
	if p == "" {
		return f.Cwd
	}
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Join(f.Cwd, p)
}

func (f *FakeConn) record(format string, args ...any) {
	f.Calls = append(f.Calls, fmt.Sprintf(format, args...))
}

func (f *FakeConn) List(dir string) ([]remote.Entry, error) {
	target := f.resolve(dir)
	f.record("LIST %s", target)
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	var entries []remote.Entry
	for d := range f.Dirs {
		if d != "/" && path.Dir(d) == target {
			entries = append(entries, remote.Entry{Name: path.Base(d), Dir: true})
		}
	}
	for p := range f.Files {
		if path.Dir(p) == target {
			entries = append(entries, remote.Entry{Name: path.Base(p)})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (f *FakeConn) MakeDir(dir string) error {
	target := f.resolve(dir)
	f.record("MKD %s", target)
	if f.MakeDirErr != nil {
		return f.MakeDirErr
	}
	if f.Dirs[target] {
		return errors.New("550 directory already exists")
	}
	if !f.Dirs[path.Dir(target)] {
		return errors.New("550 parent directory missing")
	}
	f.Dirs[target] = true
	return nil
}

func (f *FakeConn) ChangeDir(dir string) error {
	target := f.resolve(dir)
	f.record("CWD %s", target)
	if !f.Dirs[target] {
		return fmt.Errorf("550 %s: no such directory", target)
	}
	f.Cwd = target
	return nil
}

func (f *FakeConn) CurrentDir() (string, error) {
	return f.Cwd, nil
}

func (f *FakeConn) Store(name string, r io.Reader) error {
	target := f.resolve(name)
	f.record("STOR %s", target)
	if f.StoreErr != nil {
		return f.StoreErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.Files[target] = data
	return nil
}

func (f *FakeConn) Quit() error {
	f.record("QUIT")
	f.Quits++
	return nil
}

// CallsWithPrefix 返回以 prefix 开头的命令记录
func (f *FakeConn) CallsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range f.Calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
