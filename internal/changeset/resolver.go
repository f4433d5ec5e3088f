package changeset

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

var (
	ErrQueryFailed      = errors.New("change query failed")
	ErrQueryUnsupported = errors.New("custom query not supported by this engine")
)

// Resolver 抽象变更文件查询，支持 mock 测试
type Resolver interface {
	Resolve(ctx context.Context, dir, query string, mode Mode) (string, error)
}

// ShellResolver 在 dir 下通过系统 shell 执行查询命令
type ShellResolver struct{}

// Resolve 执行查询并返回合并后的 stdout/stderr。
// 命令以非零状态退出时，输出原样返回，同时返回包装了 ErrQueryFailed 的错误。
func (ShellResolver) Resolve(ctx context.Context, dir, query string, mode Mode) (string, error) {
	if query == "" {
		query = DefaultQuery(mode)
	}

	cmd := shellCommand(ctx, query)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), fmt.Errorf("%w (%q in %s): %v", ErrQueryFailed, query, dir, err)
		}
		return "", fmt.Errorf("failed to run %q in %s: %w", query, dir, err)
	}
	return string(out), nil
}

func shellCommand(ctx context.Context, query string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", query)
	}
	return exec.CommandContext(ctx, "sh", "-c", query)
}

// 查询引擎名称
const (
	EngineShell = "shell"
	EngineGoGit = "go-git"
)

// NewResolver 按引擎名称创建 Resolver，空字符串使用 shell
func NewResolver(engine string) (Resolver, error) {
	switch engine {
	case "", EngineShell:
		return ShellResolver{}, nil
	case EngineGoGit, "gogit":
		return GitResolver{}, nil
	}
	return nil, fmt.Errorf("unknown change engine %q", engine)
}
