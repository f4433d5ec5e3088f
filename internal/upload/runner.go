package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/hwuu/gitftp/internal/changeset"
	"github.com/hwuu/gitftp/internal/config"
	"github.com/hwuu/gitftp/internal/remote"
)

// Runner 将变更查询与上传会话串起来，通过依赖注入支持测试
type Runner struct {
	Resolver changeset.Resolver // 为空时按 opts.Engine 创建
	Dial     remote.DialFunc    // 为空时使用 remote.Dial
	Output   io.Writer
	Logger   *log.Logger
}

// Run 查询 opts.Path 下的变更文件并上传
func (r *Runner) Run(ctx context.Context, opts *config.Options) error {
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	resolver := r.Resolver
	if resolver == nil {
		var err error
		if resolver, err = changeset.NewResolver(opts.Engine); err != nil {
			return err
		}
	}

	out, err := resolver.Resolve(ctx, opts.Path, opts.Query, opts.Mode)
	if err != nil {
		if !errors.Is(err, changeset.ErrQueryFailed) {
			return fmt.Errorf("failed to list changed files: %w", err)
		}
		// 查询失败时输出仍按文件列表处理，后续打开本地文件时会报错
		logger.Warn("change query failed, using its output as file list", "err", err)
	}

	files := changeset.Lines(out)
	logger.Debug("changed files", "path", opts.Path, "mode", opts.Mode, "count", len(files))

	session := &Session{
		Endpoint: opts.Endpoint(),
		BaseDir:  opts.BaseDir,
		Dial:     r.Dial,
		Output:   r.Output,
		Logger:   logger,
	}
	return session.Upload(ctx, Tasks(opts.Path, files))
}

// Tasks 为每个相对路径生成上传任务：从 root 下读取，远程按相对路径镜像目录
func Tasks(root string, files []string) []remote.UploadTask {
	tasks := make([]remote.UploadTask, 0, len(files))
	for _, f := range files {
		tasks = append(tasks, remote.UploadTask{
			LocalPath:  filepath.Join(root, filepath.FromSlash(f)),
			RemotePath: f,
		})
	}
	return tasks
}
