// Package upload 编排一次上传：查询变更文件、建立连接、逐个上传、断开连接。
package upload

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hwuu/gitftp/internal/progress"
	"github.com/hwuu/gitftp/internal/remote"
)

// Session 持有一次批量上传所需的连接参数，连接在 Upload 内独占使用
type Session struct {
	Endpoint remote.Endpoint
	BaseDir  string
	Dial     remote.DialFunc
	Output   io.Writer
	Logger   *log.Logger
	BarWidth int
}

func (s *Session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.Output, format, args...)
}

func (s *Session) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.New(io.Discard)
}

// Upload 只建立一次连接，按顺序上传 tasks；任一失败即停止后续上传。
// 无论成功与否，连接都会在返回前关闭。
func (s *Session) Upload(ctx context.Context, tasks []remote.UploadTask) (err error) {
	if len(tasks) == 0 {
		s.printf("no changed files\n")
		return nil
	}

	connecting := fmt.Sprintf("connecting to %s as %s ...", s.Endpoint.Host, s.Endpoint.User)
	s.printf("%s\r", connecting)
	conn, err := s.dial(ctx)
	if err != nil {
		s.printf("\n")
		return err
	}
	s.printf("%s\n", progress.Pad("connected!", len(connecting)))

	client := remote.NewClient(conn, s.logger())
	defer func() {
		disconnecting := "disconnecting..."
		s.printf("%s\r", disconnecting)
		if cerr := client.Close(); cerr != nil {
			s.logger().Warn("quit failed", "err", cerr)
			if err == nil {
				err = fmt.Errorf("failed to close connection: %w", cerr)
			}
		}
		s.printf("%s\n", progress.Pad("disconnected!", len(disconnecting)))
	}()

	return s.sendAll(ctx, client, tasks)
}

func (s *Session) dial(ctx context.Context) (remote.Conn, error) {
	dial := s.Dial
	if dial == nil {
		dial = remote.Dial
	}
	return dial(ctx, s.Endpoint)
}

func (s *Session) sendAll(ctx context.Context, client *remote.Client, tasks []remote.UploadTask) error {
	bar := &progress.Bar{Out: s.Output, Width: s.BarWidth}
	total := len(tasks)
	start := time.Now()

	width := 0
	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if task.BaseDir == "" {
			task.BaseDir = s.BaseDir
		}
		width = bar.Report(i, total, fmt.Sprintf("(%d/%d) Uploading %s ...", i+1, total, task.RemotePath))
		if err := client.SendFile(task); err != nil {
			s.printf("\n")
			return fmt.Errorf("failed to upload %s: %w", task.RemotePath, err)
		}
	}

	elapsed := time.Since(start).Seconds()
	bar.Report(total, total, progress.Pad(fmt.Sprintf("Completed in %.2f seconds!", elapsed), width))
	return nil
}
