package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hwuu/gitftp/internal/config"
	"github.com/hwuu/gitftp/internal/upload"
)

// 构建时通过 ldflags 注入
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitftp [--key=value ...]",
		Short: "上传 git 工作区中变更的文件到 FTP 服务器",
		Long: `gitftp 列出 git 工作区中已修改和未跟踪的文件，逐个上传到 FTP/SFTP 服务器，
并在远程按需创建与本地一致的目录结构。

参数均为 --key=value 形式（-- 可省略）:
  path      工作目录，默认 .
  cmd       自定义查询命令，覆盖默认的 git ls-files
  mode      all | new | changed，默认 all
  engine    shell | go-git，默认 shell
  host      服务器地址（别名 hostname），可带 :port
  port      服务器端口
  protocol  ftp | sftp，默认 ftp
  user      用户名（别名 username）
  pass      密码（别名 password）
  basedir   远程基准目录
  config    YAML 配置文件路径
  prompt    交互式补全缺失的主机、用户名、密码
  debug     输出调试日志`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if arg == "--help" || arg == "-h" {
					return cmd.Help()
				}
			}
			return runUpload(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "gitftp %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
			fmt.Fprintf(out, "  go:     %s\n", runtime.Version())
		},
	}
}

func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Prefix:          "gitftp",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
		logger.SetReportCaller(true)
	}
	return logger
}

func runUpload(ctx context.Context, out io.Writer, args []string) error {
	opts, err := config.Load(args)
	if err != nil {
		return err
	}
	logger := newLogger(opts.Debug)

	if opts.Prompt {
		if err := config.NewDefaultPrompter().FillMissing(opts); err != nil {
			return err
		}
	}

	runner := &upload.Runner{
		Output: out,
		Logger: logger,
	}
	return runner.Run(ctx, opts)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
