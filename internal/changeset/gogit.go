package changeset

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
)

// GitResolver 使用 go-git 读取工作区状态，不依赖本机 git 可执行文件。
// 输出格式与默认 ls-files 查询一致：先已修改，后未跟踪，路径相对于 dir。
type GitResolver struct{}

func (GitResolver) Resolve(ctx context.Context, dir, query string, mode Mode) (string, error) {
	if query != "" {
		return "", fmt.Errorf("%w: %q", ErrQueryUnsupported, query)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("failed to read worktree status: %w", err)
	}

	prefix, err := relativePrefix(wt.Filesystem.Root(), dir)
	if err != nil {
		return "", err
	}

	var modified, untracked []string
	for file, fs := range status {
		rel, ok := strings.CutPrefix(file, prefix)
		if !ok {
			continue
		}
		switch fs.Worktree {
		case git.Modified, git.Deleted:
			modified = append(modified, rel)
		case git.Untracked:
			untracked = append(untracked, rel)
		}
	}
	sort.Strings(modified)
	sort.Strings(untracked)

	var files []string
	switch mode {
	case NewOnly:
		files = untracked
	case ChangeOnly:
		files = modified
	default:
		files = append(modified, untracked...)
	}
	if len(files) == 0 {
		return "", nil
	}
	return strings.Join(files, "\n") + "\n", nil
}

// relativePrefix 返回 dir 相对仓库根目录的前缀（斜杠形式，以 / 结尾；根目录为空串）
func relativePrefix(root, dir string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, absDir)
	if err != nil {
		return "", fmt.Errorf("%s is outside repository %s: %w", dir, root, err)
	}
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == "." {
		return "", nil
	}
	return rel + "/", nil
}
