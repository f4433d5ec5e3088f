// Package changeset 通过版本控制查询列出工作目录中变更的文件。
package changeset

import (
	"fmt"
	"strings"
)

// Mode 选择运行哪一种默认查询
type Mode int

const (
	All        Mode = iota // 已修改 + 未跟踪（遵循 ignore 规则）
	NewOnly                // 仅未跟踪
	ChangeOnly             // 仅已修改
)

// 各模式对应的默认查询命令
const (
	QueryModified  = "git ls-files --modified"
	QueryUntracked = "git ls-files --others --exclude-standard"
	QueryAll       = QueryModified + " && " + QueryUntracked
)

var modeQueries = map[Mode]string{
	All:        QueryAll,
	NewOnly:    QueryUntracked,
	ChangeOnly: QueryModified,
}

var modeNames = map[Mode]string{
	All:        "all",
	NewOnly:    "new",
	ChangeOnly: "changed",
}

// DefaultQuery 返回模式对应的查询命令，未知模式按 All 处理
func DefaultQuery(mode Mode) string {
	if q, ok := modeQueries[mode]; ok {
		return q
	}
	return QueryAll
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode 解析命令行中的模式名称（all / new / changed），空字符串视为 all
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "new", "new-only", "untracked":
		return NewOnly, nil
	case "changed", "change-only", "modified":
		return ChangeOnly, nil
	}
	return All, fmt.Errorf("unknown change mode %q", s)
}

// Lines 将查询输出拆分为文件路径列表，忽略空行
func Lines(output string) []string {
	var files []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		files = append(files, line)
	}
	return files
}
