// Package progress 在终端单行渲染上传进度条。
package progress

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// DefaultWidth 进度条默认宽度（字符）
const DefaultWidth = 20

// Render 渲染一行进度条，形如 "Progress: [--------->          ] 50% title"。
// total <= 0 视为已完成。
func Render(current, total, width int, title string) string {
	fraction := 1.0
	if total > 0 {
		fraction = float64(current) / float64(total)
	}

	dashes := int(fraction*float64(width) - 1)
	if dashes < 0 {
		dashes = 0
	}
	arrow := strings.Repeat("-", dashes) + ">"

	padding := ""
	if n := width - len(arrow); n > 0 {
		padding = strings.Repeat(" ", n)
	}

	line := fmt.Sprintf("Progress: [%s%s] %d%%", arrow, padding, int(fraction*100))
	if title != "" {
		line += " " + title
	}
	return line
}

// Pad 右侧补空格到 n 个字符，用于覆盖上一行残留内容
func Pad(s string, n int) string {
	if w := utf8.RuneCountInString(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

// Bar 将进度写到 Out：未完成时以 \r 结尾覆盖同一行，完成时换行
type Bar struct {
	Out   io.Writer
	Width int
}

// Report 输出进度并返回该行的字符数，供后续消息对齐
func (b *Bar) Report(current, total int, title string) int {
	width := b.Width
	if width <= 0 {
		width = DefaultWidth
	}
	line := Render(current, total, width, title)

	ending := "\r"
	if current >= total {
		ending = "\n"
	}
	fmt.Fprint(b.Out, line+ending)
	return utf8.RuneCountInString(line)
}
