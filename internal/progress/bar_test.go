package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestRender_Half(t *testing.T) {
	got := Render(5, 10, 20, "")
	want := "Progress: [--------->          ] 50%"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRender_Bounds(t *testing.T) {
	tests := []struct {
		current, total int
		want           string
	}{
		{0, 4, "Progress: [>                   ] 0%"},
		{4, 4, "Progress: [------------------->] 100%"},
		{1, 3, "Progress: [----->              ] 33%"},
		{0, 0, "Progress: [------------------->] 100%"},
	}
	for _, tt := range tests {
		if got := Render(tt.current, tt.total, 20, ""); got != tt.want {
			t.Errorf("Render(%d, %d) = %q, want %q", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestRender_Title(t *testing.T) {
	got := Render(1, 2, 10, "(2/2) Uploading src/b.txt ...")
	if !strings.HasSuffix(got, "] 50% (2/2) Uploading src/b.txt ...") {
		t.Errorf("unexpected line %q", got)
	}
}

func TestBar_ReportEndings(t *testing.T) {
	var buf bytes.Buffer
	bar := &Bar{Out: &buf, Width: 20}

	n := bar.Report(5, 10, "")
	if n != len("Progress: [--------->          ] 50%") {
		t.Errorf("unexpected length %d", n)
	}
	if !strings.HasSuffix(buf.String(), "\r") {
		t.Errorf("expected carriage return, got %q", buf.String())
	}

	buf.Reset()
	bar.Report(10, 10, "done")
	if !strings.HasSuffix(buf.String(), "done\n") {
		t.Errorf("expected newline at completion, got %q", buf.String())
	}
}

func TestBar_DefaultWidth(t *testing.T) {
	var buf bytes.Buffer
	(&Bar{Out: &buf}).Report(5, 10, "")
	if got := buf.String(); got != "Progress: [--------->          ] 50%\r" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestPad(t *testing.T) {
	if got := Pad("connected!", 15); got != "connected!     " {
		t.Errorf("unexpected %q", got)
	}
	if got := Pad("already long", 3); got != "already long" {
		t.Errorf("unexpected %q", got)
	}
	if got := Pad("完成", 4); got != "完成  " {
		t.Errorf("unexpected %q", got)
	}
}
