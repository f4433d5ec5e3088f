package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hwuu/gitftp/internal/changeset"
	"github.com/hwuu/gitftp/internal/remote"
)

func TestParseArgs(t *testing.T) {
	args := []string{
		"gitftp",
		"--path=/repo",
		"hostname=ftp.example.com",
		"--username=bob",
		"--pass=se=cret",
		"--basedir=releases",
		"--cmd=git diff --name-only --diff-filter=AM",
		"--unknown=ignored",
		"--host",
		"--debug",
	}

	got := ParseArgs(args)
	want := map[string]string{
		KeyPath:    "/repo",
		KeyHost:    "ftp.example.com",
		KeyUser:    "bob",
		KeyPass:    "se=cret",
		KeyBaseDir: "releases",
		KeyCmd:     "git diff --name-only --diff-filter=AM",
		KeyDebug:   "true",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseArgs mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestParseArgs_LaterWins(t *testing.T) {
	got := ParseArgs([]string{"--user=alice", "username=bob"})
	if got[KeyUser] != "bob" {
		t.Errorf("expected bob, got %q", got[KeyUser])
	}
}

func TestResolve_Defaults(t *testing.T) {
	opts, err := Resolve(ParseArgs(nil), nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := &Options{
		Path:     ".",
		Mode:     changeset.All,
		Engine:   changeset.EngineShell,
		Protocol: remote.ProtocolFTP,
	}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("expected defaults %+v, got %+v", want, opts)
	}
}

func TestResolve_EmptyPathKeepsDefault(t *testing.T) {
	opts, err := Resolve(ParseArgs([]string{"--path="}), nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Path != "." {
		t.Errorf("expected ., got %q", opts.Path)
	}
}

func TestResolve_Supplements(t *testing.T) {
	opts, err := Resolve(ParseArgs([]string{
		"--port=2121", "--mode=new", "--protocol=SFTP", "--engine=go-git", "--prompt=false",
	}), nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if opts.Port != 2121 || opts.Mode != changeset.NewOnly || opts.Protocol != remote.ProtocolSFTP ||
		opts.Engine != changeset.EngineGoGit || opts.Prompt {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestResolve_InvalidValues(t *testing.T) {
	tests := [][]string{
		{"--port=0"},
		{"--port=http"},
		{"--mode=everything"},
		{"--engine=svn"},
		{"--debug=maybe"},
	}
	for _, args := range tests {
		_, err := Resolve(ParseArgs(args), nil)
		if !errors.Is(err, ErrInvalidOption) {
			t.Errorf("%v: expected ErrInvalidOption, got %v", args, err)
		}
	}

	_, err := Resolve(ParseArgs([]string{"--protocol=gopher"}), nil)
	if !errors.Is(err, remote.ErrUnknownProtocol) {
		t.Errorf("expected ErrUnknownProtocol, got %v", err)
	}
}

func TestOptions_Endpoint(t *testing.T) {
	opts := &Options{Protocol: "ftp", Host: "h", Port: 21, User: "u", Password: "p"}
	want := remote.Endpoint{Protocol: "ftp", Host: "h", Port: 21, User: "u", Password: "p"}
	if got := opts.Endpoint(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestLoad_ProfileThenArgs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "gitftp.yaml")
	err := SaveProfileTo(path, &Profile{
		Host:     "ftp.example.com",
		Port:     2121,
		User:     "deploy",
		Password: "from-file",
		BaseDir:  "releases",
		Mode:     "changed",
	})
	if err != nil {
		t.Fatalf("SaveProfileTo: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600, got %o", info.Mode().Perm())
	}

	opts, err := Load([]string{"--config=" + path, "--pass=from-cli"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.Host != "ftp.example.com" || opts.Port != 2121 || opts.User != "deploy" ||
		opts.BaseDir != "releases" || opts.Mode != changeset.ChangeOnly {
		t.Errorf("profile values not applied: %+v", opts)
	}
	if opts.Password != "from-cli" {
		t.Errorf("expected CLI password to win, got %q", opts.Password)
	}
}

func TestLoad_MissingProfile(t *testing.T) {
	_, err := Load([]string{"--config=" + filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadProfileFrom_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("host: [unterminated"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfileFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_InvalidProfileValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	if err := SaveProfileTo(path, &Profile{Mode: "sometimes"}); err != nil {
		t.Fatal(err)
	}
	if _, err := Load([]string{"config=" + path}); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption, got %v", err)
	}
}

func TestPrompter_FillMissing(t *testing.T) {
	in := strings.NewReader("ftp.example.com\n\nhunter2\n")
	var out bytes.Buffer
	p := NewPrompter(in, &out)

	opts := DefaultOptions()
	if err := p.FillMissing(opts); err != nil {
		t.Fatalf("FillMissing: %v", err)
	}
	if opts.Host != "ftp.example.com" {
		t.Errorf("expected host, got %q", opts.Host)
	}
	if opts.User != AnonymousUser {
		t.Errorf("expected default user %q, got %q", AnonymousUser, opts.User)
	}
	if opts.Password != "hunter2" {
		t.Errorf("expected password, got %q", opts.Password)
	}
	if !strings.Contains(out.String(), "Password for anonymous@ftp.example.com") {
		t.Errorf("unexpected prompts: %q", out.String())
	}
}

func TestPrompter_FillMissingKeepsGiven(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})
	opts := &Options{Host: "h", User: "u", Password: "p"}
	if err := p.FillMissing(opts); err != nil {
		t.Fatal(err)
	}
	if opts.Host != "h" || opts.User != "u" || opts.Password != "p" {
		t.Errorf("given values changed: %+v", opts)
	}
}
