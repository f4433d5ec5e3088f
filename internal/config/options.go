// Package config 解析命令行参数与可选的 YAML 配置文件，得到一次运行的完整参数。
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hwuu/gitftp/internal/changeset"
	"github.com/hwuu/gitftp/internal/remote"
)

var ErrInvalidOption = errors.New("invalid option")

// 规范化后的参数名
const (
	KeyPath     = "path"
	KeyCmd      = "cmd"
	KeyHost     = "host"
	KeyUser     = "user"
	KeyPass     = "pass"
	KeyBaseDir  = "basedir"
	KeyPort     = "port"
	KeyMode     = "mode"
	KeyProtocol = "protocol"
	KeyEngine   = "engine"
	KeyConfig   = "config"
	KeyDebug    = "debug"
	KeyPrompt   = "prompt"
)

// keyAliases 将可识别的参数名（含别名）映射到规范名，不在表中的参数被忽略
var keyAliases = map[string]string{
	"path":     KeyPath,
	"cmd":      KeyCmd,
	"host":     KeyHost,
	"hostname": KeyHost,
	"user":     KeyUser,
	"username": KeyUser,
	"pass":     KeyPass,
	"password": KeyPass,
	"basedir":  KeyBaseDir,
	"port":     KeyPort,
	"mode":     KeyMode,
	"protocol": KeyProtocol,
	"engine":   KeyEngine,
	"config":   KeyConfig,
	"debug":    KeyDebug,
	"prompt":   KeyPrompt,
}

// boolKeys 可以不带值出现（--debug 等同 --debug=true）
var boolKeys = map[string]bool{KeyDebug: true, KeyPrompt: true}

// Options 一次运行的完整参数
type Options struct {
	Path     string // 工作目录，默认 "."
	Query    string // 覆盖默认查询命令
	Mode     changeset.Mode
	Engine   string
	Protocol string
	Host     string
	Port     int
	User     string
	Password string
	BaseDir  string
	Debug    bool
	Prompt   bool
}

// DefaultOptions 返回默认参数；主机、用户名、密码默认为空（连接将失败）
func DefaultOptions() *Options {
	return &Options{
		Path:     ".",
		Mode:     changeset.All,
		Engine:   changeset.EngineShell,
		Protocol: remote.ProtocolFTP,
	}
}

// Endpoint 返回连接参数
func (o *Options) Endpoint() remote.Endpoint {
	return remote.Endpoint{
		Protocol: o.Protocol,
		Host:     o.Host,
		Port:     o.Port,
		User:     o.User,
		Password: o.Password,
	}
}

// ParseArgs 将 --key=value（-- 前缀可省略）形式的参数解析为扁平映射。
// 只在第一个 = 处切分；不认识的参数与不含 = 的非布尔参数被忽略；后出现的覆盖先出现的。
func ParseArgs(args []string) map[string]string {
	values := make(map[string]string)
	for _, arg := range args {
		key, value, hasValue := strings.Cut(arg, "=")
		key = strings.ToLower(strings.TrimPrefix(key, "--"))
		canonical, ok := keyAliases[key]
		if !ok {
			continue
		}
		if !hasValue {
			if !boolKeys[canonical] {
				continue
			}
			value = "true"
		}
		values[canonical] = value
	}
	return values
}

// Load 解析参数；若指定了 config，先加载配置文件，命令行参数优先
func Load(args []string) (*Options, error) {
	values := ParseArgs(args)

	var profile *Profile
	if path := values[KeyConfig]; path != "" {
		p, err := LoadProfileFrom(path)
		if err != nil {
			return nil, err
		}
		profile = p
	}
	return Resolve(values, profile)
}

// Resolve 合并默认值、配置文件与命令行参数（优先级依次升高）
func Resolve(values map[string]string, profile *Profile) (*Options, error) {
	opts := DefaultOptions()
	if profile != nil {
		if err := profile.apply(opts); err != nil {
			return nil, err
		}
	}

	for key, value := range values {
		if err := opts.set(key, value); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

func (o *Options) set(key, value string) error {
	switch key {
	case KeyPath:
		if value != "" {
			o.Path = value
		}
	case KeyCmd:
		o.Query = value
	case KeyHost:
		o.Host = value
	case KeyUser:
		o.User = value
	case KeyPass:
		o.Password = value
	case KeyBaseDir:
		o.BaseDir = value
	case KeyPort:
		port, err := parsePort(value)
		if err != nil {
			return err
		}
		o.Port = port
	case KeyMode:
		mode, err := changeset.ParseMode(value)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOption, err)
		}
		o.Mode = mode
	case KeyProtocol:
		protocol, err := parseProtocol(value)
		if err != nil {
			return err
		}
		o.Protocol = protocol
	case KeyEngine:
		if _, err := changeset.NewResolver(value); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOption, err)
		}
		o.Engine = value
	case KeyDebug, KeyPrompt:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidOption, key, value)
		}
		if key == KeyDebug {
			o.Debug = b
		} else {
			o.Prompt = b
		}
	}
	return nil
}

func parsePort(value string) (int, error) {
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 0xffff {
		return 0, fmt.Errorf("%w: port number out of range: %q", ErrInvalidOption, value)
	}
	return port, nil
}

func parseProtocol(value string) (string, error) {
	switch p := strings.ToLower(value); p {
	case "", remote.ProtocolFTP:
		return remote.ProtocolFTP, nil
	case remote.ProtocolSFTP:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", remote.ErrUnknownProtocol, value)
}
