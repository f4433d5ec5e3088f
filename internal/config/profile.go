package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Profile 对应 YAML 配置文件，所有字段可选，命令行参数会覆盖这里的值
type Profile struct {
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	Protocol string `yaml:"protocol,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	BaseDir  string `yaml:"basedir,omitempty"`
	Path     string `yaml:"path,omitempty"`
	Cmd      string `yaml:"cmd,omitempty"`
	Mode     string `yaml:"mode,omitempty"`
	Engine   string `yaml:"engine,omitempty"`
}

// LoadProfileFrom 从指定路径加载配置文件
func LoadProfileFrom(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("配置文件不存在: %s", path)
		}
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("解析 YAML 格式错误: %w", err)
	}
	return &p, nil
}

// SaveProfileTo 将配置保存到指定路径，权限 600（文件含明文密码）
func SaveProfileTo(path string, p *Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("保存配置文件失败: %w", err)
	}
	return nil
}

// apply 将非空字段写入 opts，校验规则与命令行参数一致
func (p *Profile) apply(opts *Options) error {
	fields := map[string]string{
		KeyHost:     p.Host,
		KeyProtocol: p.Protocol,
		KeyUser:     p.User,
		KeyPass:     p.Password,
		KeyBaseDir:  p.BaseDir,
		KeyPath:     p.Path,
		KeyCmd:      p.Cmd,
		KeyMode:     p.Mode,
		KeyEngine:   p.Engine,
	}
	if p.Port != 0 {
		fields[KeyPort] = strconv.Itoa(p.Port)
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := opts.set(key, value); err != nil {
			return fmt.Errorf("配置文件: %w", err)
		}
	}
	return nil
}
