package config

import (
	"errors"
	"path/filepath"
	"strings"
)

// OutputConfig 输出配置
//
// 管理命中密钥的持久化：
//   - 密钥文件路径
//   - 覆盖策略
//   - 文本报告
//   - 加密备份目录
type OutputConfig struct {
	// Path 密钥文件路径
	// 为空时使用 <地址>.json
	Path string `json:"path"`

	// Overwrite 是否覆盖已存在的文件
	Overwrite bool `json:"overwrite"`

	// Report 是否在密钥文件旁写入 <path>.txt 文本报告
	Report bool `json:"report"`

	// KeystoreDir 加密备份目录
	// 为空表示不写加密备份
	KeystoreDir string `json:"keystore_dir,omitempty"`
}

// DefaultOutputConfig 返回默认输出配置
func DefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Path:        "",    // 默认空：按地址命名
		Overwrite:   false, // 默认拒绝覆盖，防止误删已有密钥
		Report:      false, // 默认不写报告
		KeystoreDir: "",    // 默认不写加密备份
	}
}

// Validate 验证输出配置
func (c OutputConfig) Validate() error {
	if c.Path != "" {
		if strings.HasSuffix(c.Path, string(filepath.Separator)) {
			return errors.New("output path must name a file, not a directory")
		}
	}
	return nil
}

// WithPath 设置密钥文件路径
func (c OutputConfig) WithPath(path string) OutputConfig {
	c.Path = path
	return c
}

// WithOverwrite 设置是否覆盖已有文件
func (c OutputConfig) WithOverwrite(overwrite bool) OutputConfig {
	c.Overwrite = overwrite
	return c
}

// WithReport 设置是否写文本报告
func (c OutputConfig) WithReport(report bool) OutputConfig {
	c.Report = report
	return c
}

// WithKeystoreDir 设置加密备份目录
func (c OutputConfig) WithKeystoreDir(dir string) OutputConfig {
	c.KeystoreDir = dir
	return c
}
