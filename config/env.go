package config

import (
	"fmt"
	"strconv"
	"strings"
)

// 环境变量名（均使用 EnvPrefix 前缀）
const (
	EnvPrefix = "VANITY_"

	EnvThreads          = "THREADS"
	EnvVerifyKeypairs   = "VERIFY_KEYPAIRS"
	EnvProgressInterval = "PROGRESS_INTERVAL"
	EnvOutput           = "OUTPUT"
	EnvOverwrite        = "OVERWRITE"
	EnvReport           = "REPORT"
	EnvKeystoreDir      = "KEYSTORE_DIR"
	EnvMetricsAddr      = "METRICS_ADDR"
)

// ApplyEnv 应用环境变量覆盖配置
//
// 环境变量优先级高于配置文件，但低于命令行参数。
// getenv 通常为 os.Getenv，测试中可替换。
//
// 支持的环境变量：
//   - VANITY_THREADS: 工作线程数
//   - VANITY_VERIFY_KEYPAIRS: 是否校验候选密钥
//   - VANITY_PROGRESS_INTERVAL: 进度回调间隔
//   - VANITY_OUTPUT: 密钥文件路径
//   - VANITY_OVERWRITE: 覆盖已有文件
//   - VANITY_REPORT: 写文本报告
//   - VANITY_KEYSTORE_DIR: 加密备份目录
//   - VANITY_METRICS_ADDR: 指标服务监听地址
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	lookup := func(name string) string {
		return strings.TrimSpace(getenv(EnvPrefix + name))
	}

	if v := lookup(EnvThreads); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, EnvThreads, err)
		}
		cfg.Search.Threads = n
	}
	if v := lookup(EnvVerifyKeypairs); v != "" {
		cfg.Search.VerifyKeypairs = parseBool(v)
	}
	if v := lookup(EnvProgressInterval); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, EnvProgressInterval, err)
		}
		cfg.Search.ProgressInterval = n
	}
	if v := lookup(EnvOutput); v != "" {
		cfg.Output.Path = v
	}
	if v := lookup(EnvOverwrite); v != "" {
		cfg.Output.Overwrite = parseBool(v)
	}
	if v := lookup(EnvReport); v != "" {
		cfg.Output.Report = parseBool(v)
	}
	if v := lookup(EnvKeystoreDir); v != "" {
		cfg.Output.KeystoreDir = v
	}
	if v := lookup(EnvMetricsAddr); v != "" {
		cfg.Metrics.ListenAddr = v
	}
	return nil
}

// parseBool 解析布尔值字符串
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
