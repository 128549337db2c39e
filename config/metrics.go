package config

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// MetricsConfig 指标配置
type MetricsConfig struct {
	// ListenAddr Prometheus /metrics 监听地址，例如 "127.0.0.1:9108"
	// 为空表示不启动指标服务
	ListenAddr string `json:"listen_addr,omitempty"`

	// ShutdownTimeout 指标服务优雅关闭的超时
	ShutdownTimeout Duration `json:"shutdown_timeout"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		ListenAddr:      "",                        // 默认不启动指标服务
		ShutdownTimeout: Duration(5 * time.Second), // 关闭时最多等待 5 秒
	}
}

// Enabled 报告是否启用指标服务
func (c MetricsConfig) Enabled() bool {
	return c.ListenAddr != ""
}

// Validate 验证指标配置
func (c MetricsConfig) Validate() error {
	if c.ListenAddr != "" {
		if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
			return fmt.Errorf("invalid listen address %q: %w", c.ListenAddr, err)
		}
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	return nil
}

// WithListenAddr 设置监听地址
func (c MetricsConfig) WithListenAddr(addr string) MetricsConfig {
	c.ListenAddr = addr
	return c
}
