package app

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

// BootstrapOption Bootstrap 配置选项
type BootstrapOption func(*Bootstrap)

// WithProvider 替换密码学提供者（测试中注入 mock）
func WithProvider(p crypto.Provider) BootstrapOption {
	return func(b *Bootstrap) {
		b.provider = p
	}
}

// WithClock 替换时钟
func WithClock(clk clock.Clock) BootstrapOption {
	return func(b *Bootstrap) {
		b.clock = clk
	}
}

// WithBuildOptions 设置构建选项
func WithBuildOptions(opts BuildOptions) BootstrapOption {
	return func(b *Bootstrap) {
		b.opts = opts
	}
}

// BuildOptions 构建选项
type BuildOptions struct {
	// StartTimeout 启动超时
	StartTimeout time.Duration

	// StopTimeout 停止超时
	StopTimeout time.Duration

	// Debug 输出 fx 事件日志
	Debug bool
}

// DefaultBuildOptions 默认构建选项
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		StartTimeout: 15 * time.Second,
		StopTimeout:  15 * time.Second,
		Debug:        false,
	}
}
