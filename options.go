package vanity

import (
	"fmt"

	"github.com/dep2p/go-vanity/config"
	"github.com/dep2p/go-vanity/internal/app"
	"github.com/dep2p/go-vanity/internal/core/search"
	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

// Option 用户配置选项函数
type Option func(*options) error

// ProgressFunc 进度回调，参数为累计尝试次数和已用时间
type ProgressFunc = search.ProgressFunc

// options 内部选项结构
type options struct {
	config     *config.Config
	ignoreCase bool
	progress   ProgressFunc
	provider   crypto.Provider
}

// newOptions 应用选项到默认配置
func newOptions(opts []Option) (*options, error) {
	o := &options{config: config.NewConfig()}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// bootstrapOptions 转换为 app.Bootstrap 选项
func (o *options) bootstrapOptions() []app.BootstrapOption {
	var opts []app.BootstrapOption
	if o.provider != nil {
		opts = append(opts, app.WithProvider(o.provider))
	}
	return opts
}

// WithConfig 使用完整配置（复制后使用，调用方后续修改不影响搜索）
//
// 应放在其他选项之前，否则会覆盖它们。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("%w: nil config", ErrInvalidConfig)
		}
		o.config = cfg.Clone()
		return nil
	}
}

// WithThreads 设置工作线程数（0 表示全部逻辑 CPU）
func WithThreads(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("%w: threads must not be negative, got %d", ErrInvalidConfig, n)
		}
		o.config.Search.Threads = n
		return nil
	}
}

// WithIgnoreCase 大小写不敏感匹配
func WithIgnoreCase() Option {
	return func(o *options) error {
		o.ignoreCase = true
		return nil
	}
}

// WithVerify 设置是否对命中的候选做签名自检（默认启用）
func WithVerify(verify bool) Option {
	return func(o *options) error {
		o.config.Search.VerifyKeypairs = verify
		return nil
	}
}

// WithProgress 设置进度回调
//
// interval 为回调间隔（尝试次数），必须大于 0。
// 回调在越过间隔的 worker 上同步执行，应尽快返回。
func WithProgress(interval uint64, fn ProgressFunc) Option {
	return func(o *options) error {
		if interval == 0 {
			return fmt.Errorf("%w: progress interval must be positive", ErrInvalidConfig)
		}
		o.config.Search.ProgressInterval = interval
		o.progress = fn
		return nil
	}
}

// WithProvider 替换密码学提供者
func WithProvider(p crypto.Provider) Option {
	return func(o *options) error {
		if p == nil {
			return fmt.Errorf("%w: nil provider", ErrInvalidConfig)
		}
		o.provider = p
		return nil
	}
}

// WithMetricsAddr 搜索期间在 addr 上提供 Prometheus /metrics
func WithMetricsAddr(addr string) Option {
	return func(o *options) error {
		o.config.Metrics.ListenAddr = addr
		return nil
	}
}
