package metrics

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-vanity/config"
	"github.com/dep2p/go-vanity/internal/core/search"
)

// ============================================================================
//                              模块输入依赖
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// Config 统一配置（可选）
	Config *config.Config `optional:"true"`

	// Clock 时钟（可选，测试中注入 mock）
	Clock clock.Clock `optional:"true"`
}

// ============================================================================
//                              模块输出服务
// ============================================================================

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	Registry *prometheus.Registry
	Metrics  *SearchMetrics
	Recorder search.Recorder
}

// ============================================================================
//                              服务提供
// ============================================================================

// ProvideServices 提供模块服务
//
// 每个应用实例使用独立的 Registry，同一进程内多次构建互不冲突。
func ProvideServices(input ModuleInput) ModuleOutput {
	clk := input.Clock
	if clk == nil {
		clk = clock.New()
	}

	reg := prometheus.NewRegistry()
	m := New(reg, clk)

	return ModuleOutput{
		Registry: reg,
		Metrics:  m,
		Recorder: m,
	}
}

// ============================================================================
//                              模块定义
// ============================================================================

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(ProvideServices),
		fx.Invoke(registerLifecycle),
	)
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC       fx.Lifecycle
	Registry *prometheus.Registry
	Config   *config.Config `optional:"true"`
}

// registerLifecycle 配置了监听地址时随应用启停指标服务
func registerLifecycle(input lifecycleInput) {
	cfg := config.DefaultMetricsConfig()
	if input.Config != nil {
		cfg = input.Config.Metrics
	}
	if !cfg.Enabled() {
		log.Debug("metrics server disabled")
		return
	}

	srv := NewServer(cfg.ListenAddr, input.Registry)
	timeout := cfg.ShutdownTimeout.Duration()

	input.LC.Append(fx.Hook{
		OnStart: srv.Start,
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return srv.Stop(ctx)
		},
	})
}
