// Package app 提供 go-vanity 应用编排层
//
// app 包负责：
//   - fx 模块组装（配置、密码学提供者、完整性守卫、指标）
//   - 依赖注入协调
//   - 生命周期管理（指标服务随应用启停）
package app

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-vanity/config"
	"github.com/dep2p/go-vanity/internal/util/logger"
	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

var log = logger.Logger("app")

// Bootstrap 应用引导程序
//
// Bootstrap 负责：
//   - 校验配置
//   - 组装 fx 模块
//   - 管理应用生命周期
type Bootstrap struct {
	config   *config.Config
	opts     BuildOptions
	provider crypto.Provider
	clock    clock.Clock

	fxApp   *fx.App
	runtime *Runtime
}

// NewBootstrap 创建引导程序
func NewBootstrap(cfg *config.Config, opts ...BootstrapOption) *Bootstrap {
	b := &Bootstrap{
		config: cfg,
		opts:   DefaultBuildOptions(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.config == nil {
		b.config = config.NewConfig()
	}
	return b
}

// Start 构建并启动应用
//
// 返回的 Runtime 在 Stop 之前一直有效；配置了指标地址时指标服务已在监听。
func (b *Bootstrap) Start(ctx context.Context) (*Runtime, error) {
	if b.fxApp != nil {
		return b.runtime, nil
	}
	if err := b.config.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}

	rt := &Runtime{Config: b.config, stop: b.Stop}
	b.fxApp = fx.New(
		fx.Options(b.setupModules()...),
		fx.WithLogger(b.fxLogger),
		fx.Populate(&rt.Provider, &rt.Guard, &rt.Recorder, &rt.Metrics, &rt.Registry, &rt.Clock),
	)
	if err := b.fxApp.Err(); err != nil {
		b.fxApp = nil
		return nil, fmt.Errorf("组装模块失败: %w", err)
	}

	startCtx, cancel := context.WithTimeout(ctx, b.opts.StartTimeout)
	defer cancel()
	if err := b.fxApp.Start(startCtx); err != nil {
		b.fxApp = nil
		return nil, fmt.Errorf("启动应用失败: %w", err)
	}

	b.runtime = rt
	log.Debug("application started", "metrics", b.config.Metrics.ListenAddr)
	return rt, nil
}

// Stop 停止应用
func (b *Bootstrap) Stop(ctx context.Context) error {
	if b.fxApp == nil {
		return nil
	}

	stopCtx, cancel := context.WithTimeout(ctx, b.opts.StopTimeout)
	defer cancel()

	err := b.fxApp.Stop(stopCtx)
	b.fxApp = nil
	b.runtime = nil
	return err
}

// setupModules 组装所有 fx 模块
func (b *Bootstrap) setupModules() []fx.Option {
	return []fx.Option{
		// 配置（Tier 0）
		fx.Supply(b.config),

		// 基础层（Tier 1: clock, provider, guard）
		FoundationModules(b.provider, b.clock),

		// 监控层（Tier 2: metrics）
		MonitoringModules(),
	}
}

// fxLogger fx 事件日志
//
// 默认丢弃；启用 Debug 时输出到 zap 开发日志。
func (b *Bootstrap) fxLogger() fxevent.Logger {
	if !b.opts.Debug {
		return &fxevent.ZapLogger{Logger: zap.NewNop()}
	}
	zl, err := zap.NewDevelopment()
	if err != nil {
		return &fxevent.ZapLogger{Logger: zap.NewNop()}
	}
	return &fxevent.ZapLogger{Logger: zl}
}

