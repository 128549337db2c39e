package app

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-vanity/config"
	"github.com/dep2p/go-vanity/internal/core/integrity"
	"github.com/dep2p/go-vanity/internal/core/metrics"
	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

// ============================================================================
//                              模块集合
// ============================================================================

// FoundationModules 基础层模块
//
// 提供 clock.Clock、crypto.Provider 和 *integrity.Guard。
// provider/clk 为 nil 时使用真实实现。
func FoundationModules(provider crypto.Provider, clk clock.Clock) fx.Option {
	return fx.Module("foundation",
		fx.Provide(
			func() clock.Clock {
				if clk != nil {
					return clk
				}
				return clock.New()
			},
			func() crypto.Provider {
				if provider != nil {
					return provider
				}
				return crypto.NewEd25519Provider()
			},
			NewGuard,
		),
	)
}

// MonitoringModules 监控层模块
func MonitoringModules() fx.Option {
	return metrics.Module()
}

// NewGuard 按安全配置创建完整性守卫
func NewGuard(provider crypto.Provider, cfg *config.Config) *integrity.Guard {
	sec := cfg.Security
	return integrity.NewGuard(provider,
		integrity.WithEntropySamples(sec.EntropySamples),
		integrity.WithMinDistinctSymbols(sec.MinDistinctSymbols),
	)
}
