package app

import (
	"context"
	"runtime"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-vanity/config"
	"github.com/dep2p/go-vanity/internal/core/integrity"
	"github.com/dep2p/go-vanity/internal/core/matcher"
	"github.com/dep2p/go-vanity/internal/core/metrics"
	"github.com/dep2p/go-vanity/internal/core/search"
	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

// Runtime 表示一个已通过 fx 组装完成的运行时
//
// 每次搜索通过 NewCoordinator 创建新的协调器，共享同一套提供者、守卫和指标。
type Runtime struct {
	Config   *config.Config
	Provider crypto.Provider
	Guard    *integrity.Guard
	Recorder search.Recorder
	Metrics  *metrics.SearchMetrics
	Registry *prometheus.Registry
	Clock    clock.Clock

	stop func(ctx context.Context) error
}

// SearchConfig 将统一配置转换为 search.Config
//
// Threads 为 0 时使用全部逻辑 CPU。
func (r *Runtime) SearchConfig() search.Config {
	sc := r.Config.Search
	threads := sc.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	return search.Config{
		Threads:          threads,
		VerifyKeypairs:   sc.VerifyKeypairs,
		ProgressInterval: sc.ProgressInterval,
	}
}

// NewCoordinator 为 pattern 创建搜索协调器
func (r *Runtime) NewCoordinator(p matcher.Pattern) (*search.Coordinator, error) {
	return search.New(r.SearchConfig(), r.Provider, matcher.Compile(p),
		search.WithGuard(r.Guard),
		search.WithRecorder(r.Recorder),
		search.WithClock(r.Clock),
	)
}

// Stop 停止运行时（触发 fx 生命周期 OnStop）
func (r *Runtime) Stop(ctx context.Context) error {
	if r.stop == nil {
		return nil
	}
	return r.stop(ctx)
}
