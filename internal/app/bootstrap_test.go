package app

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-vanity/config"
	"github.com/dep2p/go-vanity/internal/core/integrity"
	"github.com/dep2p/go-vanity/internal/core/matcher"
	"github.com/dep2p/go-vanity/internal/core/search"
	"github.com/dep2p/go-vanity/pkg/lib/crypto"
	"github.com/dep2p/go-vanity/tests/mocks"
)

func startRuntime(t *testing.T, cfg *config.Config, opts ...BootstrapOption) *Runtime {
	t.Helper()
	b := NewBootstrap(cfg, opts...)
	rt, err := b.Start(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, rt.Stop(context.Background()))
	})
	return rt
}

func TestBootstrap_Start(t *testing.T) {
	rt := startRuntime(t, nil)

	assert.NotNil(t, rt.Provider)
	assert.NotNil(t, rt.Guard)
	assert.NotNil(t, rt.Recorder)
	assert.NotNil(t, rt.Metrics)
	assert.NotNil(t, rt.Registry)
	assert.NotNil(t, rt.Clock)
	assert.Same(t, rt.Metrics, rt.Recorder)
}

func TestBootstrap_InvalidConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Search.ProgressInterval = 0

	_, err := NewBootstrap(cfg).Start(context.Background())
	assert.Error(t, err)
}

func TestBootstrap_StartIdempotent(t *testing.T) {
	b := NewBootstrap(nil)
	rt1, err := b.Start(context.Background())
	require.NoError(t, err)
	rt2, err := b.Start(context.Background())
	require.NoError(t, err)
	assert.Same(t, rt1, rt2)

	require.NoError(t, b.Stop(context.Background()))
	// 重复 Stop 无副作用
	require.NoError(t, b.Stop(context.Background()))
}

func TestBootstrap_MetricsServer(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics = cfg.Metrics.WithListenAddr("127.0.0.1:0")

	rt := startRuntime(t, cfg, WithBuildOptions(BuildOptions{
		StartTimeout: 5 * time.Second,
		StopTimeout:  5 * time.Second,
		Debug:        true,
	}))
	assert.NotNil(t, rt.Registry)
}

func TestRuntime_SearchConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Search = cfg.Search.WithThreads(3).WithVerifyKeypairs(false).WithProgressInterval(500)

	rt := &Runtime{Config: cfg}
	sc := rt.SearchConfig()
	assert.Equal(t, 3, sc.Threads)
	assert.False(t, sc.VerifyKeypairs)
	assert.Equal(t, uint64(500), sc.ProgressInterval)

	cfg.Search.Threads = 0
	assert.GreaterOrEqual(t, rt.SearchConfig().Threads, 1)
}

func TestRuntime_NewCoordinator(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Search = cfg.Search.WithThreads(2)

	provider := mocks.NewMockProvider()
	rt := startRuntime(t, cfg, WithProvider(provider), WithClock(clock.New()))
	assert.Same(t, provider, rt.Provider)

	pattern, err := matcher.NewPrefix("A", true)
	require.NoError(t, err)

	coord, err := rt.NewCoordinator(pattern)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := coord.Run(ctx, nil)
	require.NoError(t, err)
	defer result.Destroy()

	assert.Equal(t, search.StateFound, coord.State())
	assert.True(t, matcher.Compile(pattern).Match(result.Address))
	assert.Equal(t, float64(result.Attempts), testutil.ToFloat64(rt.Metrics.Attempts))
	assert.Equal(t, 1.0, testutil.ToFloat64(rt.Metrics.Searches.WithLabelValues("found")))
}

func TestFoundationModules(t *testing.T) {
	var (
		provider crypto.Provider
		guard    *integrity.Guard
		clk      clock.Clock
	)

	app := fxtest.New(t,
		fx.Supply(config.NewConfig()),
		FoundationModules(nil, nil),
		fx.Populate(&provider, &guard, &clk),
		fx.NopLogger,
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.IsType(t, &crypto.Ed25519Provider{}, provider)
	assert.NoError(t, guard.CheckEntropy())
	assert.NotNil(t, clk)
}

func TestNewGuard_UsesSecurityConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Security = cfg.Security.WithEntropySamples(3).WithMinDistinctSymbols(3)

	provider := mocks.NewMockProvider()
	guard := NewGuard(provider, cfg)
	require.NoError(t, guard.CheckEntropy())
	assert.EqualValues(t, 3, provider.GenerateCalls.Load())
}

func TestNotifyContext_ParentCancel(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := NotifyContext(parent, nil)
	defer cancel()

	cancelParent()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled")
	}
}
