package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-vanity/config"
	"github.com/dep2p/go-vanity/internal/core/search"
)

func TestModule_ProvidesRecorder(t *testing.T) {
	var (
		rec search.Recorder
		m   *SearchMetrics
		reg *prometheus.Registry
	)

	app := fxtest.New(t,
		Module(),
		fx.Populate(&rec, &m, &reg),
		fx.NopLogger,
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, rec)
	assert.Same(t, m, rec)

	rec.AttemptsObserved(7)
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestModule_StartsServer(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics = cfg.Metrics.WithListenAddr("127.0.0.1:0")

	app := fxtest.New(t,
		fx.Supply(cfg),
		Module(),
		fx.NopLogger,
	)
	app.RequireStart()
	app.RequireStop()
}
