package search

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-vanity/pkg/lib/crypto"
	"github.com/dep2p/go-vanity/tests/mocks"
)

func TestBenchmark_MockClock(t *testing.T) {
	clk := clock.NewMock()
	p := mocks.NewMockProvider()
	p.GenerateFunc = func() (*crypto.Keypair, error) {
		clk.Add(time.Millisecond)
		return p.Real.Generate()
	}

	rate, err := benchmark(context.Background(), clk, p, 100*time.Millisecond)
	require.NoError(t, err)
	assert.InDelta(t, 1000, rate, 1)
	assert.EqualValues(t, 100, p.GenerateCalls.Load())
}

func TestBenchmark_Real(t *testing.T) {
	rate, err := Benchmark(context.Background(), crypto.NewEd25519Provider(), 20*time.Millisecond)
	require.NoError(t, err)
	assert.Greater(t, rate, 0.0)
}

func TestBenchmark_Errors(t *testing.T) {
	_, err := Benchmark(context.Background(), crypto.NewEd25519Provider(), 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Benchmark(ctx, crypto.NewEd25519Provider(), time.Second)
	assert.ErrorIs(t, err, context.Canceled)

	p := mocks.NewMockProvider()
	p.GenerateFunc = func() (*crypto.Keypair, error) { return nil, crypto.ErrRandomSource }
	_, err = Benchmark(context.Background(), p, time.Second)
	assert.ErrorIs(t, err, crypto.ErrRandomSource)
}
