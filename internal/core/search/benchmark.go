package search

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

// Benchmark 测量单线程密钥生成速率（次/秒）
//
// 循环生成密钥对并派生地址，直到 d 用完或 ctx 取消。
func Benchmark(ctx context.Context, provider crypto.Provider, d time.Duration) (float64, error) {
	return benchmark(ctx, clock.New(), provider, d)
}

func benchmark(ctx context.Context, clk clock.Clock, provider crypto.Provider, d time.Duration) (float64, error) {
	if d <= 0 {
		return 0, fmt.Errorf("%w: benchmark duration must be positive", ErrInvalidConfig)
	}

	start := clk.Now()
	var n uint64
	for clk.Since(start) < d {
		if err := ctx.Err(); err != nil {
			if n == 0 {
				return 0, err
			}
			break
		}

		kp, err := provider.Generate()
		if err != nil {
			return 0, fmt.Errorf("generate keypair: %w", err)
		}
		_ = provider.DeriveAddress(kp.PublicKey())
		kp.Destroy()
		n++
	}

	elapsed := clk.Since(start)
	if elapsed <= 0 || n == 0 {
		return 0, fmt.Errorf("benchmark produced no samples")
	}
	rate := float64(n) / elapsed.Seconds()
	log.Debug("benchmark finished", "keys", n, "elapsed", elapsed, "rate", rate)
	return rate, nil
}
