package main

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/dep2p/go-vanity/config"
	"github.com/dep2p/go-vanity/internal/core/matcher"
	"github.com/dep2p/go-vanity/internal/core/search"
	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

// probabilityMultiples 概率表的行：期望尝试次数的倍数
var probabilityMultiples = []float64{0.5, 1, 2, 5}

// dryRun 测量单线程速率并打印难度估算，不生成任何密钥
func dryRun(ctx context.Context, w io.Writer, cfg *config.Config, pattern matcher.Pattern) error {
	threads := cfg.Search.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	d := search.EstimateDifficulty(pattern)
	window := cfg.Search.BenchmarkDuration.Duration()

	fmt.Fprintln(w, "难度估算")
	fmt.Fprintln(w, "════════")
	fmt.Fprintf(w, "模式:         %s\n", pattern.Description())
	fmt.Fprintf(w, "线程数:       %d\n", threads)
	fmt.Fprintf(w, "\n正在测量生成速率（%s）...\n", window)

	perThread, err := search.Benchmark(ctx, crypto.NewEd25519Provider(), window)
	if err != nil {
		return fmt.Errorf("测速失败: %w", err)
	}
	total := perThread * float64(threads)

	fmt.Fprintf(w, "单线程速率:   %s 次/秒\n", formatCount(perThread))
	fmt.Fprintf(w, "总速率:       约 %s 次/秒（%d 线程）\n", formatCount(total), threads)
	fmt.Fprintf(w, "\n期望尝试次数: %s\n", formatCount(d.ExpectedAttempts))
	fmt.Fprintf(w, "期望耗时:     %s\n", formatDuration(d.ExpectedDuration(total)))
	fmt.Fprintf(w, "中位耗时:     %s\n", formatDuration(d.MedianDuration(total)))

	fmt.Fprintln(w, "\n在以下尝试次数内找到的概率:")
	for _, m := range probabilityMultiples {
		attempts := m * d.ExpectedAttempts
		fmt.Fprintf(w, "  %5.1f%%  %s 次  约 %s\n",
			d.SuccessProbability(attempts)*100,
			formatCount(attempts),
			formatDuration(search.EstimateDuration(attempts, total)),
		)
	}
	return nil
}
