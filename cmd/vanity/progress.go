package main

import (
	"fmt"
	"io"
	"math"
	"time"

	units "github.com/docker/go-units"
	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/dep2p/go-vanity/internal/core/search"
)

// progressRefresh 进度行的最短刷新间隔
const progressRefresh = 500 * time.Millisecond

// progressPrinter 在终端上原地刷新进度行
//
// report 会被多个 worker 并发调用，rate.Sometimes 负责串行化与节流。
type progressPrinter struct {
	w          io.Writer
	difficulty search.Difficulty
	limiter    rate.Sometimes
	printed    bool
}

func newProgressPrinter(w io.Writer, d search.Difficulty, interval time.Duration) *progressPrinter {
	return &progressPrinter{
		w:          w,
		difficulty: d,
		limiter:    rate.Sometimes{Interval: interval},
	}
}

// report 实现 search.ProgressFunc
func (p *progressPrinter) report(attempts uint64, elapsed time.Duration) {
	p.limiter.Do(func() {
		fmt.Fprintf(p.w, "\r%s", progressLine(p.difficulty, attempts, elapsed))
		p.printed = true
	})
}

// finish 结束进度行，nil 接收者为空操作
func (p *progressPrinter) finish() {
	if p == nil || !p.printed {
		return
	}
	fmt.Fprintln(p.w)
}

// progressLine 生成一行进度描述
func progressLine(d search.Difficulty, attempts uint64, elapsed time.Duration) string {
	var perSecond float64
	if elapsed > 0 {
		perSecond = float64(attempts) / elapsed.Seconds()
	}
	return fmt.Sprintf("已尝试 %s 次 | %s 次/秒 | 已用 %s | 累计命中概率 %.1f%%",
		humanize.Comma(int64(min(attempts, math.MaxInt64))),
		formatCount(perSecond),
		units.HumanDuration(elapsed),
		d.SuccessProbability(float64(attempts))*100,
	)
}

// ============================================================================
//                              格式化
// ============================================================================

// formatCount 带千分位的整数形式
func formatCount(v float64) string {
	return humanize.Commaf(math.Round(v))
}

// formatDuration 人类可读的耗时，超出表示范围时给出上限描述
func formatDuration(d time.Duration) string {
	if d == time.Duration(math.MaxInt64) {
		return "超过 " + units.HumanDuration(d)
	}
	return units.HumanDuration(d)
}
