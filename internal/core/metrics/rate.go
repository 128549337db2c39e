package metrics

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// ============================================================================
// RateMeter - 速率计算器
// ============================================================================

// DefaultRateWindow 默认滑动窗口（秒）
const DefaultRateWindow = 10

// RateMeter 速率计算器（基于滑动窗口）
//
// 使用 window 个 1 秒桶计算最近 window 秒的平均速率，
// 用于展示当前的密钥生成速度（与整个搜索的平均速度区分）。
type RateMeter struct {
	mu       sync.Mutex
	clock    clock.Clock
	buckets  []uint64  // 每秒一个桶
	lastIdx  int       // 最后写入的桶索引
	lastTime time.Time // 当前桶的起始时间
	total    uint64    // 累计总量
}

// NewRateMeter 创建速率计算器
//
// window 小于 1 时使用 DefaultRateWindow；clk 为 nil 时使用系统时钟。
func NewRateMeter(window int, clk clock.Clock) *RateMeter {
	if window < 1 {
		window = DefaultRateWindow
	}
	if clk == nil {
		clk = clock.New()
	}
	return &RateMeter{
		clock:    clk,
		buckets:  make([]uint64, window),
		lastTime: clk.Now(),
	}
}

// Add 累加到当前桶
func (r *RateMeter) Add(n uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.advance()
	r.buckets[r.lastIdx] += n
	r.total += n
}

// Rate 返回最近窗口内的平均速率（次/秒）
func (r *RateMeter) Rate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.advance()
	var sum uint64
	for _, v := range r.buckets {
		sum += v
	}
	return float64(sum) / float64(len(r.buckets))
}

// Total 返回累计总量
func (r *RateMeter) Total() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Reset 重置速率计算器
func (r *RateMeter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.buckets)
	r.lastIdx = 0
	r.total = 0
	r.lastTime = r.clock.Now()
}

// advance 按经过的整秒数轮转桶，调用方持有锁
func (r *RateMeter) advance() {
	elapsed := r.clock.Since(r.lastTime)
	if elapsed < time.Second {
		return
	}

	seconds := int(elapsed / time.Second)
	if seconds >= len(r.buckets) {
		// 超过整个窗口没有数据
		clear(r.buckets)
		r.lastIdx = 0
	} else {
		for i := 0; i < seconds; i++ {
			r.lastIdx = (r.lastIdx + 1) % len(r.buckets)
			r.buckets[r.lastIdx] = 0
		}
	}
	r.lastTime = r.lastTime.Add(time.Duration(seconds) * time.Second)
}
