package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-vanity/internal/core/integrity"
	"github.com/dep2p/go-vanity/internal/core/matcher"
	"github.com/dep2p/go-vanity/internal/util/logger"
	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

var log = logger.Logger("search")

// ProgressFunc 进度回调
//
// 可能被多个 worker 并发调用，必须快速返回且不得 panic。
type ProgressFunc func(attempts uint64, elapsed time.Duration)

// Guard 搜索前预检与命中后验证
type Guard interface {
	CheckEntropy() error
	VerifyKeypair(kp *crypto.Keypair) error
}

// ============================================================================
//                              Coordinator
// ============================================================================

// Coordinator 并行搜索协调器
type Coordinator struct {
	cfg      Config
	provider crypto.Provider
	matcher  *matcher.Matcher
	guard    Guard
	clock    clock.Clock
	recorder Recorder
	runID    string
	log      *slog.Logger

	state   searchState
	phase   atomic.Int32
	started atomic.Bool
}

// Option Coordinator 配置选项
type Option func(*Coordinator)

// WithGuard 替换完整性守卫（默认 integrity.NewGuard(provider)）
func WithGuard(g Guard) Option {
	return func(c *Coordinator) {
		if g != nil {
			c.guard = g
		}
	}
}

// WithClock 替换时钟
func WithClock(clk clock.Clock) Option {
	return func(c *Coordinator) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithRecorder 设置指标记录器
func WithRecorder(r Recorder) Option {
	return func(c *Coordinator) {
		if r != nil {
			c.recorder = r
		}
	}
}

// New 创建搜索协调器
//
// 配置无效时返回 ErrInvalidConfig，此时不会启动任何工作。
func New(cfg Config, provider crypto.Provider, m *matcher.Matcher, opts ...Option) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrInvalidConfig)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: nil matcher", ErrInvalidConfig)
	}

	runID := uuid.NewString()
	c := &Coordinator{
		cfg:      cfg,
		provider: provider,
		matcher:  m,
		guard:    integrity.NewGuard(provider),
		clock:    clock.New(),
		recorder: nopRecorder{},
		runID:    runID,
		log:      log.With("run", runID),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RunID 返回搜索编号
func (c *Coordinator) RunID() string {
	return c.runID
}

// State 返回当前状态
func (c *Coordinator) State() State {
	return State(c.phase.Load())
}

// Attempts 返回当前总尝试次数
func (c *Coordinator) Attempts() uint64 {
	return c.state.attempts.Load()
}

// Cancel 请求取消搜索
//
// 可在任意 goroutine 中调用，可重复调用。Run 之前调用会让 Run 直接返回 ErrCancelled。
func (c *Coordinator) Cancel() {
	c.state.cancelled.Store(true)
}

// Run 执行搜索
//
// 先做熵源预检，然后启动 Threads 个 worker，直到结果提交、ctx 取消或 Cancel。
// 已提交的结果优先于取消返回。只能调用一次。
func (c *Coordinator) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	if !c.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRun
	}

	// ctx 已结束时同步置位取消标志，worker 启动前即可见
	if ctx.Err() != nil {
		c.Cancel()
	}
	if c.state.cancelled.Load() {
		c.finish(StateCancelled, 0)
		c.log.Info("search cancelled before start")
		return nil, ErrCancelled
	}

	if err := c.guard.CheckEntropy(); err != nil {
		c.log.Error("entropy pre-flight check failed", "err", err)
		c.phase.Store(int32(StateFailed))
		return nil, err
	}

	stopWatch := context.AfterFunc(ctx, c.Cancel)
	defer stopWatch()

	c.log.Info("search started",
		"pattern", c.matcher.Pattern().Description(),
		"threads", c.cfg.Threads,
		"verify", c.cfg.VerifyKeypairs)
	c.recorder.SearchStarted(c.cfg.Threads)

	start := c.clock.Now()
	var g errgroup.Group
	for i := 0; i < c.cfg.Threads; i++ {
		g.Go(func() error {
			return c.work(start, progress)
		})
	}
	werr := g.Wait()

	elapsed := c.clock.Since(start)
	total := c.state.attempts.Load()
	c.recorder.AttemptsObserved(total - c.state.lastReport.Swap(total))

	if res := c.state.committed(); res != nil {
		res.Attempts = total
		res.Elapsed = elapsed
		c.finish(StateFound, elapsed)
		c.log.Info("search found match",
			"address", res.Address,
			"attempts", total,
			"elapsed", elapsed)
		return res, nil
	}

	if werr != nil {
		c.finish(StateFailed, elapsed)
		c.log.Error("search failed", "attempts", total, "err", werr)
		return nil, werr
	}

	c.finish(StateCancelled, elapsed)
	c.log.Info("search cancelled", "attempts", total, "elapsed", elapsed)
	return nil, ErrCancelled
}

func (c *Coordinator) finish(s State, elapsed time.Duration) {
	c.phase.Store(int32(s))
	c.recorder.SearchFinished(s, elapsed)
}

// work 单个 worker 的搜索循环
func (c *Coordinator) work(start time.Time, progress ProgressFunc) error {
	s := &c.state

	for {
		if s.shouldStop() {
			return nil
		}

		kp, err := c.provider.Generate()
		if err != nil {
			s.stop.Store(true)
			return fmt.Errorf("generate keypair: %w", err)
		}
		addr := c.provider.DeriveAddress(kp.PublicKey())

		n := s.attempts.Add(1)
		c.report(n, start, progress)

		if !c.matcher.Match(addr) {
			kp.Destroy()
			continue
		}
		c.recorder.MatchFound()

		if c.cfg.VerifyKeypairs {
			if err := c.guard.VerifyKeypair(kp); err != nil {
				c.log.Warn("matching candidate failed verification", "address", addr, "err", err)
				c.recorder.VerificationFailed()
				kp.Destroy()
				continue
			}
		}

		if !s.tryCommit(&Result{RunID: c.runID, Keypair: kp, Address: addr}) {
			// 结果槽已被其他 worker 占用
			c.log.Debug("discarding late match", "address", addr)
			kp.Destroy()
		}
		return nil
	}
}

// report 越过进度间隔边界时调用回调
//
// 只有成功推进 lastReport 的 worker 调用回调，竞争失败的一方跳过本次。
func (c *Coordinator) report(n uint64, start time.Time, progress ProgressFunc) {
	s := &c.state
	last := s.lastReport.Load()
	if n < last+c.cfg.ProgressInterval {
		return
	}
	if !s.lastReport.CompareAndSwap(last, n) {
		return
	}

	c.recorder.AttemptsObserved(n - last)
	if progress != nil {
		progress(n, c.clock.Since(start))
	}
}

// IsCancelled 判断错误是否表示搜索被取消
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
