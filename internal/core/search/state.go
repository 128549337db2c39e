package search

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

// State 搜索状态
type State int32

const (
	// StateRunning 搜索进行中（构造后即进入）
	StateRunning State = iota
	// StateFound 找到结果
	StateFound
	// StateCancelled 被取消且没有结果
	StateCancelled
	// StateFailed 不可恢复错误
	StateFailed
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateFound:
		return "found"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result 搜索结果
//
// 持有胜出的密钥对，调用方落盘后必须调用 Destroy。
type Result struct {
	// RunID 搜索编号
	RunID string

	// Keypair 胜出的密钥对
	Keypair *crypto.Keypair

	// Address 密钥对的地址
	Address string

	// Attempts 所有 worker 的总尝试次数
	Attempts uint64

	// Elapsed 搜索耗时
	Elapsed time.Duration
}

// Rate 返回平均每秒尝试次数
func (r *Result) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Attempts) / r.Elapsed.Seconds()
}

// Destroy 销毁结果中的秘密材料
func (r *Result) Destroy() {
	if r == nil {
		return
	}
	r.Keypair.Destroy()
}

// ============================================================================
//                              共享状态
// ============================================================================

// searchState worker 之间共享的状态
//
// attempts 只要求最终可见；cancelled 与 stop 每次迭代都会读取。
// Go 的 sync/atomic 操作是顺序一致的，满足两者的可见性要求。
type searchState struct {
	attempts   atomic.Uint64
	cancelled  atomic.Bool
	stop       atomic.Bool
	lastReport atomic.Uint64

	mu     sync.Mutex
	result *Result
}

// shouldStop worker 在每次迭代开始时检查
func (s *searchState) shouldStop() bool {
	return s.cancelled.Load() || s.stop.Load()
}

// tryCommit 写入单次赋值的结果槽
//
// 只有第一个写入者成功，成功后通知所有 worker 停止。
func (s *searchState) tryCommit(r *Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result != nil {
		return false
	}
	s.result = r
	s.stop.Store(true)
	return true
}

// committed 返回已提交的结果
func (s *searchState) committed() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}
