package search

import "time"

// Recorder 搜索指标记录器
//
// 实现必须可被多个 worker 并发调用。
type Recorder interface {
	// SearchStarted 搜索开始
	SearchStarted(threads int)

	// AttemptsObserved 新增尝试次数
	AttemptsObserved(n uint64)

	// MatchFound 候选命中模式
	MatchFound()

	// VerificationFailed 命中候选未通过签名验证
	VerificationFailed()

	// SearchFinished 搜索结束
	SearchFinished(state State, elapsed time.Duration)
}

// nopRecorder 不记录任何指标
type nopRecorder struct{}

func (nopRecorder) SearchStarted(int)                   {}
func (nopRecorder) AttemptsObserved(uint64)             {}
func (nopRecorder) MatchFound()                         {}
func (nopRecorder) VerificationFailed()                 {}
func (nopRecorder) SearchFinished(State, time.Duration) {}
