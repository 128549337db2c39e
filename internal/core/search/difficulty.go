package search

import (
	"math"
	"time"

	"github.com/dep2p/go-vanity/internal/core/matcher"
)

// 每个字符位置的有效取值数
//
// 大小写不敏感时按大小写等价类合并，34 是近似值。
const (
	CaseSensitiveBase   = 58
	CaseInsensitiveBase = 34
)

// Difficulty 模式难度估计
//
// 每次尝试视为独立的伯努利试验：k 次内成功的概率为 1-(1-p)^k ≈ 1-e^{-kp}。
type Difficulty struct {
	// PatternLength 参与匹配的字符总数
	PatternLength int

	// Base 每个字符位置的取值数
	Base float64

	// ExpectedAttempts 期望尝试次数 base^L
	ExpectedAttempts float64

	// ProbabilityPerAttempt 单次尝试命中概率 1/ExpectedAttempts
	ProbabilityPerAttempt float64

	// MedianAttempts 累计成功概率达到 50% 的尝试次数 ExpectedAttempts·ln2
	MedianAttempts float64
}

// EstimateDifficulty 估计模式难度
func EstimateDifficulty(p matcher.Pattern) Difficulty {
	base := float64(CaseSensitiveBase)
	if p.CaseInsensitive() {
		base = CaseInsensitiveBase
	}
	return difficultyFor(base, p.Length())
}

func difficultyFor(base float64, length int) Difficulty {
	expected := math.Pow(base, float64(length))
	return Difficulty{
		PatternLength:         length,
		Base:                  base,
		ExpectedAttempts:      expected,
		ProbabilityPerAttempt: 1 / expected,
		MedianAttempts:        expected * math.Ln2,
	}
}

// SuccessProbability 返回 k 次尝试内至少命中一次的概率
func (d Difficulty) SuccessProbability(k float64) float64 {
	if k <= 0 {
		return 0
	}
	return -math.Expm1(-k * d.ProbabilityPerAttempt)
}

// AttemptsFor 返回累计成功概率达到 prob 所需的尝试次数
func (d Difficulty) AttemptsFor(prob float64) float64 {
	switch {
	case prob <= 0:
		return 0
	case prob >= 1:
		return math.Inf(1)
	}
	return -math.Log1p(-prob) / d.ProbabilityPerAttempt
}

// ExpectedDuration 按给定速率（次/秒）估计期望耗时
//
// 超出 time.Duration 范围时返回最大值。
func (d Difficulty) ExpectedDuration(rate float64) time.Duration {
	return EstimateDuration(d.ExpectedAttempts, rate)
}

// MedianDuration 按给定速率估计 50% 成功概率的耗时
func (d Difficulty) MedianDuration(rate float64) time.Duration {
	return EstimateDuration(d.MedianAttempts, rate)
}

// EstimateDuration 按速率（次/秒）估计完成 attempts 次尝试的耗时
//
// rate 非正或结果超出 time.Duration 范围时返回最大值。
func EstimateDuration(attempts, rate float64) time.Duration {
	if rate <= 0 {
		return time.Duration(math.MaxInt64)
	}
	secs := attempts / rate
	if secs >= float64(math.MaxInt64)/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(secs * float64(time.Second))
}
