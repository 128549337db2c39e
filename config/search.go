package config

import (
	"errors"
	"time"
)

// SearchConfig 搜索配置
//
// 控制靓号搜索的并行度和进度上报：
//   - 工作线程数
//   - 候选密钥的签名自检
//   - 进度回调间隔
type SearchConfig struct {
	// Threads 工作线程数
	// 0 表示使用全部逻辑 CPU
	Threads int `json:"threads"`

	// VerifyKeypairs 是否对命中的候选密钥做签名自检
	// 自检失败的候选会被丢弃，搜索继续
	VerifyKeypairs bool `json:"verify_keypairs"`

	// ProgressInterval 进度回调间隔（尝试次数）
	ProgressInterval uint64 `json:"progress_interval"`

	// BenchmarkDuration dry-run 模式下的基准测试时长
	BenchmarkDuration Duration `json:"benchmark_duration"`
}

// DefaultSearchConfig 返回默认搜索配置
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Threads:           0,                         // 默认 0：运行时取 runtime.NumCPU()
		VerifyKeypairs:    true,                      // 默认启用：命中后签名自检，拒绝损坏的密钥
		ProgressInterval:  100_000,                   // 每 10 万次尝试回调一次进度
		BenchmarkDuration: Duration(1 * time.Second), // 单线程测速 1 秒
	}
}

// Validate 验证搜索配置
func (c SearchConfig) Validate() error {
	if c.Threads < 0 {
		return errors.New("threads must not be negative")
	}
	if c.ProgressInterval == 0 {
		return errors.New("progress interval must be positive")
	}
	if c.BenchmarkDuration <= 0 {
		return errors.New("benchmark duration must be positive")
	}
	return nil
}

// WithThreads 设置工作线程数
func (c SearchConfig) WithThreads(n int) SearchConfig {
	c.Threads = n
	return c
}

// WithVerifyKeypairs 设置是否校验候选密钥
func (c SearchConfig) WithVerifyKeypairs(verify bool) SearchConfig {
	c.VerifyKeypairs = verify
	return c
}

// WithProgressInterval 设置进度回调间隔
func (c SearchConfig) WithProgressInterval(n uint64) SearchConfig {
	c.ProgressInterval = n
	return c
}

// WithBenchmarkDuration 设置基准测试时长
func (c SearchConfig) WithBenchmarkDuration(d time.Duration) SearchConfig {
	c.BenchmarkDuration = Duration(d)
	return c
}
