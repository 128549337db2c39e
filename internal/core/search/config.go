package search

import (
	"fmt"
	"runtime"
)

// DefaultProgressInterval 默认进度回调间隔（尝试次数）
const DefaultProgressInterval uint64 = 100_000

// Config 搜索配置
type Config struct {
	// Threads worker 数量，至少为 1
	Threads int

	// VerifyKeypairs 命中后是否做签名验证
	VerifyKeypairs bool

	// ProgressInterval 进度回调间隔（尝试次数），必须大于 0
	ProgressInterval uint64
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Threads:          runtime.NumCPU(),
		VerifyKeypairs:   true,
		ProgressInterval: DefaultProgressInterval,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.Threads < 1 {
		return fmt.Errorf("%w: threads must be at least 1, got %d", ErrInvalidConfig, c.Threads)
	}
	if c.ProgressInterval == 0 {
		return fmt.Errorf("%w: progress interval must be positive", ErrInvalidConfig)
	}
	return nil
}
