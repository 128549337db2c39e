package search

import "errors"

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrInvalidConfig 搜索配置无效
	ErrInvalidConfig = errors.New("invalid search configuration")

	// ErrAlreadyRun 同一个 Coordinator 被重复 Run
	ErrAlreadyRun = errors.New("search already run")

	// ErrCancelled 搜索在找到结果前被取消
	ErrCancelled = errors.New("search cancelled")
)
