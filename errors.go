package vanity

import (
	"github.com/dep2p/go-vanity/internal/core/integrity"
	"github.com/dep2p/go-vanity/internal/core/matcher"
	"github.com/dep2p/go-vanity/internal/core/search"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 模式错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrEmptyPattern 前缀和后缀都为空
	ErrEmptyPattern = matcher.ErrEmptyPattern

	// ErrInvalidCharacter 模式含有 Base58 字母表以外的字符
	ErrInvalidCharacter = matcher.ErrInvalidCharacter

	// ErrPatternTooLong 模式超过 8 个字符
	ErrPatternTooLong = matcher.ErrPatternTooLong

	// ────────────────────────────────────────────────────────────────────────
	// 搜索错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrInvalidConfig 搜索配置无效
	ErrInvalidConfig = search.ErrInvalidConfig

	// ErrCancelled 搜索被取消
	ErrCancelled = search.ErrCancelled

	// ErrRngQuality 随机源预检失败
	ErrRngQuality = integrity.ErrRngQuality
)
