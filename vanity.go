package vanity

import (
	"context"
	"errors"
	"fmt"

	"github.com/dep2p/go-vanity/internal/app"
	"github.com/dep2p/go-vanity/internal/core/matcher"
	"github.com/dep2p/go-vanity/internal/core/search"
)

// ════════════════════════════════════════════════════════════════════════════
//                              版本信息
// ════════════════════════════════════════════════════════════════════════════

// Version 当前版本
const Version = "v0.1.0"

// BuildInfo 构建信息（通过 ldflags 注入）
var (
	// GitCommit Git 提交哈希
	GitCommit string

	// BuildDate 构建日期
	BuildDate string
)

// VersionInfo 返回完整版本信息字符串
func VersionInfo() string {
	info := "go-vanity " + Version
	if GitCommit != "" {
		info += " (" + GitCommit[:min(8, len(GitCommit))] + ")"
	}
	if BuildDate != "" {
		info += " built " + BuildDate
	}
	return info
}

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

// Result 搜索结果，持有命中的密钥对
//
// 调用方持久化后必须调用 Destroy。
type Result = search.Result

// Difficulty 模式难度估计
type Difficulty = search.Difficulty

// ════════════════════════════════════════════════════════════════════════════
//                              生成
// ════════════════════════════════════════════════════════════════════════════

// Generate 生成地址以 prefix 开头且以 suffix 结尾的密钥对
//
// prefix、suffix 可以有一个为空，不能都为空。
// ctx 取消时返回 ErrCancelled（已提交的命中优先返回）。
func Generate(ctx context.Context, prefix, suffix string, opts ...Option) (*Result, error) {
	results, err := GenerateMany(ctx, prefix, suffix, 1, opts...)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// GenerateWithPrefix 生成指定前缀的密钥对
func GenerateWithPrefix(ctx context.Context, prefix string, opts ...Option) (*Result, error) {
	if prefix == "" {
		return nil, fmt.Errorf("prefix: %w", ErrEmptyPattern)
	}
	return Generate(ctx, prefix, "", opts...)
}

// GenerateWithSuffix 生成指定后缀的密钥对
func GenerateWithSuffix(ctx context.Context, suffix string, opts ...Option) (*Result, error) {
	if suffix == "" {
		return nil, fmt.Errorf("suffix: %w", ErrEmptyPattern)
	}
	return Generate(ctx, "", suffix, opts...)
}

// GenerateMany 依次执行 count 次搜索
//
// 每次搜索使用新的协调器。取消时返回已找到的结果和 ErrCancelled；
// 其他错误时已找到的结果会被销毁。
func GenerateMany(ctx context.Context, prefix, suffix string, count int, opts ...Option) ([]*Result, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: count must be at least 1, got %d", ErrInvalidConfig, count)
	}

	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	pattern, err := matcher.New(prefix, suffix, o.ignoreCase)
	if err != nil {
		return nil, err
	}

	// 取消只在搜索阶段生效，结果统一为 ErrCancelled
	rt, err := app.NewBootstrap(o.config, o.bootstrapOptions()...).Start(context.WithoutCancel(ctx))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rt.Stop(context.Background())
	}()

	results := make([]*Result, 0, count)
	for i := 0; i < count; i++ {
		coord, err := rt.NewCoordinator(pattern)
		if err != nil {
			destroyAll(results)
			return nil, err
		}

		res, err := coord.Run(ctx, o.progress)
		if errors.Is(err, ErrCancelled) {
			return results, err
		}
		if err != nil {
			destroyAll(results)
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func destroyAll(results []*Result) {
	for _, r := range results {
		r.Destroy()
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              校验与估算
// ════════════════════════════════════════════════════════════════════════════

// ValidatePattern 检查 pattern 能否用作前缀或后缀
//
// 错误可用 errors.Is 匹配 ErrEmptyPattern、ErrInvalidCharacter、ErrPatternTooLong，
// 或用 errors.As 取出 *matcher.InvalidCharacterError 获得位置信息。
func ValidatePattern(pattern string) error {
	return matcher.Validate(pattern, matcher.RolePrefix)
}

// EstimateDifficulty 估算模式的期望尝试次数
func EstimateDifficulty(prefix, suffix string, ignoreCase bool) (Difficulty, error) {
	pattern, err := matcher.New(prefix, suffix, ignoreCase)
	if err != nil {
		return Difficulty{}, err
	}
	return search.EstimateDifficulty(pattern), nil
}
