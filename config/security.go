package config

import (
	"errors"
)

// SecurityConfig 安全配置
//
// 控制搜索前的随机源检查：
//   - 采样次数
//   - 每个样本地址至少包含的不同符号数
//   - 以特权用户运行时是否告警
type SecurityConfig struct {
	// EntropySamples 随机源检查时生成的样本密钥数
	EntropySamples int `json:"entropy_samples"`

	// MinDistinctSymbols 每个样本地址至少包含的不同符号数
	MinDistinctSymbols int `json:"min_distinct_symbols"`

	// WarnIfElevated 以 root 身份运行时输出告警
	WarnIfElevated bool `json:"warn_if_elevated"`
}

// DefaultSecurityConfig 返回默认安全配置
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EntropySamples:     10,   // 生成 10 个样本密钥
		MinDistinctSymbols: 10,   // 每个样本地址至少 10 种符号
		WarnIfElevated:     true, // 默认启用：root 生成的密钥文件属主可能不符合预期
	}
}

// Validate 验证安全配置
func (c SecurityConfig) Validate() error {
	if c.EntropySamples < 1 {
		return errors.New("entropy samples must be at least 1")
	}
	if c.MinDistinctSymbols < 1 {
		return errors.New("min distinct symbols must be at least 1")
	}
	if c.MinDistinctSymbols > 32 {
		return errors.New("min distinct symbols must not exceed 32")
	}
	return nil
}

// WithEntropySamples 设置随机源检查样本数
func (c SecurityConfig) WithEntropySamples(n int) SecurityConfig {
	c.EntropySamples = n
	return c
}

// WithMinDistinctSymbols 设置最少不同符号数
func (c SecurityConfig) WithMinDistinctSymbols(n int) SecurityConfig {
	c.MinDistinctSymbols = n
	return c
}

// WithWarnIfElevated 设置特权运行告警
func (c SecurityConfig) WithWarnIfElevated(warn bool) SecurityConfig {
	c.WarnIfElevated = warn
	return c
}
