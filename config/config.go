// Package config 提供统一的配置管理
//
// 本包采用与组件一一对应的配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义，提供默认值、校验和 With 设置器
//   - 支持从 JSON 加载和保存配置
//   - 支持 VANITY_ 前缀的环境变量覆盖
//
// 优先级（高到低）：命令行参数 > 环境变量 > 配置文件 > 默认值。
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Search.Threads = 4
//	cfg.Output.Overwrite = true
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Config 是 go-vanity 的完整配置结构
//
// 配置按照功能模块组织：
//   - Search: 搜索线程与进度上报
//   - Security: 随机源检查与候选密钥校验
//   - Output: 密钥文件、报告与加密备份
//   - Metrics: Prometheus 指标服务
type Config struct {
	// Search 搜索配置
	Search SearchConfig `json:"search"`

	// Security 安全配置
	Security SecurityConfig `json:"security"`

	// Output 输出配置
	Output OutputConfig `json:"output"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`
}

// NewConfig 创建默认配置
//
// 返回的配置使用所有组件的默认值，适用于大多数场景。
func NewConfig() *Config {
	return &Config{
		Search:   DefaultSearchConfig(),
		Security: DefaultSecurityConfig(),
		Output:   DefaultOutputConfig(),
		Metrics:  DefaultMetricsConfig(),
	}
}

// Validate 验证配置的有效性
//
// 依次检查所有子配置，返回第一个错误。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if err := c.Security.Validate(); err != nil {
		return fmt.Errorf("security: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}

// Clone 返回配置的副本
//
// 所有子配置均为值类型，浅拷贝即可。
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cloned := *c
	return &cloned
}

// ============================================================================
//                              JSON 读写
// ============================================================================

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值。示例 JSON:
//
//	{
//	  "search": {"threads": 8, "progress_interval": 250000},
//	  "output": {"path": "wallet.json", "report": true},
//	  "metrics": {"listen_addr": "127.0.0.1:9108"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ToJSON 将配置序列化为带缩进的 JSON
func (c *Config) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// LoadFile 从 JSON 文件加载配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: 用户指定的配置文件路径是预期行为
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return FromJSON(data)
}
