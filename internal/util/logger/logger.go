// Package logger 提供 go-vanity 的统一日志系统
//
// 基于标准库 log/slog，支持：
//   - 按子系统配置日志级别
//   - 环境变量配置（VANITY_LOG_LEVEL, VANITY_LOG_FORMAT）
//   - 结构化日志
//
// 使用示例:
//
//	package search
//
//	import "github.com/dep2p/go-vanity/internal/util/logger"
//
//	var log = logger.Logger("search")
//
//	func foo() {
//	    log.Info("search started", "threads", n, "pattern", desc)
//	    log.Debug("candidate rejected", "address", addr)
//	}
package logger

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
)

var (
	// loggers 缓存各子系统的 Logger
	loggers sync.Map // map[string]*slog.Logger

	// handlers 缓存各子系统的 Handler（用于动态调整级别）
	handlers sync.Map // map[string]*subsystemHandler

	// levelOverride 命令行强制指定的全局级别（nil 表示使用环境配置）
	levelOverride atomic.Pointer[slog.Level]

)

// Logger 获取指定子系统的 Logger
//
// 同一子系统多次调用返回相同实例。
func Logger(subsystem string) *slog.Logger {
	if l, ok := loggers.Load(subsystem); ok {
		return l.(*slog.Logger)
	}

	cfg := ConfigFromEnv()
	level := cfg.LevelForSubsystem(subsystem)
	if override := levelOverride.Load(); override != nil {
		level = *override
	}

	handler := newHandler(subsystem, level, cfg)
	l := slog.New(handler)

	actual, loaded := loggers.LoadOrStore(subsystem, l)
	if !loaded {
		handlers.Store(subsystem, handler)
	}
	return actual.(*slog.Logger)
}

// SetLevel 动态设置子系统的日志级别
func SetLevel(subsystem string, level slog.Level) {
	if h, ok := handlers.Load(subsystem); ok {
		h.(*subsystemHandler).SetLevel(level)
	}
}

// SetGlobalLevel 设置所有子系统的日志级别
//
// 之后创建的子系统 Logger 同样使用该级别。
func SetGlobalLevel(level slog.Level) {
	levelOverride.Store(&level)
	handlers.Range(func(_, value any) bool {
		value.(*subsystemHandler).SetLevel(level)
		return true
	})
}

// Discard 返回丢弃所有日志的 Logger（测试用）
func Discard() *slog.Logger {
	return slog.New(DiscardHandler())
}

// SetOutput 设置全局日志输出目标
//
// 已创建的 Logger 通过 dynamicWriter 自动重定向。
func SetOutput(w io.Writer) {
	globalOutputMu.Lock()
	globalOutput = w
	globalOutputMu.Unlock()
}
