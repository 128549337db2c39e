package crypto

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"runtime"
)

// redacted 秘密材料在所有输出中的替代文本
const redacted = "[REDACTED]"

// ============================================================================
//                              SecureBytes
// ============================================================================

// SecureBytes 持有秘密字节的缓冲区
//
// 缓冲区只能通过 Bytes 访问，Destroy 后内容被清零且不可再用。
// 格式化输出、结构化日志和 JSON 序列化均不会泄露内容。
type SecureBytes struct {
	buf []byte
}

// NewSecureBytes 分配 n 字节的秘密缓冲区
func NewSecureBytes(n int) *SecureBytes {
	return &SecureBytes{buf: make([]byte, n)}
}

// Bytes 返回底层缓冲区
//
// 返回的切片与 SecureBytes 共享内存，调用方不得在 Destroy 之后继续持有。
func (s *SecureBytes) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.buf
}

// Len 返回缓冲区长度（销毁后为 0）
func (s *SecureBytes) Len() int {
	if s == nil {
		return 0
	}
	return len(s.buf)
}

// Destroy 清零并释放缓冲区，可重复调用
func (s *SecureBytes) Destroy() {
	if s == nil || s.buf == nil {
		return
	}
	SecureZero(s.buf)
	s.buf = nil
}

// Destroyed 报告缓冲区是否已销毁
func (s *SecureBytes) Destroyed() bool {
	return s == nil || s.buf == nil
}

// String 实现 fmt.Stringer
func (s *SecureBytes) String() string {
	return redacted
}

// GoString 实现 fmt.GoStringer
func (s *SecureBytes) GoString() string {
	return "crypto.SecureBytes{" + redacted + "}"
}

// Format 实现 fmt.Formatter，所有动词（含 %x、%v、%#v）输出相同的占位文本
func (s *SecureBytes) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		_, _ = f.Write([]byte(s.GoString()))
		return
	}
	_, _ = f.Write([]byte(redacted))
}

// LogValue 实现 slog.LogValuer
func (s *SecureBytes) LogValue() slog.Value {
	return slog.StringValue(redacted)
}

// MarshalJSON 实现 json.Marshaler
func (s *SecureBytes) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// ============================================================================
//                              作用域清零
// ============================================================================

// WithSecureBytes 分配 n 字节的临时秘密缓冲区并调用 fn
//
// fn 返回（包括 panic 传播）后缓冲区一定被清零。
// fn 不得把 buf 或其子切片保存到调用之外。
func WithSecureBytes(n int, fn func(buf []byte) error) error {
	s := NewSecureBytes(n)
	defer s.Destroy()
	return fn(s.buf)
}

// SecureZero 安全清零字节切片
//
// 用于清除内存中的敏感数据。
func SecureZero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	// 读取清零后的内容，防止编译器把写入当作死存储消除
	_ = sha256.Sum256(b)
	runtime.KeepAlive(b)
}
