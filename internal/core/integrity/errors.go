package integrity

import (
	"errors"
	"fmt"
)

// ============================================================================
//                              错误定义
// ============================================================================

// 预检与验证错误
var (
	// ErrRngQuality 随机源质量检查失败
	ErrRngQuality = errors.New("random number generator quality check failed")

	// ErrVerification 密钥对签名验证失败
	ErrVerification = errors.New("keypair verification failed")
)

// 落盘错误
var (
	// ErrUnsafePath 目标路径位于系统目录
	ErrUnsafePath = errors.New("refusing to write into a system directory")

	// ErrFileExists 目标文件已存在
	ErrFileExists = errors.New("file already exists")

	// ErrInsecurePermissions 文件权限不是仅属主可读写
	ErrInsecurePermissions = errors.New("file is accessible by group or others")

	// ErrPermissionsUnsupported 当前平台无法检查或强制文件权限
	ErrPermissionsUnsupported = errors.New("file permissions not supported on this platform")

	// ErrIntegrity 写入后大小校验失败
	ErrIntegrity = errors.New("file integrity check failed")
)

// IntegrityError 写入后大小不一致
type IntegrityError struct {
	Expected int64
	Actual   int64
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%v: expected %d bytes, found %d", ErrIntegrity, e.Expected, e.Actual)
}

func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}
