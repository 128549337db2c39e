package matcher

import (
	"errors"
	"fmt"
)

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrEmptyPattern 模式为空
	ErrEmptyPattern = errors.New("pattern is empty")

	// ErrInvalidCharacter 模式包含 Base58 字母表以外的字符
	ErrInvalidCharacter = errors.New("invalid base58 character")

	// ErrPatternTooLong 模式超过长度上限
	ErrPatternTooLong = errors.New("pattern too long")
)

// InvalidCharacterError 非法字符错误
type InvalidCharacterError struct {
	// Char 第一个非法字符
	Char rune
	// Position 字符位置（从 0 开始，按字符计）
	Position int
	// Role 出错的模式角色
	Role Role
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("%s: %v %q at position %d", e.Role, ErrInvalidCharacter, e.Char, e.Position)
}

func (e *InvalidCharacterError) Unwrap() error {
	return ErrInvalidCharacter
}

// TooLongError 模式过长错误
type TooLongError struct {
	Length int
	Max    int
	Role   Role
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("%s: %v: %d characters exceeds maximum of %d", e.Role, ErrPatternTooLong, e.Length, e.Max)
}

func (e *TooLongError) Unwrap() error {
	return ErrPatternTooLong
}
