package matcher

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

// 模式长度上限
//
// 每增加一个字符期望尝试次数乘以 58，超过 8 个字符不再有实际意义。
const (
	MaxPrefixLength = 8
	MaxSuffixLength = 8
)

// Role 模式角色
type Role string

const (
	RolePrefix Role = "prefix"
	RoleSuffix Role = "suffix"
)

// maxLength 返回角色对应的长度上限
func (r Role) maxLength() int {
	if r == RoleSuffix {
		return MaxSuffixLength
	}
	return MaxPrefixLength
}

// validChars Base58 字符查找表
var validChars = func() (t [utf8.RuneSelf]bool) {
	for i := 0; i < len(crypto.Alphabet); i++ {
		t[crypto.Alphabet[i]] = true
	}
	return t
}()

// IsValidChar 检查字符是否属于 Base58 字母表
func IsValidChar(r rune) bool {
	return r >= 0 && r < utf8.RuneSelf && validChars[r]
}

// Validate 校验模式文本
//
// 检查顺序：空 → 字符（从左到右，报告第一个非法字符）→ 长度。
func Validate(text string, role Role) error {
	if text == "" {
		return fmt.Errorf("%s: %w", role, ErrEmptyPattern)
	}

	pos := 0
	for _, r := range text {
		if !IsValidChar(r) {
			return &InvalidCharacterError{Char: r, Position: pos, Role: role}
		}
		pos++
	}

	// 字符全部合法即全部为 ASCII，字节长度等于字符数
	if limit := role.maxLength(); len(text) > limit {
		return &TooLongError{Length: len(text), Max: limit, Role: role}
	}
	return nil
}

// lookAlikes 常见易混淆字符的替代建议
var lookAlikes = map[rune][]rune{
	'0': {'o', 'Q', 'D'},
	'O': {'o', 'Q', 'D'},
	'I': {'i', '1', 'L', 'J'},
	'l': {'L', '1', 'i', 'j'},
}

// SuggestReplacements 为非法字符给出外形相近的合法字符
//
// 合法字符或没有建议时返回 nil。
func SuggestReplacements(r rune) []rune {
	if IsValidChar(r) {
		return nil
	}
	return lookAlikes[r]
}

// Hint 返回带替代建议的错误描述，用于命令行提示
func Hint(err error) string {
	var ice *InvalidCharacterError
	if !errors.As(err, &ice) {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString(err.Error())
	if s := SuggestReplacements(ice.Char); len(s) > 0 {
		b.WriteString(" (did you mean ")
		for i, r := range s {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%q", r)
		}
		b.WriteString("?)")
	}
	b.WriteString("; valid characters: ")
	b.WriteString(crypto.Alphabet)
	return b.String()
}
