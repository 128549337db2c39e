package matcher

import "strings"

// Matcher 编译后的模式
//
// 大小写不敏感时预先保存小写模式，匹配时只折叠地址一侧。
// 零值不可用，通过 Compile 创建。
type Matcher struct {
	pattern         Pattern
	prefix          string
	suffix          string
	caseInsensitive bool
}

// Compile 编译模式
func Compile(p Pattern) *Matcher {
	m := &Matcher{
		pattern:         p,
		caseInsensitive: p.CaseInsensitive(),
	}

	switch v := p.(type) {
	case Prefix:
		m.prefix = v.text
	case Suffix:
		m.suffix = v.text
	case Both:
		m.prefix = v.prefix
		m.suffix = v.suffix
	}

	if m.caseInsensitive {
		m.prefix = strings.ToLower(m.prefix)
		m.suffix = strings.ToLower(m.suffix)
	}
	return m
}

// Pattern 返回源模式
func (m *Matcher) Pattern() Pattern {
	return m.pattern
}

// Match 判断地址是否命中模式
//
// 纯函数，不分配内存。地址短于模式时返回 false。
// Both 模式只在前缀命中后才检查后缀。
func (m *Matcher) Match(address string) bool {
	if m.prefix != "" {
		if len(address) < len(m.prefix) {
			return false
		}
		if !m.equal(address[:len(m.prefix)], m.prefix) {
			return false
		}
	}
	if m.suffix != "" {
		if len(address) < len(m.suffix) {
			return false
		}
		if !m.equal(address[len(address)-len(m.suffix):], m.suffix) {
			return false
		}
	}
	return true
}

// equal 比较地址片段与（已预处理的）模式
func (m *Matcher) equal(segment, pattern string) bool {
	if !m.caseInsensitive {
		return segment == pattern
	}
	for i := 0; i < len(pattern); i++ {
		if foldASCII(segment[i]) != pattern[i] {
			return false
		}
	}
	return true
}

// foldASCII 将 ASCII 大写字母转为小写
func foldASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
