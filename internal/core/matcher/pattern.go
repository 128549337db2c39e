package matcher

// Kind 模式种类
type Kind int

const (
	KindPrefix Kind = iota
	KindSuffix
	KindBoth
)

// String 返回种类名称
func (k Kind) String() string {
	switch k {
	case KindPrefix:
		return "prefix"
	case KindSuffix:
		return "suffix"
	case KindBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Pattern 地址匹配模式
//
// 封闭接口，实现只有 Prefix、Suffix、Both。
type Pattern interface {
	// Kind 返回模式种类，用于穷举 switch
	Kind() Kind

	// Description 返回人类可读的描述
	Description() string

	// Length 返回参与匹配的字符总数
	Length() int

	// CaseInsensitive 是否忽略大小写
	CaseInsensitive() bool

	sealed()
}

// ============================================================================
//                              Prefix
// ============================================================================

// Prefix 前缀模式
type Prefix struct {
	text            string
	caseInsensitive bool
}

// NewPrefix 创建前缀模式
func NewPrefix(text string, caseInsensitive bool) (Prefix, error) {
	if err := Validate(text, RolePrefix); err != nil {
		return Prefix{}, err
	}
	return Prefix{text: text, caseInsensitive: caseInsensitive}, nil
}

// Text 返回前缀文本
func (p Prefix) Text() string { return p.text }

func (p Prefix) Kind() Kind            { return KindPrefix }
func (p Prefix) Length() int           { return len(p.text) }
func (p Prefix) CaseInsensitive() bool { return p.caseInsensitive }
func (Prefix) sealed()                 {}

func (p Prefix) Description() string {
	return "prefix '" + p.text + "'" + caseSuffix(p.caseInsensitive)
}

// ============================================================================
//                              Suffix
// ============================================================================

// Suffix 后缀模式
type Suffix struct {
	text            string
	caseInsensitive bool
}

// NewSuffix 创建后缀模式
func NewSuffix(text string, caseInsensitive bool) (Suffix, error) {
	if err := Validate(text, RoleSuffix); err != nil {
		return Suffix{}, err
	}
	return Suffix{text: text, caseInsensitive: caseInsensitive}, nil
}

// Text 返回后缀文本
func (s Suffix) Text() string { return s.text }

func (s Suffix) Kind() Kind            { return KindSuffix }
func (s Suffix) Length() int           { return len(s.text) }
func (s Suffix) CaseInsensitive() bool { return s.caseInsensitive }
func (Suffix) sealed()                 {}

func (s Suffix) Description() string {
	return "suffix '" + s.text + "'" + caseSuffix(s.caseInsensitive)
}

// ============================================================================
//                              Both
// ============================================================================

// Both 前缀加后缀模式，两者共用一个大小写设置
type Both struct {
	prefix          string
	suffix          string
	caseInsensitive bool
}

// NewBoth 创建前缀加后缀模式
//
// 先校验前缀，再校验后缀。
func NewBoth(prefix, suffix string, caseInsensitive bool) (Both, error) {
	if err := Validate(prefix, RolePrefix); err != nil {
		return Both{}, err
	}
	if err := Validate(suffix, RoleSuffix); err != nil {
		return Both{}, err
	}
	return Both{prefix: prefix, suffix: suffix, caseInsensitive: caseInsensitive}, nil
}

// Prefix 返回前缀文本
func (b Both) Prefix() string { return b.prefix }

// Suffix 返回后缀文本
func (b Both) Suffix() string { return b.suffix }

func (b Both) Kind() Kind            { return KindBoth }
func (b Both) Length() int           { return len(b.prefix) + len(b.suffix) }
func (b Both) CaseInsensitive() bool { return b.caseInsensitive }
func (Both) sealed()                 {}

func (b Both) Description() string {
	return "prefix '" + b.prefix + "' and suffix '" + b.suffix + "'" + caseSuffix(b.caseInsensitive)
}

// ============================================================================
//                              构造辅助
// ============================================================================

// New 根据前缀和后缀（可为空）创建模式
//
// 两者都为空时返回 ErrEmptyPattern。
func New(prefix, suffix string, caseInsensitive bool) (Pattern, error) {
	switch {
	case prefix != "" && suffix != "":
		return NewBoth(prefix, suffix, caseInsensitive)
	case prefix != "":
		return NewPrefix(prefix, caseInsensitive)
	case suffix != "":
		return NewSuffix(suffix, caseInsensitive)
	default:
		return nil, ErrEmptyPattern
	}
}

func caseSuffix(ci bool) string {
	if ci {
		return " (case-insensitive)"
	}
	return ""
}
