// Package matcher 实现地址模式匹配
//
// # 核心职责
//
//   - 校验用户输入的前缀/后缀模式（Base58 字母表、长度上限）
//   - 编译模式为不可变的 Matcher，在搜索热路径上判断地址是否命中
//
// # 模式类型
//
// Pattern 是封闭的三变体类型：Prefix、Suffix、Both。
// 只能通过 NewPrefix、NewSuffix、NewBoth 构造，构造成功即保证合法。
//
//	p, err := matcher.NewPrefix("Sol", false)
//	m := matcher.Compile(p)
//	if m.Match(addr) { ... }
//
// # 大小写
//
// 大小写不敏感模式只做 ASCII 折叠（Base58 字母表全部为 ASCII），
// 比较时逐字节折叠地址，不分配内存。
//
// # 并发
//
// Pattern 与 Matcher 创建后只读，可被任意多个 goroutine 共享。
package matcher
