// Package mocks 提供统一的测试 Mock 实现
//
// # 核心 Mock
//
//   - MockProvider: 模拟 crypto.Provider，默认委托给真实的 Ed25519Provider
//
// # 设计原则
//
// 1. 函数式注入: 每个 Mock 都支持通过 XxxFunc 字段注入自定义行为
// 2. 调用记录: 关键 Mock 记录调用次数，便于验证测试行为
//
// # 使用示例
//
//	p := mocks.NewMockProvider()
//	p.VerifyFunc = func(ed25519.PublicKey, []byte, []byte) bool { return false }
//	err := integrity.NewGuard(p).VerifyKeypair(kp)
package mocks
