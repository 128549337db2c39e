package mocks

import (
	"crypto/ed25519"
	"sync/atomic"

	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

// MockProvider 模拟 crypto.Provider 接口实现
//
// 未设置的方法委托给真实的 Ed25519Provider。可被并发调用。
type MockProvider struct {
	// 底层实现
	Real crypto.Provider

	// 可覆盖的方法
	GenerateFunc      func() (*crypto.Keypair, error)
	DeriveAddressFunc func(pub ed25519.PublicKey) string
	SignFunc          func(seed, msg []byte) ([]byte, error)
	VerifyFunc        func(pub ed25519.PublicKey, msg, sig []byte) bool

	// 调用记录
	GenerateCalls atomic.Int64
	SignCalls     atomic.Int64
	VerifyCalls   atomic.Int64
}

var _ crypto.Provider = (*MockProvider)(nil)

// NewMockProvider 创建带有默认实现的 MockProvider
func NewMockProvider() *MockProvider {
	return &MockProvider{Real: crypto.NewEd25519Provider()}
}

// Generate 生成密钥对
func (m *MockProvider) Generate() (*crypto.Keypair, error) {
	m.GenerateCalls.Add(1)
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return m.Real.Generate()
}

// DeriveAddress 派生地址
func (m *MockProvider) DeriveAddress(pub ed25519.PublicKey) string {
	if m.DeriveAddressFunc != nil {
		return m.DeriveAddressFunc(pub)
	}
	return m.Real.DeriveAddress(pub)
}

// Sign 签名
func (m *MockProvider) Sign(seed, msg []byte) ([]byte, error) {
	m.SignCalls.Add(1)
	if m.SignFunc != nil {
		return m.SignFunc(seed, msg)
	}
	return m.Real.Sign(seed, msg)
}

// Verify 验证签名
func (m *MockProvider) Verify(pub ed25519.PublicKey, msg, sig []byte) bool {
	m.VerifyCalls.Add(1)
	if m.VerifyFunc != nil {
		return m.VerifyFunc(pub, msg, sig)
	}
	return m.Real.Verify(pub, msg, sig)
}

// FixedSeedGenerator 返回一个总是生成同一密钥对的 GenerateFunc
//
// 用于模拟失效的随机源。
func FixedSeedGenerator(seed []byte) func() (*crypto.Keypair, error) {
	return func() (*crypto.Keypair, error) {
		return crypto.NewKeypairFromSeed(seed)
	}
}
