package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
)

// ============================================================================
//                              Provider 接口
// ============================================================================

// Provider 密码学原语提供者
//
// 实现必须可被多个 goroutine 并发调用。
type Provider interface {
	// Generate 生成新的随机密钥对，调用方负责 Destroy
	Generate() (*Keypair, error)

	// DeriveAddress 返回公钥的地址
	DeriveAddress(pub ed25519.PublicKey) string

	// Sign 使用种子签名消息
	Sign(seed, msg []byte) ([]byte, error)

	// Verify 验证签名
	Verify(pub ed25519.PublicKey, msg, sig []byte) bool
}

// ============================================================================
//                              Ed25519Provider
// ============================================================================

// Ed25519Provider 基于 crypto/ed25519 的 Provider 实现
type Ed25519Provider struct {
	random io.Reader
}

var _ Provider = (*Ed25519Provider)(nil)

// ProviderOption Ed25519Provider 配置选项
type ProviderOption func(*Ed25519Provider)

// WithRandom 替换随机源（默认 crypto/rand.Reader）
//
// 随机源必须可并发读取。
func WithRandom(r io.Reader) ProviderOption {
	return func(p *Ed25519Provider) {
		p.random = r
	}
}

// NewEd25519Provider 创建 Ed25519Provider
func NewEd25519Provider(opts ...ProviderOption) *Ed25519Provider {
	p := &Ed25519Provider{random: rand.Reader}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate 生成新的随机密钥对
//
// 种子直接读入秘密缓冲区，展开后的私钥在返回前清零。
func (p *Ed25519Provider) Generate() (*Keypair, error) {
	key := NewSecureBytes(KeypairSize)
	buf := key.Bytes()
	if _, err := io.ReadFull(p.random, buf[:SeedSize]); err != nil {
		key.Destroy()
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	if err := derivePublic(buf[SeedSize:], buf[:SeedSize]); err != nil {
		key.Destroy()
		return nil, err
	}
	return &Keypair{key: key}, nil
}

// DeriveAddress 返回公钥的 Base58 地址
func (p *Ed25519Provider) DeriveAddress(pub ed25519.PublicKey) string {
	return Address(pub)
}

// Sign 使用种子签名消息
func (p *Ed25519Provider) Sign(seed, msg []byte) ([]byte, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSeed, SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	defer SecureZero(priv)
	return ed25519.Sign(priv, msg), nil
}

// Verify 验证签名
func (p *Ed25519Provider) Verify(pub ed25519.PublicKey, msg, sig []byte) bool {
	if len(pub) != PublicKeySize || len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(pub, msg, sig)
}
