package integrity

import (
	"fmt"

	"github.com/dep2p/go-vanity/internal/util/logger"
	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

var log = logger.Logger("integrity")

// VerificationMessage 候选密钥对签名验证使用的域分隔消息
const VerificationMessage = "go-vanity/integrity-check/v1"

// 熵源预检默认参数
const (
	DefaultEntropySamples     = 10
	DefaultMinDistinctSymbols = 10
)

// ============================================================================
//                              Guard
// ============================================================================

// Guard 完整性守卫
//
// 只读，可并发使用。
type Guard struct {
	provider    crypto.Provider
	samples     int
	minDistinct int
}

// Option Guard 配置选项
type Option func(*Guard)

// WithEntropySamples 设置熵源预检的抽样数量
func WithEntropySamples(n int) Option {
	return func(g *Guard) {
		if n > 0 {
			g.samples = n
		}
	}
}

// WithMinDistinctSymbols 设置单个地址至少包含的不同字符数
func WithMinDistinctSymbols(n int) Option {
	return func(g *Guard) {
		if n > 0 {
			g.minDistinct = n
		}
	}
}

// NewGuard 创建完整性守卫
func NewGuard(provider crypto.Provider, opts ...Option) *Guard {
	g := &Guard{
		provider:    provider,
		samples:     DefaultEntropySamples,
		minDistinct: DefaultMinDistinctSymbols,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckEntropy 熵源预检
//
// 生成若干样本密钥对，出现重复地址或某个地址的不同字符数过少时
// 返回 ErrRngQuality。这是粗粒度的失效检测，不是密码学随机性测试。
// 样本在返回前全部销毁。
func (g *Guard) CheckEntropy() error {
	seen := make(map[string]struct{}, g.samples)

	for i := 0; i < g.samples; i++ {
		kp, err := g.provider.Generate()
		if err != nil {
			return fmt.Errorf("%w: sample %d: %v", ErrRngQuality, i, err)
		}
		addr := g.provider.DeriveAddress(kp.PublicKey())
		kp.Destroy()

		if _, dup := seen[addr]; dup {
			log.Error("entropy check found duplicate address", "sample", i)
			return fmt.Errorf("%w: duplicate address after %d samples", ErrRngQuality, i+1)
		}
		seen[addr] = struct{}{}

		if n := distinctSymbols(addr); n < g.minDistinct {
			log.Error("entropy check found low-diversity address", "sample", i, "distinct", n)
			return fmt.Errorf("%w: address has only %d distinct symbols (minimum %d)", ErrRngQuality, n, g.minDistinct)
		}
	}

	log.Debug("entropy check passed", "samples", g.samples)
	return nil
}

// VerifyKeypair 签名验证往返
//
// 用种子签名 VerificationMessage 并用公钥验证，失败返回 ErrVerification。
func (g *Guard) VerifyKeypair(kp *crypto.Keypair) error {
	if kp.Destroyed() {
		return fmt.Errorf("%w: %v", ErrVerification, crypto.ErrKeyDestroyed)
	}

	msg := []byte(VerificationMessage)
	sig, err := g.provider.Sign(kp.Seed(), msg)
	if err != nil {
		return fmt.Errorf("%w: sign: %v", ErrVerification, err)
	}
	if !g.provider.Verify(kp.PublicKey(), msg, sig) {
		return fmt.Errorf("%w: signature does not verify against public key", ErrVerification)
	}
	return nil
}

// CheckEntropy 使用默认参数做熵源预检
func CheckEntropy(provider crypto.Provider) error {
	return NewGuard(provider).CheckEntropy()
}

// VerifyKeypair 使用给定 provider 验证密钥对
func VerifyKeypair(provider crypto.Provider, kp *crypto.Keypair) error {
	return NewGuard(provider).VerifyKeypair(kp)
}

// distinctSymbols 统计字符串中不同字节的数量
func distinctSymbols(s string) int {
	var seen [256]bool
	n := 0
	for i := 0; i < len(s); i++ {
		if !seen[s[i]] {
			seen[s[i]] = true
			n++
		}
	}
	return n
}
