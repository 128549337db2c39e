package crypto

import (
	"crypto/ed25519"
	"crypto/subtle"
	"fmt"
	"log/slog"
)

// Ed25519 密钥常量
const (
	// SeedSize 私钥种子大小（32 字节）
	SeedSize = ed25519.SeedSize
	// PublicKeySize 公钥大小（32 字节）
	PublicKeySize = ed25519.PublicKeySize
	// SignatureSize 签名大小（64 字节）
	SignatureSize = ed25519.SignatureSize
	// KeypairSize 种子与公钥拼接后的大小（64 字节）
	KeypairSize = SeedSize + PublicKeySize
)

// ============================================================================
//                              Keypair
// ============================================================================

// Keypair Ed25519 密钥对
//
// 内部为一段 64 字节的秘密缓冲区：前 32 字节为私钥种子，后 32 字节为公钥，
// 与 solana-keygen 密钥文件的字节顺序一致。
//
// Keypair 由创建它的一方独占，丢弃时必须调用 Destroy。
type Keypair struct {
	key *SecureBytes
}

// NewKeypairFromSeed 从 32 字节种子派生密钥对
//
// 种子被复制到新的秘密缓冲区，调用方仍负责清理自己的副本。
func NewKeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSeed, SeedSize, len(seed))
	}

	key := NewSecureBytes(KeypairSize)
	buf := key.Bytes()
	copy(buf[:SeedSize], seed)
	if err := derivePublic(buf[SeedSize:], buf[:SeedSize]); err != nil {
		key.Destroy()
		return nil, err
	}
	return &Keypair{key: key}, nil
}

// KeypairFromBytes 从 64 字节（种子 || 公钥）构造密钥对
//
// 不检查公钥是否由种子派生，调用方可用 Consistent 判断。
func KeypairFromBytes(data []byte) (*Keypair, error) {
	if len(data) != KeypairSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeySize, KeypairSize, len(data))
	}
	key := NewSecureBytes(KeypairSize)
	copy(key.Bytes(), data)
	return &Keypair{key: key}, nil
}

// Seed 返回私钥种子（与 Keypair 共享内存）
func (k *Keypair) Seed() []byte {
	if k.Destroyed() {
		return nil
	}
	return k.key.Bytes()[:SeedSize]
}

// PublicKey 返回公钥（与 Keypair 共享内存，只读）
func (k *Keypair) PublicKey() ed25519.PublicKey {
	if k.Destroyed() {
		return nil
	}
	return ed25519.PublicKey(k.key.Bytes()[SeedSize:])
}

// Bytes 返回 64 字节的种子 || 公钥（与 Keypair 共享内存）
func (k *Keypair) Bytes() []byte {
	if k.Destroyed() {
		return nil
	}
	return k.key.Bytes()
}

// Consistent 检查公钥是否由种子派生
//
// 使用常量时间比较。
func (k *Keypair) Consistent() bool {
	if k.Destroyed() {
		return false
	}
	var derived [PublicKeySize]byte
	if err := derivePublic(derived[:], k.Seed()); err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(derived[:], k.PublicKey()) == 1
}

// Destroy 清零秘密材料，可重复调用
func (k *Keypair) Destroy() {
	if k == nil {
		return
	}
	k.key.Destroy()
}

// Destroyed 报告密钥对是否已销毁
func (k *Keypair) Destroyed() bool {
	return k == nil || k.key.Destroyed()
}

// String 实现 fmt.Stringer，只输出公开地址
func (k *Keypair) String() string {
	if k.Destroyed() {
		return "Keypair{destroyed}"
	}
	return "Keypair{address: " + Address(k.PublicKey()) + ", secret: " + redacted + "}"
}

// GoString 实现 fmt.GoStringer
func (k *Keypair) GoString() string {
	return "crypto." + k.String()
}

// Format 实现 fmt.Formatter
func (k *Keypair) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		_, _ = f.Write([]byte(k.GoString()))
		return
	}
	_, _ = f.Write([]byte(k.String()))
}

// LogValue 实现 slog.LogValuer
func (k *Keypair) LogValue() slog.Value {
	if k.Destroyed() {
		return slog.StringValue("destroyed")
	}
	return slog.GroupValue(
		slog.String("address", Address(k.PublicKey())),
		slog.String("secret", redacted),
	)
}

// MarshalJSON 实现 json.Marshaler，只序列化地址
func (k *Keypair) MarshalJSON() ([]byte, error) {
	if k.Destroyed() {
		return []byte(`{"destroyed":true}`), nil
	}
	return []byte(`{"address":"` + Address(k.PublicKey()) + `","secret":"` + redacted + `"}`), nil
}

// derivePublic 由种子计算公钥写入 dst，展开后的私钥在返回前清零
func derivePublic(dst, seed []byte) error {
	if len(seed) != SeedSize {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSeed, SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	copy(dst, priv[SeedSize:])
	SecureZero(priv)
	return nil
}
