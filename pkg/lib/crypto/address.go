package crypto

import (
	"crypto/ed25519"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// Alphabet Base58 字母表（比特币风格，不含 0 O I l）
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Address 返回公钥的 Base58 地址
func Address(pub ed25519.PublicKey) string {
	return base58.Encode(pub)
}

// DecodeAddress 将 Base58 地址解码为 32 字节公钥
//
// 只检查编码与长度，不检查曲线点是否有效，需要时配合 ValidPoint。
func DecodeAddress(addr string) (ed25519.PublicKey, error) {
	raw, err := base58.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) != PublicKeySize {
		return nil, fmt.Errorf("%w: decoded %d bytes, want %d", ErrInvalidAddress, len(raw), PublicKeySize)
	}
	return ed25519.PublicKey(raw), nil
}

// ValidPoint 检查公钥是否为 Edwards25519 曲线上的有效压缩点
func ValidPoint(pub []byte) bool {
	if len(pub) != PublicKeySize {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(pub)
	return err == nil
}
