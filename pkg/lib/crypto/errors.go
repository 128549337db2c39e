package crypto

import "errors"

// ============================================================================
//                              错误定义
// ============================================================================

// 密钥相关错误
var (
	// ErrInvalidKeySize 密钥大小无效
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidSeed 私钥种子无效
	ErrInvalidSeed = errors.New("invalid private key seed")

	// ErrInvalidPublicKey 公钥无效
	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrKeyDestroyed 密钥已被销毁
	ErrKeyDestroyed = errors.New("key material destroyed")
)

// 随机源与地址相关错误
var (
	// ErrRandomSource 随机源读取失败
	ErrRandomSource = errors.New("random source failure")

	// ErrInvalidAddress 地址不是有效的 Base58 公钥编码
	ErrInvalidAddress = errors.New("invalid address")
)
