package keyfile

import "errors"

// ============================================================================
//                              密钥文件错误
// ============================================================================

var (
	// ErrInvalidKeyfile 密钥文件不是 64 个 0~255 整数组成的 JSON 数组
	ErrInvalidKeyfile = errors.New("invalid keypair file")

	// ErrInconsistentKeypair 文件中的公钥不是由种子派生
	ErrInconsistentKeypair = errors.New("public key does not match seed")
)

// ============================================================================
//                              加密备份错误
// ============================================================================

var (
	// ErrKeyNotFound 备份不存在
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyExists 备份已存在
	ErrKeyExists = errors.New("key already exists")

	// ErrInvalidKeystoreFile 备份文件格式错误
	ErrInvalidKeystoreFile = errors.New("invalid keystore file")

	// ErrDecryptionFailed 解密失败（口令错误或文件损坏）
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrEmptyPassphrase 口令为空
	ErrEmptyPassphrase = errors.New("empty passphrase")

	// ErrPassphraseMismatch 两次输入的口令不一致
	ErrPassphraseMismatch = errors.New("passphrases do not match")
)
