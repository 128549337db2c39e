package keyfile

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/dep2p/go-vanity/internal/core/integrity"
	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

// ============================================================================
//                              备份文件格式
// ============================================================================

// 备份文件格式：
//
//   ┌────────────────────────────────────────────────────────────┐
//   │  Magic:      "VANITY-KEY" (10 bytes)                        │
//   │  Version:    uint8                                          │
//   │  Salt:       16 bytes                                       │
//   │  Nonce:      12 bytes                                       │
//   │  Ciphertext: 64 字节种子 || 公钥 + 16 字节 GCM 标签          │
//   └────────────────────────────────────────────────────────────┘
//
// Magic 与 Version 作为 GCM 附加数据参与认证。

const (
	keystoreMagic   = "VANITY-KEY"
	keystoreVersion = 1
	keystoreExt     = ".key"

	saltSize   = 16
	nonceSize  = 12
	headerSize = len(keystoreMagic) + 1
	fileSize   = headerSize + saltSize + nonceSize + crypto.KeypairSize + 16
)

// kdfParams Argon2id 参数
type kdfParams struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
}

// defaultKDF 时间 1、内存 64 MB、并行 4、输出 32 字节
var defaultKDF = kdfParams{
	time:    1,
	memory:  64 * 1024,
	threads: 4,
	keyLen:  32,
}

// ============================================================================
//                              Keystore
// ============================================================================

// Keystore 加密备份目录
//
// 每个密钥对保存为 <dir>/<address>.key，口令在 Close 时清零。
type Keystore struct {
	dir        string
	passphrase *crypto.SecureBytes
	random     io.Reader
	kdf        kdfParams
}

// NewKeystore 创建加密备份目录（权限 0700）
//
// passphrase 被复制到内部秘密缓冲区，调用方仍负责清理自己的副本。
func NewKeystore(dir string, passphrase []byte) (*Keystore, error) {
	if len(passphrase) == 0 {
		return nil, ErrEmptyPassphrase
	}
	if _, err := integrity.CheckPath(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("创建备份目录失败: %w", err)
	}

	secret := crypto.NewSecureBytes(len(passphrase))
	copy(secret.Bytes(), passphrase)

	return &Keystore{
		dir:        dir,
		passphrase: secret,
		random:     rand.Reader,
		kdf:        defaultKDF,
	}, nil
}

// Path 返回地址对应的备份文件路径
func (ks *Keystore) Path(address string) string {
	return filepath.Join(ks.dir, address+keystoreExt)
}

// Has 检查是否存在指定地址的备份
func (ks *Keystore) Has(address string) (bool, error) {
	_, err := os.Stat(ks.Path(address))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// Put 加密保存密钥对，返回备份文件路径
//
// 已存在同地址的备份时返回 ErrKeyExists。
func (ks *Keystore) Put(kp *crypto.Keypair) (string, error) {
	if ks.passphrase.Destroyed() {
		return "", crypto.ErrKeyDestroyed
	}
	if kp.Destroyed() {
		return "", crypto.ErrKeyDestroyed
	}

	data, err := ks.seal(kp.Bytes())
	if err != nil {
		return "", err
	}

	path := ks.Path(crypto.Address(kp.PublicKey()))
	if err := integrity.WriteSecureFile(path, data, integrity.WriteOptions{}); err != nil {
		if errors.Is(err, integrity.ErrFileExists) {
			return "", fmt.Errorf("%w: %s", ErrKeyExists, path)
		}
		return "", err
	}

	log.Info("encrypted backup written", "path", path)
	return path, nil
}

// Get 读取并解密指定地址的备份
func (ks *Keystore) Get(address string) (*crypto.Keypair, error) {
	if ks.passphrase.Destroyed() {
		return nil, crypto.ErrKeyDestroyed
	}
	data, err := os.ReadFile(ks.Path(address))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("读取备份失败: %w", err)
	}

	var kp *crypto.Keypair
	err = crypto.WithSecureBytes(crypto.KeypairSize, func(buf []byte) error {
		if err := ks.open(buf, data); err != nil {
			return err
		}
		var err error
		kp, err = crypto.KeypairFromBytes(buf)
		return err
	})
	if err != nil {
		return nil, err
	}
	if crypto.Address(kp.PublicKey()) != address {
		kp.Destroy()
		return nil, fmt.Errorf("%w: address mismatch", ErrInvalidKeystoreFile)
	}
	return kp, nil
}

// Delete 删除指定地址的备份
func (ks *Keystore) Delete(address string) error {
	err := os.Remove(ks.Path(address))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrKeyNotFound
	}
	return err
}

// Close 清零口令，之后 Put/Get 返回 crypto.ErrKeyDestroyed
func (ks *Keystore) Close() error {
	ks.passphrase.Destroy()
	return nil
}

// ListKeystore 列出备份目录中的地址，按文件名排序
//
// 只读取文件名，不需要口令。目录不存在时返回空列表。
func ListKeystore(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var addrs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != keystoreExt {
			continue
		}
		addrs = append(addrs, strings.TrimSuffix(name, keystoreExt))
	}
	return addrs, nil
}

// ============================================================================
//                              加密辅助函数
// ============================================================================

// header 返回文件头，同时用作 GCM 附加数据
func header() []byte {
	h := make([]byte, 0, headerSize)
	h = append(h, keystoreMagic...)
	return append(h, keystoreVersion)
}

// seal 加密 plaintext，返回 header || salt || nonce || ciphertext
func (ks *Keystore) seal(plaintext []byte) ([]byte, error) {
	out := make([]byte, headerSize+saltSize+nonceSize, fileSize)
	copy(out, header())

	salt := out[headerSize : headerSize+saltSize]
	nonce := out[headerSize+saltSize:]
	if _, err := io.ReadFull(ks.random, salt); err != nil {
		return nil, fmt.Errorf("%w: %v", crypto.ErrRandomSource, err)
	}
	if _, err := io.ReadFull(ks.random, nonce); err != nil {
		return nil, fmt.Errorf("%w: %v", crypto.ErrRandomSource, err)
	}

	gcm, err := ks.aead(salt)
	if err != nil {
		return nil, err
	}
	return gcm.Seal(out, nonce, plaintext, out[:headerSize]), nil
}

// open 解密 data 写入 dst（长度必须为 KeypairSize）
func (ks *Keystore) open(dst, data []byte) error {
	if len(data) != fileSize || !bytes.Equal(data[:headerSize], header()) {
		return ErrInvalidKeystoreFile
	}
	salt := data[headerSize : headerSize+saltSize]
	nonce := data[headerSize+saltSize : headerSize+saltSize+nonceSize]
	ciphertext := data[headerSize+saltSize+nonceSize:]

	gcm, err := ks.aead(salt)
	if err != nil {
		return err
	}
	// 明文直接写入调用方的秘密缓冲区
	if _, err := gcm.Open(dst[:0], nonce, ciphertext, data[:headerSize]); err != nil {
		return ErrDecryptionFailed
	}
	return nil
}

// aead 由口令和盐派生 AES-256-GCM
func (ks *Keystore) aead(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(ks.passphrase.Bytes(), salt, ks.kdf.time, ks.kdf.memory, ks.kdf.threads, ks.kdf.keyLen)
	defer crypto.SecureZero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
