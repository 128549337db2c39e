package keyfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/dep2p/go-vanity/internal/core/integrity"
	"github.com/dep2p/go-vanity/internal/util/logger"
	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

var log = logger.Logger("keyfile")

// MaxEncodedSize 编码后的最大字节数
//
// "[" + 64 个至多 3 位的整数 + 63 个逗号 + "]"
const MaxEncodedSize = 1 + crypto.KeypairSize*3 + (crypto.KeypairSize - 1) + 1

// ============================================================================
//                              编解码
// ============================================================================

// Encode 将密钥对编码为 JSON 整数数组并追加到 dst
//
// dst 容量不小于 MaxEncodedSize 时不会重新分配，
// 调用方可以传入秘密缓冲区以保证明文只存在于一处。
func Encode(dst []byte, kp *crypto.Keypair) ([]byte, error) {
	if kp.Destroyed() {
		return dst, crypto.ErrKeyDestroyed
	}
	dst = append(dst, '[')
	for i, b := range kp.Bytes() {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendUint(dst, uint64(b), 10)
	}
	return append(dst, ']'), nil
}

// Decode 解析密钥文件内容
//
// 只接受恰好 64 个 0~255 整数的数组；不校验公钥与种子的一致性，
// 需要时调用 Keypair.Consistent。
func Decode(data []byte) (*crypto.Keypair, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidKeyfile)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected an array", ErrInvalidKeyfile)
	}

	var kp *crypto.Keypair
	err := crypto.WithSecureBytes(crypto.KeypairSize, func(buf []byte) error {
		n := 0
		var scanErr error
		root.ForEach(func(_, v gjson.Result) bool {
			if n == crypto.KeypairSize {
				scanErr = fmt.Errorf("%w: more than %d elements", ErrInvalidKeyfile, crypto.KeypairSize)
				return false
			}
			if v.Type != gjson.Number {
				scanErr = fmt.Errorf("%w: element %d is not a number", ErrInvalidKeyfile, n)
				return false
			}
			b, err := strconv.ParseUint(v.Raw, 10, 8)
			if err != nil {
				scanErr = fmt.Errorf("%w: element %d is not a byte", ErrInvalidKeyfile, n)
				return false
			}
			buf[n] = byte(b)
			n++
			return true
		})
		if scanErr != nil {
			return scanErr
		}
		if n != crypto.KeypairSize {
			return fmt.Errorf("%w: expected %d elements, got %d", ErrInvalidKeyfile, crypto.KeypairSize, n)
		}

		var err error
		kp, err = crypto.KeypairFromBytes(buf)
		return err
	})
	if err != nil {
		return nil, err
	}
	return kp, nil
}

// ============================================================================
//                              文件读写
// ============================================================================

// Write 将密钥对写入 path
//
// 写入前确认公钥由种子派生；明文编码只存在于作用域缓冲区，返回前清零。
func Write(path string, kp *crypto.Keypair, opts integrity.WriteOptions) error {
	if kp.Destroyed() {
		return crypto.ErrKeyDestroyed
	}
	if !kp.Consistent() {
		return ErrInconsistentKeypair
	}

	err := crypto.WithSecureBytes(MaxEncodedSize, func(buf []byte) error {
		data, err := Encode(buf[:0], kp)
		if err != nil {
			return err
		}
		return integrity.WriteSecureFile(path, data, opts)
	})
	if err != nil {
		return err
	}

	log.Info("keypair written", "path", path, "address", crypto.Address(kp.PublicKey()))
	return nil
}

// Read 读取并解析密钥文件
//
// 文件内容在解析后清零。
func Read(path string) (*crypto.Keypair, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: 用户指定的密钥文件路径
	if err != nil {
		return nil, fmt.Errorf("读取密钥文件失败: %w", err)
	}
	defer crypto.SecureZero(data)

	return Decode(data)
}

// ============================================================================
//                              校验报告
// ============================================================================

// VerificationReport 密钥文件校验报告
type VerificationReport struct {
	// PublicKey 文件中公钥的 Base58 地址
	PublicKey string `json:"public_key"`

	// SignatureValid 用种子签名、用文件中公钥验签是否成功
	SignatureValid bool `json:"signature_valid"`

	// KeypairFormatValid 公钥由种子派生且是合法的曲线点
	KeypairFormatValid bool `json:"keypair_format_valid"`

	// FilePermissionsSecure 文件仅属主可读写
	FilePermissionsSecure bool `json:"file_permissions_secure"`
}

// OK 报告所有检查是否通过
func (r *VerificationReport) OK() bool {
	return r.SignatureValid && r.KeypairFormatValid && r.FilePermissionsSecure
}

// VerifyFile 读取 path 并生成校验报告
//
// 文件无法解析时返回错误；各项检查失败只体现在报告里。
// 当前平台无法检查权限时 FilePermissionsSecure 为 false。
func VerifyFile(provider crypto.Provider, path string) (*VerificationReport, error) {
	kp, err := Read(path)
	if err != nil {
		return nil, err
	}
	defer kp.Destroy()

	pub := kp.PublicKey()
	report := &VerificationReport{
		PublicKey:          provider.DeriveAddress(pub),
		SignatureValid:     integrity.VerifyKeypair(provider, kp) == nil,
		KeypairFormatValid: kp.Consistent() && crypto.ValidPoint(pub),
	}

	secure, err := integrity.FilePermissionsSecure(path)
	switch {
	case errors.Is(err, integrity.ErrPermissionsUnsupported):
		log.Warn("file permission check unsupported on this platform", "path", path)
	case err != nil:
		log.Warn("file permission check failed", "path", path, "err", err)
	}
	report.FilePermissionsSecure = err == nil && secure

	return report, nil
}
