package keyfile

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/dep2p/go-vanity/pkg/lib/crypto"
)

// EnvPassphrase 非交互场景下提供备份口令的环境变量
const EnvPassphrase = "VANITY_KEYSTORE_PASSWORD"

// readPassword 从终端读取不回显的一行（测试可替换）
var readPassword = term.ReadPassword

// isTerminal 报告 fd 是否为终端（测试可替换）
var isTerminal = term.IsTerminal

// ReadPassphrase 获取备份口令
//
// 优先读取 VANITY_KEYSTORE_PASSWORD；否则要求 fd 为终端，
// 在 out 上提示并读取两次，两次不一致返回 ErrPassphraseMismatch。
// 返回的切片由调用方在使用后清零。
func ReadPassphrase(fd int, out io.Writer, getenv func(string) string) ([]byte, error) {
	if v := getenv(EnvPassphrase); v != "" {
		return []byte(v), nil
	}
	if !isTerminal(fd) {
		return nil, fmt.Errorf("%w: stdin is not a terminal and %s is unset", ErrEmptyPassphrase, EnvPassphrase)
	}

	fmt.Fprint(out, "Keystore passphrase: ")
	first, err := readPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return nil, fmt.Errorf("读取口令失败: %w", err)
	}
	if len(first) == 0 {
		return nil, ErrEmptyPassphrase
	}

	fmt.Fprint(out, "Confirm passphrase: ")
	second, err := readPassword(fd)
	fmt.Fprintln(out)
	defer crypto.SecureZero(second)
	if err != nil {
		crypto.SecureZero(first)
		return nil, fmt.Errorf("读取口令失败: %w", err)
	}
	if !bytes.Equal(first, second) {
		crypto.SecureZero(first)
		return nil, ErrPassphraseMismatch
	}
	return first, nil
}
