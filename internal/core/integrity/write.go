package integrity

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/multierr"
)

// WriteOptions 安全写入选项
type WriteOptions struct {
	// Overwrite 允许替换已存在的目标文件
	Overwrite bool
}

// deniedDirs 禁止写入的系统目录
var deniedDirs = []string{
	"/etc",
	"/usr",
	"/bin",
	"/sbin",
	"/boot",
	"/proc",
	"/sys",
	"/dev",
	"/private/etc",
	`C:\Windows`,
}

// writePayload 写入数据（测试可替换以模拟截断写入）
var writePayload = func(w *bufio.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

// ============================================================================
//                              路径检查
// ============================================================================

// CheckPath 检查目标路径是否允许写入
//
// 返回清理后的绝对路径。位于系统目录下时返回 ErrUnsafePath；
// 父目录已存在时同时检查符号链接解析后的真实路径。
func CheckPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrUnsafePath)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("解析路径失败: %w", err)
	}
	abs = filepath.Clean(abs)

	if denied(abs) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, abs)
	}
	if resolved, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil && denied(resolved) {
		return "", fmt.Errorf("%w: %s resolves to %s", ErrUnsafePath, abs, resolved)
	}
	return abs, nil
}

// denied 判断路径是否位于黑名单目录之下
func denied(path string) bool {
	for _, dir := range deniedDirs {
		if under(path, dir) {
			return true
		}
	}
	return false
}

func under(path, dir string) bool {
	// Windows 路径大小写不敏感，统一分隔符后比较
	if strings.Contains(dir, `\`) {
		p := strings.ReplaceAll(path, "/", `\`)
		return strings.EqualFold(p, dir) ||
			(len(p) > len(dir) && strings.EqualFold(p[:len(dir)], dir) && p[len(dir)] == '\\')
	}
	return path == dir || strings.HasPrefix(path, dir+"/")
}

// inTempDir 判断路径是否位于系统临时目录
func inTempDir(path string) bool {
	tmp := filepath.Clean(os.TempDir())
	return path == tmp || strings.HasPrefix(path, tmp+string(filepath.Separator))
}

// ============================================================================
//                              安全写入
// ============================================================================

// WriteSecureFile 安全写入秘密文件
//
// 同目录临时文件创建即为 0600，写入并 fsync 后校验大小，
// 最后原子 rename 到目标路径。任一步骤失败都不会在目标路径留下文件。
func WriteSecureFile(path string, data []byte, opts WriteOptions) (err error) {
	abs, err := CheckPath(path)
	if err != nil {
		return err
	}
	if inTempDir(abs) {
		log.Warn("writing secret material into the system temp directory", "path", abs)
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	if !opts.Overwrite {
		if _, statErr := os.Lstat(abs); statErr == nil {
			return fmt.Errorf("%w: %s", ErrFileExists, abs)
		}
	}

	// os.CreateTemp 以 O_EXCL 和 0600 创建文件
	tmp, err := os.CreateTemp(dir, ".vanity-*.tmp")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	closed := false
	defer func() {
		if !closed {
			err = multierr.Append(err, tmp.Close())
		}
		if !committed {
			if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				err = multierr.Append(err, fmt.Errorf("删除临时文件失败: %w", rmErr))
			}
		}
	}()

	if err := restrictFile(tmp); err != nil {
		if !errors.Is(err, ErrPermissionsUnsupported) {
			return err
		}
		log.Warn("owner-only permissions cannot be enforced on this platform",
			"goos", runtime.GOOS, "path", abs)
	}

	w := bufio.NewWriter(tmp)
	if err := writePayload(w, data); err != nil {
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("刷新缓冲失败: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("同步临时文件失败: %w", err)
	}

	// 按路径重新 stat，校验落盘后的大小
	info, err := os.Stat(tmpPath)
	if err != nil {
		return fmt.Errorf("读取文件信息失败: %w", err)
	}
	if info.Size() != int64(len(data)) {
		log.Error("secure write size mismatch", "path", abs, "expected", len(data), "actual", info.Size())
		return &IntegrityError{Expected: int64(len(data)), Actual: info.Size()}
	}

	closed = true
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}

	if err := commit(tmpPath, abs, opts.Overwrite); err != nil {
		return err
	}
	committed = true

	if err := syncDir(dir); err != nil {
		log.Warn("directory sync failed", "dir", dir, "err", err)
	}

	log.Debug("secret file written", "path", abs, "bytes", len(data))
	return nil
}

// commit 把临时文件移动到目标路径
//
// 不允许覆盖时优先使用硬链接，目标已存在则原子失败；
// 文件系统不支持硬链接时退回 rename。
func commit(tmpPath, dst string, overwrite bool) error {
	if overwrite {
		if err := os.Rename(tmpPath, dst); err != nil {
			return fmt.Errorf("原子 rename 失败: %w", err)
		}
		return nil
	}

	linkErr := os.Link(tmpPath, dst)
	switch {
	case linkErr == nil:
		if err := os.Remove(tmpPath); err != nil {
			log.Warn("temporary file left behind", "path", tmpPath, "err", err)
		}
		return nil
	case errors.Is(linkErr, fs.ErrExist):
		return fmt.Errorf("%w: %s", ErrFileExists, dst)
	}

	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%w: %s", ErrFileExists, dst)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("原子 rename 失败: %w", err)
	}
	return nil
}
