//go:build unix

package integrity

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// restrictFile 将已打开的文件权限设为 0600 并确认生效
func restrictFile(f *os.File) error {
	fd := int(f.Fd())
	if err := unix.Fchmod(fd, 0o600); err != nil {
		return fmt.Errorf("设置文件权限失败: %w", err)
	}

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return fmt.Errorf("读取文件权限失败: %w", err)
	}
	if st.Mode&0o077 != 0 {
		return fmt.Errorf("%w: mode %#o", ErrInsecurePermissions, st.Mode&0o777)
	}
	return nil
}

// FilePermissionsSecure 检查文件是否仅属主可访问
func FilePermissionsSecure(path string) (bool, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false, fmt.Errorf("读取文件权限失败: %w", err)
	}
	return st.Mode&0o077 == 0, nil
}

// syncDir fsync 目录，确保 rename 持久化
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}

// RunningElevated 当前进程是否以 root 身份运行
func RunningElevated() bool {
	return unix.Geteuid() == 0
}
