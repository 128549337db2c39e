//go:build !unix

package integrity

import "os"

// restrictFile 当前平台不支持 POSIX 权限位
func restrictFile(*os.File) error {
	return ErrPermissionsUnsupported
}

// FilePermissionsSecure 当前平台无法判断文件权限
func FilePermissionsSecure(string) (bool, error) {
	return false, ErrPermissionsUnsupported
}

func syncDir(string) error {
	return nil
}

// RunningElevated 当前平台不检测管理员身份
func RunningElevated() bool {
	return false
}
