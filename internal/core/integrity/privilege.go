package integrity

// WarnIfElevated 以 root 身份运行时记录警告
//
// 返回是否发出了警告。
func WarnIfElevated() bool {
	if !RunningElevated() {
		return false
	}
	log.Warn("running as root; generated key files will be owned by root")
	return true
}
