// Package integrity 实现密钥生成的安全防护
//
// # 核心职责
//
//   - 熵源预检：搜索开始前抽样检查随机源是否明显失效
//   - 候选验证：对命中的密钥对做签名/验签往返
//   - 安全落盘：拒绝系统目录，仅属主可读写，写后校验大小，原子替换
//
// # 落盘流程
//
//	WriteSecureFile(path, data, opts)
//	  1. 路径检查（系统目录黑名单）
//	  2. 创建父目录（0700）
//	  3. 同目录创建临时文件（创建即 0600）
//	  4. 写入 → flush → fsync
//	  5. 校验文件大小
//	  6. rename 到目标路径，fsync 目录
//
// 任一步骤失败，临时文件被删除，目标路径不会出现半写文件。
//
// # 平台差异
//
// 非 Unix 平台无法强制 0600 权限，写入时记录警告，
// FilePermissionsSecure 返回 ErrPermissionsUnsupported。
package integrity
