// Package keyfile 负责命中密钥的持久化与校验
//
// 密钥文件为 64 个 0~255 整数组成的 JSON 数组：前 32 字节为私钥种子，
// 后 32 字节为公钥，不带外层对象，可直接被 solana-keygen 读取：
//
//	[157,97,177,157,...,81,26]
//
// 编码过程只在一块作用域秘密缓冲区内完成，写盘后立即清零；
// 解析使用 gjson 逐元素扫描，不经过反射生成的中间副本。
//
// 另提供基于 Argon2id + AES-GCM 的加密备份（Keystore），
// 以及对已有密钥文件的校验报告（VerifyFile）。
package keyfile
