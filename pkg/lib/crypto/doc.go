// Package crypto 提供 go-vanity 的密码学原语
//
// 本包把 Ed25519 密钥生成、签名验证和地址派生封装在 Provider 接口之后，
// 搜索协调器与完整性守卫只依赖该接口。
//
// # 快速开始
//
// 生成密钥对并派生地址：
//
//	p := crypto.NewEd25519Provider()
//	kp, err := p.Generate()
//	defer kp.Destroy()
//	addr := p.DeriveAddress(kp.PublicKey())
//
// 签名和验证：
//
//	sig, err := p.Sign(kp.Seed(), msg)
//	ok := p.Verify(kp.PublicKey(), msg, sig)
//
// 作用域内的秘密缓冲区：
//
//	err := crypto.WithSecureBytes(64, func(buf []byte) error {
//	    // buf 在返回时（包括 panic）被清零
//	    return nil
//	})
//
// # 安全特性
//
//   - 秘密材料仅存放在 SecureBytes 中，Destroy 时清零
//   - SecureBytes 与 Keypair 在 fmt、slog、JSON 输出中均显示为 [REDACTED]
//   - 常量时间比较公钥
//
// # 地址格式
//
// 地址为 32 字节公钥的 Base58 编码（比特币字母表），长度 32~44 个字符，
// 与 solana-keygen 的地址格式一致。
package crypto
