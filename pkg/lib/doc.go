// Package lib 包含与搜索流程无关的基础工具库
//
//   - crypto: Ed25519 密钥、Base58 地址与秘密缓冲区
//
// # 使用示例
//
//	import "github.com/dep2p/go-vanity/pkg/lib/crypto"
//
//	provider := crypto.NewEd25519Provider()
//	kp, err := provider.Generate()
package lib
